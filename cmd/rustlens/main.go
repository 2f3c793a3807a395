// Command rustlens is the one executable spec.md §6 describes: no
// subcommands, reads MCP JSON-RPC from stdin, writes to stdout. Grounded
// on the teacher's cmd/lci/main.go urfave/cli App setup, with the
// teacher's large subcommand tree (search, grep, server, git, debug...)
// omitted — this repo's core exposes exactly the four tools spec.md §6
// names, all reachable over one stdio MCP session.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/wyldefox/rustlens/internal/config"
	"github.com/wyldefox/rustlens/internal/diagnostics"
	"github.com/wyldefox/rustlens/internal/mcpserver"
)

var version = "0.1.0"

func main() {
	app := &cli.App{
		Name:                   "rustlens",
		Usage:                  "workspace analysis MCP server for Rust",
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   ".rustlens.toml",
			},
		},
		Action: runMCPServer,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "rustlens: %v\n", err)
		os.Exit(1)
	}
}

// runMCPServer loads config, builds the mcpserver.Server, and serves
// stdio MCP until a termination signal arrives or the transport fails,
// mirroring the graceful-shutdown shape of the teacher's serverCommand in
// cmd/lci/main_server.go.
func runMCPServer(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := diagnostics.New()
	log.Infof("rustlens %s starting", version)

	srv := mcpserver.New(cfg, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Infof("received shutdown signal")
		cancel()
	}()

	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server error: %w", err)
	}
	return nil
}
