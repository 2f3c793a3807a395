// Package mcpserver is the transport layer spec.md §1 draws outside the
// core's scope: it marshals MCP tool-call JSON into internal/engine calls
// and serializes results back, and nothing more. Grounded on the teacher's
// internal/mcp/server.go (mcp.NewServer, one AddTool call per tool,
// server.Run(ctx, &mcp.StdioTransport{})), narrowed from the teacher's
// roughly forty tools down to the four spec.md §6 names.
package mcpserver

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wyldefox/rustlens/internal/config"
	"github.com/wyldefox/rustlens/internal/diagnostics"
	"github.com/wyldefox/rustlens/internal/engine"
)

// Server wraps one Engine and one *mcp.Server. Grounded on the teacher's
// own Server struct in internal/mcp/server.go, which plays the identical
// "hold the long-lived domain object, register tools against it" role.
type Server struct {
	engine *engine.Engine
	log    *diagnostics.Logger
	mcp    *mcp.Server
}

// New builds a Server with every tool registered, ready for Run.
func New(cfg config.Config, log *diagnostics.Logger) *Server {
	s := &Server{
		engine: engine.New(cfg, log),
		log:    log,
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    "rustlens-mcp-server",
			Version: "0.1.0",
		}, nil),
	}
	s.registerTools()
	return s
}

// Run serves MCP requests over stdin/stdout until ctx is cancelled or the
// transport fails, per spec.md §6's CLI surface.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	s.mcp.AddTool(&mcp.Tool{
		Name:        "check_file",
		Description: "Parse one source file and report a syntax error, or confirm it parses cleanly.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"path": {Type: "string", Description: "Absolute path to the source file"},
			},
			Required: []string{"path"},
		},
	}, s.handleCheckFile)

	s.mcp.AddTool(&mcp.Tool{
		Name:        "index_workspace",
		Description: "Walk a directory tree, index every source file, and return functions, structs, enums, modules, graphs, and smell/refactoring suggestions.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"root": {Type: "string", Description: "Absolute path to the workspace root"},
			},
			Required: []string{"root"},
		},
	}, s.handleIndexWorkspace)

	s.mcp.AddTool(&mcp.Tool{
		Name:        "goto_definition",
		Description: "Find where a function, struct, enum, or module is defined in the most recently indexed workspace.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name": {Type: "string", Description: "Symbol name to look up"},
			},
			Required: []string{"name"},
		},
	}, s.handleGotoDefinition)

	s.mcp.AddTool(&mcp.Tool{
		Name:        "find_references",
		Description: "Find every call site, type use, and import target for a symbol in the most recently indexed workspace.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name": {Type: "string", Description: "Symbol name to search for"},
			},
			Required: []string{"name"},
		},
	}, s.handleFindReferences)
}
