// Package debug gates verbose trace output behind an environment variable
// so normal runs (and, critically, the MCP stdio binary) stay quiet.
package debug

import (
	"fmt"
	"os"
	"sync"
)

var (
	once    sync.Once
	enabled bool
)

// Enabled reports whether RUSTLENS_DEBUG=1 was set at process start. The
// check happens once; the engine doesn't support toggling it mid-run.
func Enabled() bool {
	once.Do(func() {
		enabled = os.Getenv("RUSTLENS_DEBUG") == "1"
	})
	return enabled
}

// Printf writes to stderr only when Enabled(). Never used on the stdio
// path that serves MCP responses.
func Printf(format string, args ...interface{}) {
	if Enabled() {
		fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
	}
}
