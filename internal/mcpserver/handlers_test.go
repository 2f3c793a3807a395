package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyldefox/rustlens/internal/config"
	"github.com/wyldefox/rustlens/internal/diagnostics"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(config.Default(), diagnostics.New())
}

func request(t *testing.T, params interface{}) *mcp.CallToolRequest {
	t.Helper()
	data, err := json.Marshal(params)
	require.NoError(t, err)
	return &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Arguments: data}}
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestHandleCheckFileValidSource(t *testing.T) {
	s := newTestServer(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	require.NoError(t, os.WriteFile(path, []byte("pub fn greet() {}"), 0o644))

	result, err := s.handleCheckFile(context.Background(), request(t, checkFileParams{Path: path}))
	require.NoError(t, err)
	assert.Equal(t, "File parsed successfully with no syntax errors.", textOf(t, result))
}

func TestHandleCheckFileMissingPathIsInvalidParams(t *testing.T) {
	s := newTestServer(t)
	_, err := s.handleCheckFile(context.Background(), request(t, checkFileParams{}))
	assert.Error(t, err)
}

func TestHandleIndexWorkspaceThenGotoDefinitionAndFindReferences(t *testing.T) {
	s := newTestServer(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.rs"), []byte(`
pub struct Widget {
    label: String,
}

pub fn build() -> Widget {
    helper();
    Widget { label: String::new() }
}

fn helper() {}
`), 0o644))

	_, err := s.handleIndexWorkspace(context.Background(), request(t, indexWorkspaceParams{Root: dir}))
	require.NoError(t, err)

	defResult, err := s.handleGotoDefinition(context.Background(), request(t, symbolParams{Name: "Widget"}))
	require.NoError(t, err)
	assert.Contains(t, textOf(t, defResult), "lib.rs")

	refResult, err := s.handleFindReferences(context.Background(), request(t, symbolParams{Name: "helper"}))
	require.NoError(t, err)
	assert.NotEqual(t, "not found", textOf(t, refResult))
}

func TestHandleGotoDefinitionNotFound(t *testing.T) {
	s := newTestServer(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.rs"), []byte("fn used() {}\n"), 0o644))

	_, err := s.handleIndexWorkspace(context.Background(), request(t, indexWorkspaceParams{Root: dir}))
	require.NoError(t, err)

	result, err := s.handleGotoDefinition(context.Background(), request(t, symbolParams{Name: "NoSuchThing"}))
	require.NoError(t, err)
	assert.Equal(t, "not found", textOf(t, result))
}
