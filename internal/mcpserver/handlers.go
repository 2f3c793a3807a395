package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wyldefox/rustlens/internal/rerrors"
	"github.com/wyldefox/rustlens/internal/types"
)

// checkFileParams/indexWorkspaceParams/symbolParams mirror spec.md §6's
// tool-argument tables. Grounded on the teacher's own per-tool Params
// structs (e.g. internal/mcp/handlers.go's InfoParams, SearchParams),
// narrowed to exactly the fields these four tools take.
type checkFileParams struct {
	Path string `json:"path"`
}

type indexWorkspaceParams struct {
	Root string `json:"root"`
}

type symbolParams struct {
	Name string `json:"name"`
}

// handleCheckFile implements the check_file tool (spec.md §6): reads path
// off disk, parses it, and returns either the success message or the
// syntax error verbatim, per spec.md §4.2. A read failure is an I/O
// failure (spec.md §7 case 2), surfaced to the caller for this
// single-file tool rather than swallowed the way index_workspace would.
func (s *Server) handleCheckFile(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params checkFileParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, rerrors.NewInvalidInput("path", "could not parse arguments: "+err.Error())
	}
	if params.Path == "" {
		return nil, rerrors.NewInvalidInput("path", "must not be empty")
	}

	source, err := os.ReadFile(params.Path)
	if err != nil {
		return nil, rerrors.NewIOError("check_file", params.Path, err)
	}

	result, err := s.engine.CheckFile(params.Path, source)
	if err != nil {
		return nil, err
	}

	if len(result.Diagnostics) > 0 {
		return textResult(result.Diagnostics[0].Message), nil
	}
	return textResult("File parsed successfully with no syntax errors."), nil
}

// handleIndexWorkspace implements index_workspace (spec.md §6). Unlike
// check_file, a per-file I/O or parse failure never fails this call
// (spec.md §7: "Batch operations... never fail wholesale because one file
// is bad") — it shows up in the returned Diagnostics list instead.
func (s *Server) handleIndexWorkspace(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params indexWorkspaceParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, rerrors.NewInvalidInput("root", "could not parse arguments: "+err.Error())
	}
	if params.Root == "" {
		return nil, rerrors.NewInvalidInput("root", "must not be empty")
	}

	result, err := s.engine.IndexWorkspace(ctx, params.Root)
	if err != nil {
		return nil, err
	}
	return jsonResult(result)
}

// handleGotoDefinition implements goto_definition (spec.md §6): the first
// Location in (file, line) order, or the string "not found" — the exact
// success-payload shape spec.md's tool-surface table names.
func (s *Server) handleGotoDefinition(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := parseSymbolParams(req)
	if err != nil {
		return nil, err
	}

	locs, err := s.engine.GotoDefinition(name)
	if err != nil {
		return nil, err
	}
	if len(locs) == 0 {
		return textResult("not found"), nil
	}
	return jsonResult(locs[0])
}

// handleFindReferences implements find_references (spec.md §6): the
// Locations Engine.FindReferences returns, as a JSON array of
// {file, line, column}. An entry does not say whether it is a call callee,
// a type use, or an import target.
func (s *Server) handleFindReferences(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := parseSymbolParams(req)
	if err != nil {
		return nil, err
	}

	locs, err := s.engine.FindReferences(name)
	if err != nil {
		return nil, err
	}
	return jsonResult(locs)
}

func parseSymbolParams(req *mcp.CallToolRequest) (types.SymbolName, error) {
	var params symbolParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return "", rerrors.NewInvalidInput("name", "could not parse arguments: "+err.Error())
	}
	if params.Name == "" {
		return "", rerrors.NewInvalidInput("name", "must not be empty")
	}
	return params.Name, nil
}

// textResult and jsonResult wrap a tool's success payload in the MCP text-
// content envelope spec.md §6 specifies ("responses are JSON strings
// wrapped in an MCP text-content envelope"). Grounded on the teacher's
// createJSONResponse in internal/mcp/response.go.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling response: %w", err)
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(data)}}}, nil
}
