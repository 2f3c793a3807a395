// Package engine is the Query Surface (spec.md C7): the in-process API
// everything else (the MCP tool handlers, a future CLI mode) calls.
// Grounded on the teacher's internal/mcp/handlers.go, which holds exactly
// this shape — one long-lived struct wrapping the cache, the config, the
// logger, and the most recently built index, with one method per tool.
package engine

import (
	"context"
	"sync"

	"github.com/wyldefox/rustlens/internal/cache"
	"github.com/wyldefox/rustlens/internal/config"
	"github.com/wyldefox/rustlens/internal/diagnostics"
	"github.com/wyldefox/rustlens/internal/heuristics"
	"github.com/wyldefox/rustlens/internal/indexbuild"
	"github.com/wyldefox/rustlens/internal/parser"
	"github.com/wyldefox/rustlens/internal/rerrors"
	"github.com/wyldefox/rustlens/internal/types"
	"github.com/wyldefox/rustlens/internal/visitor"
	"github.com/wyldefox/rustlens/internal/workspace"
)

// Engine owns the Source Cache (C1) and the most recently merged
// workspace.Index (C5). A zero Engine is not usable; use New.
type Engine struct {
	cfg config.Config
	log *diagnostics.Logger

	cache *cache.Source

	mu  sync.RWMutex
	idx *workspace.Index // nil until IndexWorkspace succeeds once
}

// New builds an Engine with the given configuration and diagnostic
// logger.
func New(cfg config.Config, log *diagnostics.Logger) *Engine {
	return &Engine{cfg: cfg, log: log, cache: cache.New()}
}

// CheckFileResult is check_file's return shape: the records extracted from
// exactly one file plus the Suggestions heuristics.Analyze finds when that
// file is considered on its own (spec.md §5: check_file does not consult
// the rest of the workspace).
type CheckFileResult struct {
	File        string                 `json:"file"`
	Functions   []types.FunctionRecord `json:"functions"`
	Structs     []types.StructRecord   `json:"structs"`
	Enums       []types.EnumRecord     `json:"enums"`
	Suggestions []types.Suggestion     `json:"suggestions"`
	Diagnostics []types.Diagnostic     `json:"diagnostics"`
}

// CheckFile parses and visits one file, caching its text, and runs every
// heuristic against that file alone. A syntax error is not promoted to a
// Go error: it comes back as a Diagnostic, the single-file analogue of how
// IndexWorkspace treats an unparseable file (spec.md §7).
func (e *Engine) CheckFile(path string, source []byte) (*CheckFileResult, error) {
	if path == "" {
		return nil, rerrors.NewInvalidInput("path", "must not be empty")
	}

	e.cache.Insert(path, string(source))

	adapter, err := parser.New()
	if err != nil {
		return nil, err
	}
	pf, syntaxErr := adapter.Parse(path, source)
	if syntaxErr != nil {
		return &CheckFileResult{
			File:        path,
			Diagnostics: []types.Diagnostic{{Kind: "parse_error", File: path, Message: syntaxErr.Error()}},
		}, nil
	}

	root := pf.Root()
	rec := workspace.FileRecords{
		File:      path,
		Functions: visitor.CollectFunctions(path, source, &root),
		Structs:   visitor.CollectStructs(path, source, &root),
		Enums:     visitor.CollectEnums(path, source, &root),
		Module:    visitor.CollectModule(path, source, &root),
		TypeUses:  visitor.CollectTypeUses(path, source, &root),
		CallSites: visitor.CollectCallSites(path, source, &root),
	}

	idx := workspace.Merge([]workspace.FileRecords{rec}, nil)
	return &CheckFileResult{
		File:        path,
		Functions:   rec.Functions,
		Structs:     rec.Structs,
		Enums:       rec.Enums,
		Suggestions: heuristics.Analyze(idx, e.cfg.Thresholds),
	}, nil
}

// IndexSummary holds the plain entry counts spec.md §4.7 asks
// index_workspace to report alongside the full entity/graph/smell detail —
// a quick "how big was this" readout without counting collections
// client-side.
type IndexSummary struct {
	FileCount     int `json:"file_count"`
	FunctionCount int `json:"function_count"`
	StructCount   int `json:"struct_count"`
	EnumCount     int `json:"enum_count"`
}

// IndexWorkspaceResult is index_workspace's return shape: spec.md §6's
// table ({ functions, structs, enums, modules, call_graph, type_graph,
// module_graph, smells, suggestions }) plus the Diagnostics collected
// while building the index and a Summary of entry counts. The three
// graphs are adjacency lists (spec.md §4.7), produced by
// graph.Graph.Adjacency over the same CallGraph/TypeGraph/ModuleGraph
// GotoDefinition and FindReferences query against — never a second,
// separately computed view.
type IndexWorkspaceResult struct {
	Root        string                                        `json:"root"`
	Functions   map[types.SymbolName][]types.FunctionRecord    `json:"functions"`
	Structs     map[types.SymbolName][]types.StructRecord      `json:"structs"`
	Enums       map[types.SymbolName][]types.EnumRecord        `json:"enums"`
	Modules     map[string]types.ModuleRecord                  `json:"modules"`
	CallGraph   map[string][]string                            `json:"call_graph"`
	TypeGraph   map[string][]string                            `json:"type_graph"`
	ModuleGraph map[string][]string                            `json:"module_graph"`
	Smells      types.SmellReport                              `json:"smells"`
	Suggestions []types.Suggestion                             `json:"suggestions"`
	Summary     IndexSummary                                   `json:"summary"`
	Diagnostics []types.Diagnostic                             `json:"diagnostics"`
}

// IndexWorkspace walks root and replaces the Engine's held index wholesale
// (spec.md §4.1: entries, and the index built from them, are
// value-replaced, never mutated in place — a GotoDefinition racing an
// in-flight IndexWorkspace sees either the old index or the new one, never
// a partially merged one).
func (e *Engine) IndexWorkspace(ctx context.Context, root string) (*IndexWorkspaceResult, error) {
	if root == "" {
		return nil, rerrors.NewInvalidInput("root", "must not be empty")
	}

	idx, err := indexbuild.Build(ctx, root, e.cfg, e.cache)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.idx = idx
	e.mu.Unlock()

	summary := IndexSummary{
		FileCount:     len(idx.Modules),
		FunctionCount: len(idx.AllFunctions()),
		StructCount:   len(idx.AllStructs()),
		EnumCount:     len(idx.AllEnums()),
	}

	e.log.Infof("indexed %s: %d files, %d functions, %d structs, %d enums", root, summary.FileCount, summary.FunctionCount, summary.StructCount, summary.EnumCount)

	smells, suggestions := heuristics.Report(idx, e.cfg.Thresholds)

	return &IndexWorkspaceResult{
		Root:        root,
		Functions:   idx.Functions,
		Structs:     idx.Structs,
		Enums:       idx.Enums,
		Modules:     idx.Modules,
		CallGraph:   idx.CallGraph.Adjacency(),
		TypeGraph:   idx.TypeGraph.Adjacency(),
		ModuleGraph: idx.ModuleGraph.Adjacency(),
		Smells:      smells,
		Suggestions: suggestions,
		Summary:     summary,
		Diagnostics: idx.Diagnostics,
	}, nil
}

// currentIndex returns the held index, or an error if IndexWorkspace has
// never succeeded.
func (e *Engine) currentIndex() (*workspace.Index, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.idx == nil {
		return nil, rerrors.NewInvalidInput("workspace", "not indexed yet; call index_workspace first")
	}
	return e.idx, nil
}

// GotoDefinition returns every Location where name is defined as a
// function, struct, enum, or module, sorted (spec.md §4.7: the lookup
// scans functions[name], structs[name], enums[name], modules[name]).
// Names are not module-qualified (spec.md §3), so a name shared by
// unrelated definitions in different files returns every one of them. A
// module's key is its file path, so modules[name] matches when name
// names a file directly; the module "is defined" at that file's start.
func (e *Engine) GotoDefinition(name types.SymbolName) ([]types.Location, error) {
	if name == "" {
		return nil, rerrors.NewInvalidInput("name", "must not be empty")
	}
	idx, err := e.currentIndex()
	if err != nil {
		return nil, err
	}

	var out []types.Location
	for _, fn := range idx.FunctionsNamed(name) {
		out = append(out, fn.Location)
	}
	for _, s := range idx.StructsNamed(name) {
		out = append(out, s.Location)
	}
	for _, en := range idx.EnumsNamed(name) {
		out = append(out, en.Location)
	}
	if _, ok := idx.Modules[name]; ok {
		out = append(out, types.Location{File: name, Line: 1, Column: 1})
	}

	types.SortLocations(out)
	return types.DedupeLocations(out), nil
}

// FindReferences returns every Location where name is used as a call
// callee, a type use, or an import target (spec.md §4.7; the supplemented
// triad restored from original_source's ReferenceFinder — see DESIGN.md).
// Type uses come from the StructRecord.UsedIn of structs named name, so a
// use inside a struct's field list (a type-graph edge, not a UsedIn entry)
// and a use of a non-struct type such as an enum are not reported.
func (e *Engine) FindReferences(name types.SymbolName) ([]types.Location, error) {
	if name == "" {
		return nil, rerrors.NewInvalidInput("name", "must not be empty")
	}
	idx, err := e.currentIndex()
	if err != nil {
		return nil, err
	}

	var out []types.Location
	for _, cs := range idx.CallSites {
		if cs.Callee == name {
			out = append(out, cs.Location)
		}
	}
	for _, s := range idx.StructsNamed(name) {
		out = append(out, s.UsedIn...)
	}
	for _, mod := range idx.Modules {
		for _, imp := range mod.Imports {
			if lastSegment(imp.Path) == name {
				out = append(out, imp.Location)
			}
		}
	}

	types.SortLocations(out)
	return types.DedupeLocations(out), nil
}

// lastSegment returns the part of a "::"-joined path after the final
// separator, or the whole string if there is none — how an import target
// like "std::collections::HashMap" resolves to the symbol name "HashMap".
func lastSegment(path string) string {
	idx := -1
	for i := 0; i+1 < len(path); i++ {
		if path[i] == ':' && path[i+1] == ':' {
			idx = i
		}
	}
	if idx < 0 {
		return path
	}
	return path[idx+2:]
}
