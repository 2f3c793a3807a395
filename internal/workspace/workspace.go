// Package workspace holds the Workspace Index (spec.md C5): the immutable,
// merged data model produced once per index_workspace call, plus the three
// derived graphs built on top of it. Nothing here touches a filesystem or a
// parser — internal/indexbuild owns gathering per-file records; this
// package only knows how to merge them.
package workspace

import (
	"sort"

	"github.com/wyldefox/rustlens/internal/graph"
	"github.com/wyldefox/rustlens/internal/types"
)

// FileRecords is everything the Visitor Kit produces for one file, the
// unit internal/indexbuild hands to Merge.
type FileRecords struct {
	File      string
	Functions []types.FunctionRecord
	Structs   []types.StructRecord
	Enums     []types.EnumRecord
	Module    types.ModuleRecord
	TypeUses  []types.TypeUse
	CallSites []types.CallSite
}

// Index is the merged, read-only view spec.md's query surface (C7) runs
// against. Every slice is sorted by Location so that repeated queries
// against an unchanged workspace return byte-identical output (spec.md
// P5).
type Index struct {
	Functions   map[types.SymbolName][]types.FunctionRecord
	Structs     map[types.SymbolName][]types.StructRecord
	Enums       map[types.SymbolName][]types.EnumRecord
	Modules     map[string]types.ModuleRecord
	CallGraph   *graph.Graph
	TypeGraph   *graph.Graph
	ModuleGraph *graph.Graph
	// CallSites is every call site across every file, kept (in addition to
	// the deduplicated CallGraph) so FindReferences can report every
	// location a name was called from, not just the distinct caller set.
	CallSites   []types.CallSite
	Diagnostics []types.Diagnostic
}

// FunctionsNamed returns every FunctionRecord sharing name, across every
// file, sorted by Location. Names are not module-qualified (spec.md §3),
// so two unrelated functions with the same identifier both come back.
func (idx *Index) FunctionsNamed(name types.SymbolName) []types.FunctionRecord {
	return idx.Functions[name]
}

// StructsNamed mirrors FunctionsNamed for structs.
func (idx *Index) StructsNamed(name types.SymbolName) []types.StructRecord {
	return idx.Structs[name]
}

// EnumsNamed mirrors FunctionsNamed for enums.
func (idx *Index) EnumsNamed(name types.SymbolName) []types.EnumRecord {
	return idx.Enums[name]
}

// AllFunctions flattens every FunctionRecord across every name, sorted by
// Location — the iteration order internal/heuristics needs for
// deterministic Suggestion ordering.
func (idx *Index) AllFunctions() []types.FunctionRecord {
	var out []types.FunctionRecord
	for _, recs := range idx.Functions {
		out = append(out, recs...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location.Less(out[j].Location) })
	return out
}

// AllStructs mirrors AllFunctions for structs.
func (idx *Index) AllStructs() []types.StructRecord {
	var out []types.StructRecord
	for _, recs := range idx.Structs {
		out = append(out, recs...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location.Less(out[j].Location) })
	return out
}

// AllEnums mirrors AllFunctions for enums.
func (idx *Index) AllEnums() []types.EnumRecord {
	var out []types.EnumRecord
	for _, recs := range idx.Enums {
		out = append(out, recs...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location.Less(out[j].Location) })
	return out
}

// Merge builds an Index from every file's records plus any diagnostics
// collected while reading or parsing files (internal/indexbuild owns
// producing both).
//
// Type-usage graph edges follow one rule: a type_identifier found inside a
// struct G's own field list, naming another known struct S, is an edge
// G -> S. A type_identifier found anywhere else (a function body, a
// parameter, a return type) that names a known struct S instead appends
// its Location to S's UsedIn — never both, so a field's own declared type
// is not double-counted as both an edge and a used_in entry.
func Merge(files []FileRecords, diagnostics []types.Diagnostic) *Index {
	idx := &Index{
		Functions:   make(map[types.SymbolName][]types.FunctionRecord),
		Structs:     make(map[types.SymbolName][]types.StructRecord),
		Enums:       make(map[types.SymbolName][]types.EnumRecord),
		Modules:     make(map[string]types.ModuleRecord),
		CallGraph:   graph.New(),
		TypeGraph:   graph.New(),
		ModuleGraph: graph.New(),
		Diagnostics: diagnostics,
	}

	structPtrs := make(map[types.SymbolName][]*types.StructRecord)

	for _, f := range files {
		for _, fn := range f.Functions {
			idx.Functions[fn.Name] = append(idx.Functions[fn.Name], fn)
			idx.CallGraph.AddNode(fn.Name)
		}
		for _, s := range f.Structs {
			rec := s
			idx.Structs[s.Name] = append(idx.Structs[s.Name], rec)
			idx.TypeGraph.AddNode(s.Name)
		}
		for _, e := range f.Enums {
			idx.Enums[e.Name] = append(idx.Enums[e.Name], e)
		}
		idx.Modules[f.File] = f.Module
		idx.ModuleGraph.AddNode(f.File)
	}

	// Build pointer aliases into idx.Structs' backing slices so UsedIn
	// mutations below are visible through the map.
	for name, recs := range idx.Structs {
		ptrs := make([]*types.StructRecord, len(recs))
		for i := range recs {
			ptrs[i] = &idx.Structs[name][i]
		}
		structPtrs[name] = ptrs
	}

	for _, f := range files {
		for _, cs := range f.CallSites {
			idx.CallGraph.AddEdge(cs.Caller, cs.Callee)
			idx.CallSites = append(idx.CallSites, cs)
		}
		for _, tu := range f.TypeUses {
			targets := structPtrs[tu.TypeName]
			if len(targets) == 0 {
				continue
			}
			if tu.EnclosingKind == types.EnclosingStructField {
				idx.TypeGraph.AddEdge(tu.EnclosingName, tu.TypeName)
				continue
			}
			for _, s := range targets {
				s.UsedIn = append(s.UsedIn, tu.Location)
			}
		}
		for _, imp := range f.Module.Imports {
			idx.ModuleGraph.AddEdge(f.File, imp.Path)
		}
	}

	for name, recs := range idx.Structs {
		for i := range recs {
			types.SortLocations(recs[i].UsedIn)
			recs[i].UsedIn = types.DedupeLocations(recs[i].UsedIn)
		}
		idx.Structs[name] = recs
	}

	sort.Slice(idx.CallSites, func(i, j int) bool { return idx.CallSites[i].Location.Less(idx.CallSites[j].Location) })

	return idx
}
