// Package types holds the data model shared across the parsed-source cache,
// the AST visitors, the index builder, and the query surface. Nothing in
// this package has behavior beyond sort helpers; it exists so that every
// other package can agree on one shape for a location, a symbol name, and
// the per-entity records merged into a WorkspaceIndex.
package types

import "sort"

// SymbolName is a plain textual identifier. The engine does not qualify
// names by module: two items with the same identifier in different files
// share one symbol node. See the "last-segment" resolution rule in
// visitor.callHead and engine.lastSegment.
type SymbolName = string

// Location pinpoints a single AST node's start position within a file.
// Lines and columns are 1-based; the visitors convert tree-sitter's 0-based
// points when stamping a Location.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Less orders Locations by (file, line, column), the sort order spec.md
// mandates for find_references results and for tie-breaking
// goto_definition across files.
func (l Location) Less(other Location) bool {
	if l.File != other.File {
		return l.File < other.File
	}
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}

// SortLocations sorts in place by (file, line, column).
func SortLocations(locs []Location) {
	sort.Slice(locs, func(i, j int) bool { return locs[i].Less(locs[j]) })
}

// DedupeLocations assumes locs is already sorted and removes consecutive
// duplicates in place.
func DedupeLocations(locs []Location) []Location {
	if len(locs) < 2 {
		return locs
	}
	out := locs[:1]
	for _, l := range locs[1:] {
		if l != out[len(out)-1] {
			out = append(out, l)
		}
	}
	return out
}

// FunctionRecord is produced by FunctionCollector for every function_item
// and impl/trait method in one file.
type FunctionRecord struct {
	Name                  SymbolName   `json:"name"`
	Location              Location     `json:"location"`
	ParameterCount        int          `json:"parameter_count"`
	LineCount             int          `json:"line_count"`
	CyclomaticComplexity  int          `json:"cyclomatic_complexity"`
	Callees               []SymbolName `json:"callees"`
	IsPublic              bool         `json:"is_public"`
}

// StructRecord is produced by StructCollector; UsedIn is filled in later by
// the index builder from TypeUseCollector output.
type StructRecord struct {
	Name       SymbolName `json:"name"`
	Location   Location   `json:"location"`
	FieldCount int        `json:"field_count"`
	UsedIn     []Location `json:"used_in"`
}

// EnumRecord is produced by EnumCollector.
type EnumRecord struct {
	Name         SymbolName `json:"name"`
	Location     Location   `json:"location"`
	VariantCount int        `json:"variant_count"`
}

// ModuleRecord is produced by ModuleCollector, one per file.
type ModuleRecord struct {
	Path    string      `json:"path"`
	Imports []ImportRef `json:"imports"`
}

// ImportRef is one use_declaration target: its raw, unresolved path (the
// module-graph edge's node name, spec.md §9's "module key") and the
// Location of the specific name token that names it, for find_references'
// "import target" site kind.
type ImportRef struct {
	Path     string   `json:"path"`
	Location Location `json:"location"`
}

// TypeUse is one occurrence of a type-position identifier, stamped with the
// enclosing construct so the index builder can decide whether it becomes a
// type-graph edge or merely a StructRecord.UsedIn entry.
type TypeUse struct {
	TypeName       SymbolName `json:"type_name"`
	Location       Location   `json:"location"`
	EnclosingKind  EnclosingKind
	EnclosingName  SymbolName
}

// EnclosingKind says what lexical construct a type use or call site was
// found inside.
type EnclosingKind int

const (
	// EnclosingNone means the use was outside any function body or struct
	// field list (e.g. a top-level `static`/`const` type, or a top-level
	// function's own parameter and return types).
	EnclosingNone EnclosingKind = iota
	EnclosingFunction
	EnclosingStructField
)

// CallSite is one call expression's head identifier, scoped to the named
// function it was found inside. Calls inside anonymous closures are
// attributed to the nearest enclosing named function per spec.md §4.3.
type CallSite struct {
	Caller   SymbolName `json:"caller"`
	Callee   SymbolName `json:"callee"`
	Location Location   `json:"location"`
}

// Suggestion is one heuristic finding produced by internal/heuristics:
// a named pattern (e.g. "long_function") anchored at one Location, naming
// the Symbol it concerns.
type Suggestion struct {
	Kind     string     `json:"kind"`
	Symbol   SymbolName `json:"symbol"`
	Location Location   `json:"location"`
	Message  string     `json:"message"`
}

// Diagnostic is a soft, non-fatal note produced while building a
// WorkspaceIndex: an unreadable file, an unparseable file, or a duplicate
// definition that overwrote an earlier one.
type Diagnostic struct {
	Kind    string `json:"kind"`
	File    string `json:"file"`
	Message string `json:"message"`
}

// SmellReport is spec.md §3's WorkspaceIndex.smells: every Suggestion
// internal/heuristics produced, grouped by Kind, alongside a per-kind
// count. It is derived from the same Analyze pass that produces the flat
// Suggestions list spec.md §4.6 also names, so the two can never
// disagree — ByKind is a grouping of Suggestions, not a second,
// independently-computed finding set.
type SmellReport struct {
	Counts map[string]int          `json:"counts"`
	ByKind map[string][]Suggestion `json:"by_kind"`
}
