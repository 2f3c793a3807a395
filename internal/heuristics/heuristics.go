// Package heuristics is C6 (spec.md §4.6): pure functions over a
// *workspace.Index that turn threshold crossings into Suggestions. Nothing
// here parses or walks an AST; every rule reads already-merged Records and
// the call graph workspace.Merge built. Grounded on the teacher's
// internal/analysis smell-detection package, which runs the same kind of
// independent, table-driven threshold rule per analysis pass.
package heuristics

import (
	"fmt"
	"sort"

	"github.com/wyldefox/rustlens/internal/config"
	"github.com/wyldefox/rustlens/internal/types"
	"github.com/wyldefox/rustlens/internal/workspace"
)

// Analyze runs every rule in spec.md §4.6's threshold table against idx and
// returns the Suggestions sorted by (Location, Kind) for deterministic
// output (spec.md P5).
func Analyze(idx *workspace.Index, th config.Thresholds) []types.Suggestion {
	var out []types.Suggestion
	out = append(out, longFunctions(idx, th)...)
	out = append(out, highComplexity(idx, th)...)
	out = append(out, tooManyParameters(idx, th)...)
	out = append(out, wideStructs(idx, th)...)
	out = append(out, wideEnums(idx, th)...)
	out = append(out, excessiveCallees(idx, th)...)
	out = append(out, excessiveCallers(idx, th)...)
	out = append(out, godObjects(idx, th)...)
	out = append(out, unusedFunctions(idx)...)

	sort.Slice(out, func(i, j int) bool {
		if out[i].Location != out[j].Location {
			return out[i].Location.Less(out[j].Location)
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// Report runs Analyze once and returns both spec.md §3's WorkspaceIndex
// shape: the flat, deterministically sorted Suggestions list, and the
// same findings grouped by Kind into a SmellReport (spec.md's
// `smells: SmellReport` field, distinct from `suggestions`). The grouping
// is purely a view over Analyze's output, not a second pass over idx.
func Report(idx *workspace.Index, th config.Thresholds) (types.SmellReport, []types.Suggestion) {
	suggestions := Analyze(idx, th)

	report := types.SmellReport{
		Counts: make(map[string]int),
		ByKind: make(map[string][]types.Suggestion),
	}
	for _, s := range suggestions {
		report.Counts[s.Kind]++
		report.ByKind[s.Kind] = append(report.ByKind[s.Kind], s)
	}
	return report, suggestions
}

func longFunctions(idx *workspace.Index, th config.Thresholds) []types.Suggestion {
	var out []types.Suggestion
	for _, fn := range idx.AllFunctions() {
		if fn.LineCount > th.LongFunctionLines {
			out = append(out, types.Suggestion{
				Kind:     "long_function",
				Symbol:   fn.Name,
				Location: fn.Location,
				Message:  fmt.Sprintf("%s is %d lines long (over %d)", fn.Name, fn.LineCount, th.LongFunctionLines),
			})
		}
	}
	return out
}

func highComplexity(idx *workspace.Index, th config.Thresholds) []types.Suggestion {
	var out []types.Suggestion
	for _, fn := range idx.AllFunctions() {
		if fn.CyclomaticComplexity > th.HighComplexity {
			out = append(out, types.Suggestion{
				Kind:     "high_complexity",
				Symbol:   fn.Name,
				Location: fn.Location,
				Message:  fmt.Sprintf("%s has cyclomatic complexity %d (over %d)", fn.Name, fn.CyclomaticComplexity, th.HighComplexity),
			})
		}
	}
	return out
}

func tooManyParameters(idx *workspace.Index, th config.Thresholds) []types.Suggestion {
	var out []types.Suggestion
	for _, fn := range idx.AllFunctions() {
		if fn.ParameterCount > th.TooManyParameters {
			out = append(out, types.Suggestion{
				Kind:     "too_many_parameters",
				Symbol:   fn.Name,
				Location: fn.Location,
				Message:  fmt.Sprintf("%s takes %d parameters (over %d)", fn.Name, fn.ParameterCount, th.TooManyParameters),
			})
		}
	}
	return out
}

func wideStructs(idx *workspace.Index, th config.Thresholds) []types.Suggestion {
	var out []types.Suggestion
	for _, s := range idx.AllStructs() {
		if s.FieldCount > th.WideStructFields {
			out = append(out, types.Suggestion{
				Kind:     "wide_struct",
				Symbol:   s.Name,
				Location: s.Location,
				Message:  fmt.Sprintf("%s has %d fields (over %d)", s.Name, s.FieldCount, th.WideStructFields),
			})
		}
	}
	return out
}

func wideEnums(idx *workspace.Index, th config.Thresholds) []types.Suggestion {
	var out []types.Suggestion
	for _, e := range idx.AllEnums() {
		if e.VariantCount > th.WideEnumVariants {
			out = append(out, types.Suggestion{
				Kind:     "wide_enum",
				Symbol:   e.Name,
				Location: e.Location,
				Message:  fmt.Sprintf("%s has %d variants (over %d)", e.Name, e.VariantCount, th.WideEnumVariants),
			})
		}
	}
	return out
}

func excessiveCallees(idx *workspace.Index, th config.Thresholds) []types.Suggestion {
	var out []types.Suggestion
	for _, fn := range idx.AllFunctions() {
		if n := idx.CallGraph.OutDegree(fn.Name); n > th.ExcessiveCallees {
			out = append(out, types.Suggestion{
				Kind:     "excessive_callees",
				Symbol:   fn.Name,
				Location: fn.Location,
				Message:  fmt.Sprintf("%s calls %d distinct functions (over %d)", fn.Name, n, th.ExcessiveCallees),
			})
		}
	}
	return out
}

func excessiveCallers(idx *workspace.Index, th config.Thresholds) []types.Suggestion {
	var out []types.Suggestion
	for _, fn := range idx.AllFunctions() {
		if n := idx.CallGraph.InDegree(fn.Name); n > th.ExcessiveCallers {
			out = append(out, types.Suggestion{
				Kind:     "excessive_callers",
				Symbol:   fn.Name,
				Location: fn.Location,
				Message:  fmt.Sprintf("%s is called from %d distinct functions (over %d)", fn.Name, n, th.ExcessiveCallers),
			})
		}
	}
	return out
}

// godObjects flags a struct referenced from an excessive number of
// distinct locations — spec.md §4.6's "god object" rule, measured against
// StructRecord.UsedIn rather than the type graph, since a struct used
// heavily from function bodies (not just other structs' fields) is exactly
// the shape this rule means to catch.
func godObjects(idx *workspace.Index, th config.Thresholds) []types.Suggestion {
	var out []types.Suggestion
	for _, s := range idx.AllStructs() {
		if n := len(s.UsedIn); n > th.GodObjectUses {
			out = append(out, types.Suggestion{
				Kind:     "god_object",
				Symbol:   s.Name,
				Location: s.Location,
				Message:  fmt.Sprintf("%s is used from %d locations (over %d)", s.Name, n, th.GodObjectUses),
			})
		}
	}
	return out
}

// unusedFunctions flags a non-public function with no callers anywhere in
// the workspace, spec.md §4.6's literal rule (is_public = false AND
// in-degree = 0). This carves out no entry point, so a binary crate's
// main lands in the report same as anything else with zero callers.
func unusedFunctions(idx *workspace.Index) []types.Suggestion {
	var out []types.Suggestion
	for _, fn := range idx.AllFunctions() {
		if fn.IsPublic {
			continue
		}
		if idx.CallGraph.InDegree(fn.Name) == 0 {
			out = append(out, types.Suggestion{
				Kind:     "unused_function",
				Symbol:   fn.Name,
				Location: fn.Location,
				Message:  fmt.Sprintf("%s is never called from indexed source", fn.Name),
			})
		}
	}
	return out
}
