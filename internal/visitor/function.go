package visitor

import (
	"sort"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/wyldefox/rustlens/internal/types"
)

// CollectFunctions is the FunctionCollector (spec.md §4.3): one
// FunctionRecord per function_item/function_signature_item anywhere in the
// tree, including nested definitions (spec.md §4.3 rule 3 — nested
// functions are first-class records, not tracked via a parent pointer).
func CollectFunctions(file string, source []byte, root *tree_sitter.Node) []types.FunctionRecord {
	var out []types.FunctionRecord
	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		if isFunctionNode(n.Kind()) {
			out = append(out, buildFunctionRecord(file, source, n))
		}
		for _, c := range children(n) {
			walk(c)
		}
	}
	walk(root)
	return out
}

func buildFunctionRecord(file string, source []byte, n *tree_sitter.Node) types.FunctionRecord {
	name := ""
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		name = nodeText(source, nameNode)
	}

	rec := types.FunctionRecord{
		Name:     name,
		Location: loc(file, n.StartPosition()),
		IsPublic: hasVisibilityModifier(n),
	}

	if params := n.ChildByFieldName("parameters"); params != nil {
		rec.ParameterCount = countParameters(params)
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		// spec.md §4.3: a declaration-only function has line_count=0 and
		// complexity=1, regardless of parameter count.
		rec.LineCount = 0
		rec.CyclomaticComplexity = 1
		return rec
	}

	start := body.StartPosition().Row
	end := body.EndPosition().Row
	rec.LineCount = int(end-start) + 1
	rec.CyclomaticComplexity = complexityOf(body)
	rec.Callees = calleesOf(source, body)
	return rec
}

func countParameters(params *tree_sitter.Node) int {
	count := 0
	for _, c := range children(params) {
		switch c.Kind() {
		case "parameter", "self_parameter":
			count++
		}
	}
	return count
}

// walkLocal visits n and recurses into every child except one that begins
// a nested named function's own scope (spec.md §4.3: "an anonymous
// function... is not a node in the call graph, but its calls are
// attributed to the enclosing named function" — the complement is that a
// *named* nested function gets its own, separately-computed, record).
func walkLocal(n *tree_sitter.Node, visit func(*tree_sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range children(n) {
		if isFunctionNode(c.Kind()) {
			continue
		}
		walkLocal(c, visit)
	}
}

// complexityOf implements spec.md §3's decision-point set: 1 (base) plus
// one per conditional branch, loop header, pattern-match arm beyond the
// first, and short-circuit boolean operator. Grounded on the teacher's
// internal/analysis/cached_metrics_calculator.go walkNodeForCyclomatic,
// narrowed to the single Rust grammar this engine targets.
func complexityOf(body *tree_sitter.Node) int {
	complexity := 1
	walkLocal(body, func(n *tree_sitter.Node) {
		switch n.Kind() {
		case "if_expression":
			complexity++
		case "while_expression", "while_let_expression", "loop_expression", "for_expression":
			complexity++
		case "match_expression":
			if matchBody := n.ChildByFieldName("body"); matchBody != nil {
				arms := countKind(matchBody, "match_arm")
				if arms > 1 {
					complexity += arms - 1
				}
			}
		case "binary_expression":
			if n.ChildCount() >= 3 {
				if op := n.Child(1); op != nil {
					switch op.Kind() {
					case "&&", "||":
						complexity++
					}
				}
			}
		}
	})
	return complexity
}

func countKind(n *tree_sitter.Node, kind string) int {
	count := 0
	for _, c := range children(n) {
		if c.Kind() == kind {
			count++
		}
	}
	return count
}

// calleesOf scans call_expression and macro_invocation nodes within one
// function's local scope (spec.md §4.3: "callees collected by a
// sub-visitor over call expressions taking the head identifier"; macro
// invocations are the one enrichment beyond the letter of that sentence —
// see DESIGN.md — since Rust call sites routinely go through macros like
// println!).
func calleesOf(source []byte, body *tree_sitter.Node) []types.SymbolName {
	seen := make(map[string]struct{})
	walkLocal(body, func(n *tree_sitter.Node) {
		switch n.Kind() {
		case "call_expression":
			if fn := n.ChildByFieldName("function"); fn != nil {
				if head := callHead(source, fn); head != "" {
					seen[head] = struct{}{}
				}
			}
		case "macro_invocation":
			if m := n.ChildByFieldName("macro"); m != nil {
				if head := callHead(source, m); head != "" {
					seen[head] = struct{}{}
				}
			}
		}
	})
	out := make([]types.SymbolName, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// callHead resolves a call's head identifier, taking the last path segment
// for qualified calls per spec.md §3's FunctionRecord.callees definition.
func callHead(source []byte, n *tree_sitter.Node) string {
	switch n.Kind() {
	case "identifier", "type_identifier":
		return nodeText(source, n)
	case "field_expression":
		if field := n.ChildByFieldName("field"); field != nil {
			return nodeText(source, field)
		}
	case "scoped_identifier":
		if name := n.ChildByFieldName("name"); name != nil {
			return nodeText(source, name)
		}
	case "generic_function":
		if fn := n.ChildByFieldName("function"); fn != nil {
			return callHead(source, fn)
		}
	}
	return ""
}
