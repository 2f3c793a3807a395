// Package visitor is the Visitor Kit (spec.md C3): one single-pass AST
// walker per analytical data slice. Every visitor recurses into every
// child (spec.md §4.3 rule 1 — never short-circuit on the first match),
// stamps Locations from the node's start position, and treats nested
// definitions as first-class records rather than tracking a parent
// pointer.
//
// Grounded on the teacher's internal/parser/unified_extractor*.go family
// (one extractor pass per concern, walking a *tree_sitter.Node tree and
// slicing source bytes by StartByte/EndByte) and its
// cached_metrics_calculator.go complexity walker, generalized to the
// single decision-point set spec.md §3 mandates instead of the teacher's
// multi-language superset.
package visitor

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/wyldefox/rustlens/internal/types"
)

// loc converts a tree-sitter point (0-based) to a spec.md Location
// (1-based), per spec.md §4.3 rule 2.
func loc(file string, p tree_sitter.Point) types.Location {
	return types.Location{File: file, Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

// nodeText slices the node's span out of source.
func nodeText(source []byte, n *tree_sitter.Node) string {
	return string(source[n.StartByte():n.EndByte()])
}

// hasVisibilityModifier reports whether item (a function_item, struct_item,
// enum_item, or mod_item node) carries a pub visibility_modifier among its
// direct children. tree-sitter-rust does not expose this as a named field,
// so every caller scans children the same way this helper does.
func hasVisibilityModifier(n *tree_sitter.Node) bool {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child != nil && child.Kind() == "visibility_modifier" {
			return true
		}
	}
	return false
}

// children returns every direct child, skipping nils defensively (the
// go-tree-sitter binding can return a nil *Node for an absent optional
// field slot).
func children(n *tree_sitter.Node) []*tree_sitter.Node {
	out := make([]*tree_sitter.Node, 0, n.ChildCount())
	for i := uint(0); i < n.ChildCount(); i++ {
		if c := n.Child(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// isFunctionNode reports whether kind is one of the two tree-sitter-rust
// node kinds that introduce a function: function_item (has a body) or
// function_signature_item (trait-method declaration, no body — spec.md
// §4.3's "function with no body" edge case).
func isFunctionNode(kind string) bool {
	return kind == "function_item" || kind == "function_signature_item"
}
