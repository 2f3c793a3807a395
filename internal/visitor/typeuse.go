package visitor

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/wyldefox/rustlens/internal/types"
)

// enclosingCtx tracks the nearest scope a type_identifier is lexically
// nested under, for the purposes of the type-usage graph's edge rule
// (spec.md §3): a use textually inside a struct's own field list is a
// struct-to-struct edge candidate; a use textually inside a function's
// body is a used_in location on the referenced struct, never an edge.
type enclosingCtx struct {
	kind types.EnclosingKind
	name types.SymbolName
}

// CollectTypeUses is the TypeUseCollector (spec.md §4.3): one TypeUse per
// type_identifier anywhere in the tree. EnclosingKind/EnclosingName record
// the nearest function body or struct field list the use is nested under,
// computed strictly from lexical nesting — a closure's or nested
// function's own signature, lexically inside an outer function's body,
// still carries the outer function as EnclosingFunction. A top-level
// function's own parameter and return types are outside its body and so
// carry the surrounding context (EnclosingNone at module scope).
func CollectTypeUses(file string, source []byte, root *tree_sitter.Node) []types.TypeUse {
	var out []types.TypeUse
	var walk func(n *tree_sitter.Node, ctx enclosingCtx)
	walk = func(n *tree_sitter.Node, ctx enclosingCtx) {
		if n.Kind() == "type_identifier" {
			out = append(out, types.TypeUse{
				TypeName:      nodeText(source, n),
				Location:      loc(file, n.StartPosition()),
				EnclosingKind: ctx.kind,
				EnclosingName: ctx.name,
			})
		}

		var funcName types.SymbolName
		var bodyNode *tree_sitter.Node
		if isFunctionNode(n.Kind()) {
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				funcName = types.SymbolName(nodeText(source, nameNode))
			}
			bodyNode = n.ChildByFieldName("body")
		}

		var structName types.SymbolName
		var fieldListNode *tree_sitter.Node
		if n.Kind() == "struct_item" {
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				structName = types.SymbolName(nodeText(source, nameNode))
			}
			fieldListNode = n.ChildByFieldName("body")
		}

		for _, c := range children(n) {
			childCtx := ctx
			switch {
			case bodyNode != nil && sameSpan(c, bodyNode):
				childCtx = enclosingCtx{kind: types.EnclosingFunction, name: funcName}
			case fieldListNode != nil && sameSpan(c, fieldListNode):
				childCtx = enclosingCtx{kind: types.EnclosingStructField, name: structName}
			}
			walk(c, childCtx)
		}
	}
	walk(root, enclosingCtx{kind: types.EnclosingNone})
	return out
}

// sameSpan compares two nodes by byte range rather than pointer identity:
// the go-tree-sitter binding can hand back distinct *Node values for the
// same underlying node across separate Child/ChildByFieldName calls.
func sameSpan(a, b *tree_sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}
