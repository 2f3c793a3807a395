package visitor

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/wyldefox/rustlens/internal/types"
)

// CollectStructs is the StructCollector (spec.md §4.3). UsedIn starts
// empty; the Index Builder fills it in from TypeUseCollector output once
// every file has been walked.
func CollectStructs(file string, source []byte, root *tree_sitter.Node) []types.StructRecord {
	var out []types.StructRecord
	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		if n.Kind() == "struct_item" {
			out = append(out, buildStructRecord(file, source, n))
		}
		for _, c := range children(n) {
			walk(c)
		}
	}
	walk(root)
	return out
}

func buildStructRecord(file string, source []byte, n *tree_sitter.Node) types.StructRecord {
	name := ""
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		name = nodeText(source, nameNode)
	}

	rec := types.StructRecord{
		Name:     name,
		Location: loc(file, n.StartPosition()),
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		// Unit struct, e.g. `struct Marker;` — zero fields.
		return rec
	}

	switch body.Kind() {
	case "field_declaration_list":
		rec.FieldCount = countKind(body, "field_declaration")
	case "ordered_field_declaration_list":
		rec.FieldCount = countKind(body, "ordered_field_declaration")
	}
	return rec
}
