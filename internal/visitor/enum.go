package visitor

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/wyldefox/rustlens/internal/types"
)

// CollectEnums is the EnumCollector (spec.md §4.3): one EnumRecord per
// enum_item anywhere in the tree, variant_count counted from the enum's
// enum_variant_list body.
func CollectEnums(file string, source []byte, root *tree_sitter.Node) []types.EnumRecord {
	var out []types.EnumRecord
	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		if n.Kind() == "enum_item" {
			out = append(out, buildEnumRecord(file, source, n))
		}
		for _, c := range children(n) {
			walk(c)
		}
	}
	walk(root)
	return out
}

func buildEnumRecord(file string, source []byte, n *tree_sitter.Node) types.EnumRecord {
	name := ""
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		name = nodeText(source, nameNode)
	}

	rec := types.EnumRecord{
		Name:     name,
		Location: loc(file, n.StartPosition()),
	}

	if body := n.ChildByFieldName("body"); body != nil {
		rec.VariantCount = countKind(body, "enum_variant")
	}
	return rec
}
