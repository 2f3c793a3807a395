package visitor

import (
	"sort"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/wyldefox/rustlens/internal/types"
)

// CollectModule is the ModuleCollector (spec.md §4.3): one ModuleRecord per
// file, with Imports the set of raw import paths named by every
// use_declaration in the file (module-graph edges use the raw import
// string, per spec.md §9's glossary entry for "module key" — this engine
// does not attempt to resolve an import path to the file that defines it).
func CollectModule(file string, source []byte, root *tree_sitter.Node) types.ModuleRecord {
	byPath := make(map[string]types.Location)
	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		if n.Kind() == "use_declaration" {
			if arg := n.ChildByFieldName("argument"); arg != nil {
				for _, ref := range expandUseTree(file, source, arg, "") {
					if _, ok := byPath[ref.Path]; !ok {
						byPath[ref.Path] = ref.Location
					}
				}
			}
		}
		for _, c := range children(n) {
			walk(c)
		}
	}
	walk(root)

	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	refs := make([]types.ImportRef, 0, len(paths))
	for _, p := range paths {
		refs = append(refs, types.ImportRef{Path: p, Location: byPath[p]})
	}
	return types.ModuleRecord{Path: file, Imports: refs}
}

// expandUseTree flattens a use_declaration's argument subtree into the set
// of fully-qualified import paths it names, expanding brace groups
// (use foo::{bar, baz}), resolving an alias to the path it renames, and
// keeping a glob import as its path followed by "::*". Each returned
// ImportRef's Location is the
// specific name token that names the import, not the whole use_declaration.
func expandUseTree(file string, source []byte, n *tree_sitter.Node, prefix string) []types.ImportRef {
	switch n.Kind() {
	case "identifier", "type_identifier", "scoped_identifier", "crate", "self", "super", "metavariable":
		return []types.ImportRef{{Path: joinImportPrefix(prefix, nodeText(source, n)), Location: loc(file, n.StartPosition())}}
	case "use_as_clause":
		if path := n.ChildByFieldName("path"); path != nil {
			return expandUseTree(file, source, path, prefix)
		}
	case "use_wildcard":
		base := prefix
		at := n.StartPosition()
		if path := n.ChildByFieldName("path"); path != nil {
			base = joinImportPrefix(prefix, nodeText(source, path))
			at = path.StartPosition()
		}
		return []types.ImportRef{{Path: base + "::*", Location: loc(file, at)}}
	case "scoped_use_list":
		newPrefix := prefix
		if path := n.ChildByFieldName("path"); path != nil {
			newPrefix = joinImportPrefix(prefix, nodeText(source, path))
		}
		if list := n.ChildByFieldName("list"); list != nil {
			return expandUseTree(file, source, list, newPrefix)
		}
	case "use_list":
		var out []types.ImportRef
		for _, c := range children(n) {
			switch c.Kind() {
			case ",", "{", "}":
				continue
			}
			out = append(out, expandUseTree(file, source, c, prefix)...)
		}
		return out
	}
	return nil
}

func joinImportPrefix(prefix, text string) string {
	if prefix == "" {
		return text
	}
	return prefix + "::" + text
}
