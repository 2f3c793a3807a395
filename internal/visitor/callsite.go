package visitor

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/wyldefox/rustlens/internal/types"
)

// CollectCallSites is the CallSiteCollector (spec.md §4.3): one CallSite
// per call_expression or macro_invocation anywhere in the tree, scoped to
// the nearest enclosing named function. A call found before any named
// function is reached (module-scope const initializer, etc.) is dropped —
// the (caller, callee) pair spec.md §4.3 describes is meaningless without
// a caller.
func CollectCallSites(file string, source []byte, root *tree_sitter.Node) []types.CallSite {
	var out []types.CallSite
	var walk func(n *tree_sitter.Node, caller types.SymbolName, hasCaller bool)
	walk = func(n *tree_sitter.Node, caller types.SymbolName, hasCaller bool) {
		switch n.Kind() {
		case "call_expression":
			if hasCaller {
				if fn := n.ChildByFieldName("function"); fn != nil {
					if head := callHead(source, fn); head != "" {
						out = append(out, types.CallSite{Caller: caller, Callee: head, Location: loc(file, n.StartPosition())})
					}
				}
			}
		case "macro_invocation":
			if hasCaller {
				if m := n.ChildByFieldName("macro"); m != nil {
					if head := callHead(source, m); head != "" {
						out = append(out, types.CallSite{Caller: caller, Callee: head, Location: loc(file, n.StartPosition())})
					}
				}
			}
		}

		childCaller, childHasCaller := caller, hasCaller
		if isFunctionNode(n.Kind()) {
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				childCaller = nodeText(source, nameNode)
				childHasCaller = true
			}
		}

		for _, c := range children(n) {
			walk(c, childCaller, childHasCaller)
		}
	}
	walk(root, "", false)
	return out
}
