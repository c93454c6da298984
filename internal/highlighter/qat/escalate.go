package qat

import (
	"github.com/bethropolis/qat-editor/internal/syntax"
	"github.com/bethropolis/qat-editor/internal/types"
)

// leadsChain reports whether, walking up from n, every node is the first
// child of a parent of the next kind in kinds.
func leadsChain(n syntax.Node, kinds ...string) bool {
	cur := n
	for _, kind := range kinds {
		if !cur.IsFirstChild() {
			return false
		}
		p, ok := cur.Parent()
		if !ok || p.Kind() != kind {
			return false
		}
		cur = p
	}
	return true
}

// subtypeCategory is function when the subtype names the callee of a
// function call, directly or as the base of a generic callee, else type.
func subtypeCategory(n syntax.Node) types.Category {
	if leadsChain(n, "type_without_entity", "function_call") ||
		leadsChain(n, "type_without_entity", "type", "type_generic", "type_without_entity", "function_call") {
		return types.CategoryFunction
	}
	return types.CategoryType
}

// genericCategory is function when the generic type is the callee of a
// function call, else type.
func genericCategory(n syntax.Node) types.Category {
	if leadsChain(n, "type_without_entity", "function_call") {
		return types.CategoryFunction
	}
	return types.CategoryType
}
