// Package qat classifies nodes of a qat syntax tree into highlight categories.
//
// Classification is a pure function of a node's kind, its fields, its
// ancestors and its position among its siblings. Raw tokens (unnamed nodes)
// are matched by their literal kind against static word and symbol sets;
// named nodes are dispatched on kind.
package qat

import (
	"errors"
	"fmt"

	"github.com/bethropolis/qat-editor/internal/logger"
	"github.com/bethropolis/qat-editor/internal/syntax"
	"github.com/bethropolis/qat-editor/internal/types"
)

// ErrContract reports a node missing a child or field the grammar always
// produces, which means the grammar and this classifier are out of step.
var ErrContract = errors.New("qat: grammar contract violated")

// Classifier maps qat syntax nodes to highlight spans.
type Classifier struct{}

// NewClassifier returns a qat classifier.
func NewClassifier() *Classifier { return &Classifier{} }

// Classify returns the spans n contributes. Most nodes yield zero or one span;
// a few rules (generic parameters, flag variants) yield several.
func (c *Classifier) Classify(n syntax.Node) ([]types.Span, error) {
	if !n.IsNamed() {
		if cat := tokenCategory(n.Kind()); cat != types.CategoryNone {
			return []types.Span{span(cat, n)}, nil
		}
		return nil, nil
	}
	return classifyNamed(n)
}

// tokenCategory classifies a raw token by its literal kind.
func tokenCategory(kind string) types.Category {
	switch {
	case keywords.has(kind):
		return types.CategoryKeyword
	case builtinTypes.has(kind):
		return types.CategoryTypeBuiltin
	case constants.has(kind):
		return types.CategoryConstant
	case importantSymbols.has(kind):
		return types.CategoryImportant
	case passiveSymbols.has(kind):
		return types.CategorySymbols
	}
	return types.CategoryNone
}

// wordCategory classifies an identifier-like text, builtin types first.
func wordCategory(text string) types.Category {
	switch {
	case builtinTypes.has(text):
		return types.CategoryTypeBuiltin
	case keywords.has(text):
		return types.CategoryKeyword
	case constants.has(text):
		return types.CategoryConstant
	}
	return types.CategoryNone
}

func classifyNamed(n syntax.Node) ([]types.Span, error) {
	switch n.Kind() {
	case "self_instance":
		return one(types.CategoryImportant, n), nil

	case "comment_line", "comment_multi":
		return one(types.CategoryDead, n), nil

	case "literal_string", "multiline_string":
		return one(types.CategoryString, n), nil

	case "escape_sequence":
		return one(types.CategoryEscapeString, n), nil

	case "constants", "literal_integer":
		return one(types.CategoryConstant, n), nil

	case "type":
		return classifyType(n)

	case "type_subtype":
		last, ok := n.LastChild()
		if !ok {
			return nil, nil
		}
		return one(subtypeCategory(n), last), nil

	case "type_primitive", "type_signed_integer", "type_unsigned_integer":
		return one(types.CategoryTypeBuiltin, n), nil

	case "type_generic":
		return classifyGeneric(n)

	case "function_definition", "prerun_function_definition", "method":
		return onField(types.CategoryFunction, n, "name")

	case "struct_definition", "mix_definition", "toggle_definition", "choice_definition",
		"flag_definition", "type_definition", "skill_definition":
		return onField(types.CategoryType, n, "name")

	case "struct_field", "flag_field", "statement_declaration", "mix_field",
		"choice_field_name", "toggle_field", "function_parameter_single":
		return onOptionalField(types.CategoryField, n, "name"), nil

	case "method_arg_single":
		return onOptionalField(types.CategoryField, n, "member"), nil

	case "generic_parameter_single":
		spans := onOptionalField(types.CategoryType, n, "type_parameter")
		return append(spans, onOptionalField(types.CategoryConstant, n, "prerun_parameter")...), nil

	case "flag_is_variant", "flag_initialiser":
		var spans []types.Span
		for _, name := range n.ChildrenByFieldName("name") {
			spans = append(spans, span(types.CategoryField, name))
		}
		return spans, nil

	case "entity":
		return classifyEntity(n)

	case "function_call":
		return classifyCall(n)

	case "constructor_call":
		// not styled yet; log the shape so new grammar output is visible
		if first, ok := n.Child(0); ok {
			logger.DebugTagf("highlight", "constructor call %q starts with %s", n.Content(), first.Kind())
		}
		return nil, nil

	case "mix_initialiser":
		return onField(types.CategoryType, n, "name")

	case "choice_initialiser":
		return onField(types.CategoryField, n, "name")

	case "heap_get", "heap_put", "heap_grow":
		return onField(types.CategoryFunction, n, "name")

	case "member_access":
		cat := types.CategoryField
		if p, ok := n.Parent(); ok && p.Kind() == "function_call" {
			cat = types.CategoryFunction
		}
		return onField(cat, n, "name")
	}
	return nil, nil
}

// classifyType styles a type written as a plain entity. Nested types are left
// to the rules of their ancestors, so only builtins and root types are tagged.
func classifyType(n syntax.Node) ([]types.Span, error) {
	first, err := requireChild(n, 0)
	if err != nil {
		return nil, err
	}
	if first.Kind() != "entity" {
		return nil, nil
	}
	name, err := requireField(first, "name")
	if err != nil {
		return nil, err
	}
	switch {
	case builtinTypes.has(n.Content()):
		return one(types.CategoryTypeBuiltin, name), nil
	case !n.HasParent():
		return one(types.CategoryType, name), nil
	}
	return nil, nil
}

func classifyGeneric(n syntax.Node) ([]types.Span, error) {
	first, err := requireChild(n, 0)
	if err != nil {
		return nil, err
	}
	entity, ok := first.Child(0)
	if !ok || entity.Kind() != "entity" {
		return nil, nil
	}
	last, ok := entity.LastChild()
	if !ok {
		return nil, fmt.Errorf("%w: entity in type_generic has no children", ErrContract)
	}
	return one(genericCategory(n), last), nil
}

func classifyEntity(n syntax.Node) ([]types.Span, error) {
	name, err := requireField(n, "name")
	if err != nil {
		return nil, err
	}
	if cat := wordCategory(n.Content()); cat != types.CategoryNone {
		return one(cat, name), nil
	}
	if n.ChildCount() != 1 {
		return nil, nil
	}
	if p, ok := n.Parent(); ok {
		switch p.Kind() {
		case "function_call", "type", "type_generic":
			return nil, nil
		}
	}
	return one(types.CategoryField, name), nil
}

func classifyCall(n syntax.Node) ([]types.Span, error) {
	callee, err := requireChild(n, 0)
	if err != nil {
		return nil, err
	}
	if callee.Kind() != "entity" {
		logger.DebugTagf("highlight", "function call %q has callee %s, not styled", callee.Content(), callee.Kind())
		return nil, nil
	}
	name, err := requireField(callee, "name")
	if err != nil {
		return nil, err
	}
	cat := types.CategoryFunction
	switch text := callee.Content(); {
	case builtinTypes.has(text):
		cat = types.CategoryTypeBuiltin
	case keywords.has(text):
		cat = types.CategoryKeyword
	}
	return one(cat, name), nil
}

func span(cat types.Category, n syntax.Node) types.Span {
	r := n.Range()
	return types.Span{Category: cat, Start: r.Start, End: r.End}
}

func one(cat types.Category, n syntax.Node) []types.Span {
	return []types.Span{span(cat, n)}
}

func onField(cat types.Category, n syntax.Node, field string) ([]types.Span, error) {
	f, err := requireField(n, field)
	if err != nil {
		return nil, err
	}
	return one(cat, f), nil
}

func onOptionalField(cat types.Category, n syntax.Node, field string) []types.Span {
	f, ok := n.ChildByFieldName(field)
	if !ok {
		return nil
	}
	return one(cat, f)
}

func requireField(n syntax.Node, field string) (syntax.Node, error) {
	f, ok := n.ChildByFieldName(field)
	if !ok {
		return syntax.Node{}, fmt.Errorf("%w: %s has no %q field", ErrContract, n.Kind(), field)
	}
	return f, nil
}

func requireChild(n syntax.Node, i int) (syntax.Node, error) {
	c, ok := n.Child(i)
	if !ok {
		return syntax.Node{}, fmt.Errorf("%w: %s has no child %d", ErrContract, n.Kind(), i)
	}
	return c, nil
}
