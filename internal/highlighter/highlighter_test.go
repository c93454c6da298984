package highlighter_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bethropolis/qat-editor/internal/buffer"
	"github.com/bethropolis/qat-editor/internal/event"
	"github.com/bethropolis/qat-editor/internal/highlighter"
	"github.com/bethropolis/qat-editor/internal/highlighter/qat"
	"github.com/bethropolis/qat-editor/internal/syntax"
	. "github.com/bethropolis/qat-editor/internal/syntax/syntaxtest"
	"github.com/bethropolis/qat-editor/internal/types"
)

var errUnparsable = errors.New("unparsable")

// shapes is a fake grammar: it lays the description registered for a text
// over that text, and fails for anything else.
type shapes map[string]Spec

func (s shapes) Parse(_ context.Context, src []byte) (*syntax.Tree, error) {
	root, ok := s[string(src)]
	if !ok {
		return nil, errUnparsable
	}
	return Build(string(src), root)
}

func ident(text string) Spec { return F("name", L("identifier", text)) }

var sources = shapes{
	"let x = 5;": N("source_file",
		N("statement_declaration",
			T("let"),
			ident("x"),
			T("="),
			F("value", L("literal_integer", "5")),
		),
		T(";"),
	),
	"struct Point end": N("source_file",
		N("struct_definition", T("struct"), ident("Point"), T("end")),
	),
	"give none;": N("source_file",
		N("give_sentence", T("give"), T("none")),
		T(";"),
	),
	"foo(1);": N("source_file",
		N("function_call",
			N("entity", ident("foo")),
			T("("),
			L("literal_integer", "1"),
			T(")"),
		),
		T(";"),
	),
	"x = \"h\u00e9llo\";": N("source_file",
		L("identifier", "x"),
		T("="),
		L("literal_string", "\"h\u00e9llo\""),
		T(";"),
	),
	"fn end": N("source_file",
		N("function_definition", T("fn"), T("end")),
	),
}

func newDocument(t *testing.T, text string) *buffer.Document {
	t.Helper()
	doc := buffer.NewDocument(nil)
	doc.SetText([]byte(text))
	return doc
}

func highlight(t *testing.T, text string) []types.StyledRange {
	t.Helper()
	doc := newDocument(t, text)
	h := highlighter.New(sources, qat.NewClassifier(), highlighter.WithStrict(true))
	res, err := h.Highlight(context.Background(), doc)
	require.NoError(t, err)
	require.True(t, res.Parsed)
	return doc.Spans()
}

func TestScenarioLetDeclaration(t *testing.T) {
	require.Equal(t, []types.StyledRange{
		{Start: 0, End: 3, Category: types.CategoryKeyword},
		{Start: 4, End: 5, Category: types.CategoryField},
		{Start: 8, End: 9, Category: types.CategoryConstant},
		{Start: 9, End: 10, Category: types.CategorySymbols},
	}, highlight(t, "let x = 5;"))
}

func TestScenarioStructDefinition(t *testing.T) {
	require.Equal(t, []types.StyledRange{
		{Start: 0, End: 6, Category: types.CategoryKeyword},
		{Start: 7, End: 12, Category: types.CategoryType},
		{Start: 13, End: 16, Category: types.CategoryKeyword},
	}, highlight(t, "struct Point end"))
}

func TestScenarioGiveNone(t *testing.T) {
	require.Equal(t, []types.StyledRange{
		{Start: 0, End: 4, Category: types.CategoryKeyword},
		{Start: 5, End: 9, Category: types.CategoryConstant},
		{Start: 9, End: 10, Category: types.CategorySymbols},
	}, highlight(t, "give none;"))
}

func TestScenarioFunctionCall(t *testing.T) {
	require.Equal(t, []types.StyledRange{
		{Start: 0, End: 3, Category: types.CategoryFunction},
		{Start: 4, End: 5, Category: types.CategoryConstant},
		{Start: 6, End: 7, Category: types.CategorySymbols},
	}, highlight(t, "foo(1);"))
}

func TestScenarioUnparsableKeepsStyles(t *testing.T) {
	doc := newDocument(t, "let x = 5;")
	h := highlighter.New(sources, qat.NewClassifier())
	_, err := h.Highlight(context.Background(), doc)
	require.NoError(t, err)
	before := doc.Styles()

	_, err = doc.Insert(types.Position{Col: 10}, []byte(" @@"))
	require.NoError(t, err)

	res, err := h.Highlight(context.Background(), doc)
	require.NoError(t, err)
	require.False(t, res.Parsed)
	require.Equal(t, before, doc.Styles()[:len(before)])
}

func TestGrammarWithoutTree(t *testing.T) {
	doc := newDocument(t, "abc")
	doc.ApplyStyle(types.CategoryDead, 0, 3)
	empty := syntax.GrammarFunc(func(context.Context, []byte) (*syntax.Tree, error) {
		return nil, nil
	})

	res, err := highlighter.New(empty, qat.NewClassifier()).Highlight(context.Background(), doc)
	require.NoError(t, err)
	require.False(t, res.Parsed)
	require.Len(t, doc.Spans(), 1)
}

func TestTranslatesMultiByteGraphemes(t *testing.T) {
	require.Equal(t, []types.StyledRange{
		{Start: 4, End: 11, Category: types.CategoryString},
		{Start: 11, End: 12, Category: types.CategorySymbols},
	}, highlight(t, "x = \"h\u00e9llo\";"))
}

func TestPassIsIdempotent(t *testing.T) {
	for text := range sources {
		if strings.HasPrefix(text, "fn") {
			continue
		}
		doc := newDocument(t, text)
		h := highlighter.New(sources, qat.NewClassifier())

		_, err := h.Highlight(context.Background(), doc)
		require.NoError(t, err)
		once := doc.Styles()

		_, err = h.Highlight(context.Background(), doc)
		require.NoError(t, err)
		require.Equal(t, once, doc.Styles(), text)

		doc.ClearStyles()
		_, err = h.Highlight(context.Background(), doc)
		require.NoError(t, err)
		require.Equal(t, once, doc.Styles(), text)
	}
}

func TestPassClearsStaleStyles(t *testing.T) {
	doc := newDocument(t, "give none;")
	doc.ApplyStyle(types.CategoryImportant, 0, 10)

	_, err := highlighter.New(sources, qat.NewClassifier()).Highlight(context.Background(), doc)
	require.NoError(t, err)
	require.Equal(t, types.CategoryNone, doc.StyleAt(4))
	require.Equal(t, types.CategoryKeyword, doc.StyleAt(0))
}

func TestStrictModeAbortsOnContractError(t *testing.T) {
	doc := newDocument(t, "fn end")
	h := highlighter.New(sources, qat.NewClassifier(), highlighter.WithStrict(true))
	require.True(t, h.Strict())

	res, err := h.Highlight(context.Background(), doc)
	require.ErrorIs(t, err, qat.ErrContract)
	require.True(t, res.Parsed)
	require.Contains(t, err.Error(), "function_definition")
	require.Empty(t, doc.Spans())
}

func TestLenientModeSkipsContractError(t *testing.T) {
	doc := newDocument(t, "fn end")
	h := highlighter.New(sources, qat.NewClassifier())
	require.False(t, h.Strict())

	res, err := h.Highlight(context.Background(), doc)
	require.NoError(t, err)
	require.Equal(t, 1, res.Skipped)
	require.Equal(t, 4, res.Nodes)
	require.Equal(t, []types.StyledRange{
		{Start: 3, End: 6, Category: types.CategoryKeyword},
	}, doc.Spans())
}

func TestAttachHighlightsEveryEdit(t *testing.T) {
	bus := event.NewManager()
	doc := buffer.NewDocument(bus)
	h := highlighter.New(sources, qat.NewClassifier())
	h.Attach(bus, doc)

	var done []event.HighlightDoneData
	bus.Subscribe(event.TypeHighlightDone, func(e event.Event) bool {
		done = append(done, e.Data.(event.HighlightDoneData))
		return false
	})

	_, err := doc.Insert(types.Position{}, []byte("give none"))
	require.NoError(t, err)
	require.Len(t, done, 1)
	require.False(t, done[0].Parsed)

	_, err = doc.Insert(types.Position{Col: 9}, []byte(";"))
	require.NoError(t, err)
	require.Len(t, done, 2)
	require.True(t, done[1].Parsed)
	require.Equal(t, 3, done[1].Spans)
	require.Equal(t, types.CategoryConstant, doc.StyleAt(5))
}
