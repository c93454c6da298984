package buffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bethropolis/qat-editor/internal/event"
	"github.com/bethropolis/qat-editor/internal/types"
)

// recorder collects text-changed payloads.
type recorder struct {
	changes []event.TextChangedData
}

func (r *recorder) subscribe(m *event.Manager) {
	m.Subscribe(event.TypeTextChanged, func(e event.Event) bool {
		r.changes = append(r.changes, e.Data.(event.TextChangedData))
		return false
	})
}

func newDocument(t *testing.T, text string) (*Document, *recorder) {
	t.Helper()
	events := event.NewManager()
	rec := &recorder{}
	rec.subscribe(events)
	doc := NewDocument(events)
	doc.SetText([]byte(text))
	rec.changes = nil
	return doc, rec
}

func TestApplyStyleHigherCategoryWins(t *testing.T) {
	doc, _ := newDocument(t, "let x = 5;")
	doc.ApplyStyle(types.CategoryString, 0, 5)
	doc.ApplyStyle(types.CategoryKeyword, 0, 3)
	doc.ApplyStyle(types.CategorySymbols, 4, 6)

	require.Equal(t, types.CategoryString, doc.StyleAt(0))
	require.Equal(t, types.CategoryString, doc.StyleAt(3))
	require.Equal(t, types.CategorySymbols, doc.StyleAt(4))
	require.Equal(t, types.CategorySymbols, doc.StyleAt(5))
	require.Equal(t, types.CategoryNone, doc.StyleAt(6))
	require.Equal(t, types.CategoryNone, doc.StyleAt(-1))
	require.Equal(t, types.CategoryNone, doc.StyleAt(100))
}

func TestApplyStyleClamps(t *testing.T) {
	doc, _ := newDocument(t, "abc")
	doc.ApplyStyle(types.CategoryDead, -5, 50)
	require.Equal(t, []types.StyledRange{{Start: 0, End: 3, Category: types.CategoryDead}}, doc.Spans())
}

func TestClearStyles(t *testing.T) {
	doc, _ := newDocument(t, "give none;")
	doc.ApplyStyle(types.CategoryKeyword, 0, 4)
	doc.ApplyStyle(types.CategoryConstant, 5, 9)
	require.Len(t, doc.Spans(), 2)

	doc.ClearStyles()
	require.Empty(t, doc.Spans())
	require.Equal(t, 10, doc.GraphemeCount())
}

func TestSpansMergeAdjacentRuns(t *testing.T) {
	doc, _ := newDocument(t, "abcdef")
	doc.ApplyStyle(types.CategoryField, 0, 2)
	doc.ApplyStyle(types.CategoryField, 2, 3)
	doc.ApplyStyle(types.CategoryType, 4, 6)

	require.Equal(t, []types.StyledRange{
		{Start: 0, End: 3, Category: types.CategoryField},
		{Start: 4, End: 6, Category: types.CategoryType},
	}, doc.Spans())
}

func TestInsertNotifiesWithText(t *testing.T) {
	doc, rec := newDocument(t, "let = 5;")
	end, err := doc.Insert(types.Position{Col: 4}, []byte("x "))
	require.NoError(t, err)
	require.Equal(t, types.Position{Col: 6}, end)

	require.Len(t, rec.changes, 1)
	require.Equal(t, "let x = 5;", string(rec.changes[0].Text))
	require.Equal(t, types.EditInfo{Start: 4, OldEnd: 4, NewEnd: 6}, rec.changes[0].Edit)
	require.True(t, doc.IsModified())
}

func TestInsertEmptyDoesNotNotify(t *testing.T) {
	doc, rec := newDocument(t, "abc")
	end, err := doc.Insert(types.Position{Col: 1}, nil)
	require.NoError(t, err)
	require.Equal(t, types.Position{Col: 1}, end)
	require.Empty(t, rec.changes)
}

func TestEditsShiftStyles(t *testing.T) {
	doc, _ := newDocument(t, "let x = 5;")
	doc.ApplyStyle(types.CategoryKeyword, 0, 3)
	doc.ApplyStyle(types.CategoryConstant, 8, 9)

	_, err := doc.Insert(types.Position{Col: 4}, []byte("yy"))
	require.NoError(t, err)
	require.Equal(t, 12, doc.GraphemeCount())
	require.Equal(t, types.CategoryKeyword, doc.StyleAt(2))
	require.Equal(t, types.CategoryNone, doc.StyleAt(4))
	require.Equal(t, types.CategoryConstant, doc.StyleAt(10))

	require.NoError(t, doc.Delete(types.Position{Col: 0}, types.Position{Col: 4}))
	require.Equal(t, "yyx = 5;", string(doc.Text()))
	require.Equal(t, types.CategoryConstant, doc.StyleAt(6))
	require.Len(t, doc.Styles(), 8)
}

func TestHandlerCanStyleDuringNotification(t *testing.T) {
	events := event.NewManager()
	doc := NewDocument(events)
	events.Subscribe(event.TypeTextChanged, func(e event.Event) bool {
		doc.ClearStyles()
		doc.ApplyStyle(types.CategoryString, 0, len(e.Data.(event.TextChangedData).Text))
		return false
	})

	_, err := doc.Insert(types.Position{}, []byte(`"hi"`))
	require.NoError(t, err)
	require.Equal(t, []types.StyledRange{{Start: 0, End: 4, Category: types.CategoryString}}, doc.Spans())
}

func TestDocumentLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.qat")
	require.NoError(t, os.WriteFile(path, []byte("say \"h\u00e9\";\n"), 0o644))

	events := event.NewManager()
	var loaded []string
	events.Subscribe(event.TypeBufferLoaded, func(e event.Event) bool {
		loaded = append(loaded, e.Data.(event.BufferLoadedData).FilePath)
		return false
	})
	rec := &recorder{}
	rec.subscribe(events)

	doc := NewDocument(events)
	require.NoError(t, doc.Load(path))
	require.Equal(t, []string{path}, loaded)
	require.Len(t, rec.changes, 1)
	require.Equal(t, "say \"h\u00e9\";", string(rec.changes[0].Text))
	require.Equal(t, 9, doc.GraphemeCount())
	require.Equal(t, path, doc.FilePath())
	require.False(t, doc.IsModified())
}

func TestDocumentLoadError(t *testing.T) {
	doc := NewDocument(nil)
	err := doc.Load(t.TempDir())
	require.Error(t, err)
}

func TestDocumentLineAccess(t *testing.T) {
	doc, _ := newDocument(t, "one\ntwo")
	require.Equal(t, 2, doc.LineCount())
	line, err := doc.Line(1)
	require.NoError(t, err)
	require.Equal(t, "two", string(line))
	_, err = doc.Line(2)
	require.Error(t, err)
	require.Equal(t, 3, doc.LineLen(0))
	require.Equal(t, 4, doc.Offset(types.Position{Line: 1}))
	require.Equal(t, types.Position{Line: 1, Col: 1}, doc.PositionOf(5))
	require.Len(t, doc.Lines(), 2)
}
