package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/qat-editor/internal/buffer"
	"github.com/bethropolis/qat-editor/internal/theme"
	"github.com/bethropolis/qat-editor/internal/types"
)

func newTestTUI(t *testing.T, width, height int) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	ui, err := NewWithScreen(screen, theme.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(ui.Close)
	screen.SetSize(width, height)
	return ui, screen
}

func row(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		b.WriteString(string(cells[y*width+x].Runes))
	}
	return strings.TrimRight(b.String(), " ")
}

func styledDocument(text string, styles ...types.StyledRange) *buffer.Document {
	doc := buffer.NewDocument(nil)
	doc.SetText([]byte(text))
	for _, s := range styles {
		doc.ApplyStyle(s.Category, s.Start, s.End)
	}
	return doc
}

func TestDrawDocumentTextAndGutter(t *testing.T) {
	ui, screen := newTestTUI(t, 20, 4)
	doc := styledDocument("let x = 5;\ngive none;")

	DrawDocument(ui, doc, Viewport{StatusHeight: 1})
	ui.Show()

	require.Equal(t, "1 let x = 5;", row(screen, 0))
	require.Equal(t, "2 give none;", row(screen, 1))
	require.Equal(t, "", row(screen, 2))
}

func TestDrawDocumentAppliesCategoryStyles(t *testing.T) {
	ui, screen := newTestTUI(t, 20, 3)
	styles := ui.Styles()
	// second line starts at grapheme 11 ("let x = 5;" plus the line break)
	doc := styledDocument("let x = 5;\ngive none;",
		types.StyledRange{Start: 0, End: 3, Category: types.CategoryKeyword},
		types.StyledRange{Start: 16, End: 20, Category: types.CategoryConstant},
	)

	DrawDocument(ui, doc, Viewport{StatusHeight: 1})
	ui.Show()

	_, _, style, _ := screen.GetContent(2, 0) // "l"
	require.Equal(t, styles.StyleOrDefault(types.CategoryKeyword), style)
	_, _, style, _ = screen.GetContent(6, 0) // "x"
	require.Equal(t, styles.Default(), style)
	_, _, style, _ = screen.GetContent(7, 1) // "n" of none
	require.Equal(t, styles.StyleOrDefault(types.CategoryConstant), style)
	_, _, style, _ = screen.GetContent(0, 1)
	require.Equal(t, styles.Gutter(), style)
	_, _, style, _ = screen.GetContent(0, 0) // cursor line
	require.Equal(t, styles.Gutter().Bold(true), style)
}

func TestDrawDocumentScrolled(t *testing.T) {
	ui, screen := newTestTUI(t, 10, 3)
	doc := styledDocument("a\nbb\nccc",
		types.StyledRange{Start: 5, End: 8, Category: types.CategoryString},
	)

	DrawDocument(ui, doc, Viewport{Top: 2, StatusHeight: 1})
	ui.Show()

	require.Equal(t, "3 ccc", row(screen, 0))
	_, _, style, _ := screen.GetContent(3, 0)
	require.Equal(t, ui.Styles().StyleOrDefault(types.CategoryString), style)
}

func TestDrawDocumentExpandsTabs(t *testing.T) {
	ui, screen := newTestTUI(t, 20, 2)
	doc := styledDocument("\tx")

	DrawDocument(ui, doc, Viewport{TabWidth: 4, StatusHeight: 1})
	ui.Show()
	require.Equal(t, "1     x", row(screen, 0))
}

func TestDrawCursor(t *testing.T) {
	ui, screen := newTestTUI(t, 20, 4)
	doc := styledDocument("\tab\nc")

	DrawCursor(ui, doc, Viewport{Cursor: types.Position{Line: 0, Col: 2}, TabWidth: 4, StatusHeight: 1})
	ui.Show()
	x, y, visible := screen.GetCursor()
	require.True(t, visible)
	require.Equal(t, 7, x) // gutter 2 + tab 4 + "a"
	require.Equal(t, 0, y)

	DrawCursor(ui, doc, Viewport{Cursor: types.Position{Line: 1}, Top: 2, StatusHeight: 1})
	ui.Show()
	_, _, visible = screen.GetCursor()
	require.False(t, visible)
}

func TestScrollToCursor(t *testing.T) {
	doc := styledDocument("1\n2\n3\n4\n5\n6\nabcdefghijklmnop")

	vp := ScrollToCursor(Viewport{Cursor: types.Position{Line: 5}, StatusHeight: 1}, doc, 10, 4)
	require.Equal(t, 3, vp.Top)

	vp = ScrollToCursor(Viewport{Top: 4, Cursor: types.Position{Line: 1}, StatusHeight: 1}, doc, 10, 4)
	require.Equal(t, 1, vp.Top)

	vp = ScrollToCursor(Viewport{Cursor: types.Position{Line: 6, Col: 12}, StatusHeight: 1}, doc, 10, 4)
	require.Equal(t, 5, vp.Left) // text area is 8 wide
	require.Equal(t, 4, vp.Top)

	vp = ScrollToCursor(Viewport{Left: 5, Cursor: types.Position{Line: 6, Col: 2}, StatusHeight: 1}, doc, 10, 4)
	require.Equal(t, 2, vp.Left)
}

func TestVisualColumn(t *testing.T) {
	require.Equal(t, 0, visualColumn([]byte("abc"), 0, 4))
	require.Equal(t, 3, visualColumn([]byte("abc"), 10, 4))
	require.Equal(t, 4, visualColumn([]byte("\tx"), 1, 4))
	require.Equal(t, 8, visualColumn([]byte("ab\tx\t"), 5, 4))
	require.Equal(t, 2, visualColumn([]byte("\u4e2dx"), 1, 4))
}
