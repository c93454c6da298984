package tui

import (
	"fmt"
	"math"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/qat-editor/internal/types"
)

// Document is what drawing needs from the buffer: its lines and one
// category per grapheme, counting each line break as one grapheme.
type Document interface {
	Lines() [][]byte
	Styles() []types.Category
}

// Viewport is the visible window into the document.
type Viewport struct {
	Top          int // first visible line
	Left         int // first visible visual column
	Cursor       types.Position
	TabWidth     int
	StatusHeight int
}

func (vp Viewport) tabWidth() int {
	if vp.TabWidth <= 0 {
		return 4
	}
	return vp.TabWidth
}

// gutterWidth returns the width of the line number column, or 0 when the
// screen is too narrow for it.
func gutterWidth(lineCount, width int) (gutter, digits int) {
	if lineCount <= 0 {
		lineCount = 1
	}
	digits = int(math.Log10(float64(lineCount))) + 1
	gutter = digits + 1
	if gutter >= width {
		return 0, digits
	}
	return gutter, digits
}

// clusterWidth is the visual width of a grapheme starting at visual column x.
func clusterWidth(runes []rune, width, x, tabWidth int) int {
	if len(runes) > 0 && runes[0] == '\t' {
		return tabWidth - x%tabWidth
	}
	return width
}

// visualColumn returns the visual column of grapheme col within line.
func visualColumn(line []byte, col, tabWidth int) int {
	x := 0
	gr := uniseg.NewGraphemes(string(line))
	for i := 0; i < col && gr.Next(); i++ {
		x += clusterWidth(gr.Runes(), gr.Width(), x, tabWidth)
	}
	return x
}

// DrawDocument draws the visible part of doc with its highlight styles.
func DrawDocument(t *TUI, doc Document, vp Viewport) {
	defaultStyle := t.styles.Default()
	gutterStyle := t.styles.Gutter()

	width, height := t.Size()
	viewHeight := height - vp.StatusHeight
	if viewHeight <= 0 || width <= 0 {
		return
	}

	lines := doc.Lines()
	styles := doc.Styles()
	gutter, digits := gutterWidth(len(lines), width)
	textAreaWidth := width - gutter
	tabWidth := vp.tabWidth()

	// document grapheme offset of the first visible line
	offset := 0
	for i := 0; i < vp.Top && i < len(lines); i++ {
		offset += uniseg.GraphemeClusterCount(string(lines[i])) + 1
	}

	for screenY := 0; screenY < viewHeight; screenY++ {
		lineIdx := screenY + vp.Top

		for x := 0; x < width; x++ {
			t.screen.SetContent(x, screenY, ' ', nil, defaultStyle)
		}
		if lineIdx < 0 || lineIdx >= len(lines) {
			continue
		}

		if gutter > 0 {
			style := gutterStyle
			if vp.Cursor.Line == lineIdx {
				style = style.Bold(true)
			}
			for i, r := range fmt.Sprintf("%*d", digits, lineIdx+1) {
				t.screen.SetContent(i, screenY, r, nil, style)
			}
		}

		visualX := 0
		gr := uniseg.NewGraphemes(string(lines[lineIdx]))
		for gr.Next() {
			runes := gr.Runes()
			w := clusterWidth(runes, gr.Width(), visualX, tabWidth)

			cat := types.CategoryNone
			if offset < len(styles) {
				cat = styles[offset]
			}
			style := t.styles.StyleOrDefault(cat)

			screenX := visualX - vp.Left + gutter
			if visualX >= vp.Left && visualX < vp.Left+textAreaWidth {
				if runes[0] == '\t' {
					for i := 0; i < w && screenX+i < width; i++ {
						t.screen.SetContent(screenX+i, screenY, ' ', nil, style)
					}
				} else {
					t.screen.SetContent(screenX, screenY, runes[0], runes[1:], style)
				}
			}

			visualX += w
			offset++
		}
		offset++ // line break
	}
}

// DrawCursor positions the terminal cursor, hiding it when it is off screen.
func DrawCursor(t *TUI, doc Document, vp Viewport) {
	width, height := t.Size()
	lines := doc.Lines()
	gutter, _ := gutterWidth(len(lines), width)

	if vp.Cursor.Line < 0 || vp.Cursor.Line >= len(lines) {
		t.screen.HideCursor()
		return
	}
	col := visualColumn(lines[vp.Cursor.Line], vp.Cursor.Col, vp.tabWidth())

	screenX := col - vp.Left + gutter
	screenY := vp.Cursor.Line - vp.Top
	viewHeight := height - vp.StatusHeight

	if screenX < gutter || screenX >= width || screenY < 0 || screenY >= viewHeight {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(screenX, screenY)
}

// ScrollToCursor moves the viewport the least amount that brings the cursor
// into view on a width x height screen.
func ScrollToCursor(vp Viewport, doc Document, width, height int) Viewport {
	lines := doc.Lines()
	viewHeight := height - vp.StatusHeight
	if viewHeight < 1 {
		viewHeight = 1
	}
	switch {
	case vp.Cursor.Line < vp.Top:
		vp.Top = vp.Cursor.Line
	case vp.Cursor.Line >= vp.Top+viewHeight:
		vp.Top = vp.Cursor.Line - viewHeight + 1
	}

	if vp.Cursor.Line < 0 || vp.Cursor.Line >= len(lines) {
		return vp
	}
	gutter, _ := gutterWidth(len(lines), width)
	textAreaWidth := width - gutter
	if textAreaWidth < 1 {
		textAreaWidth = 1
	}
	col := visualColumn(lines[vp.Cursor.Line], vp.Cursor.Col, vp.tabWidth())
	switch {
	case col < vp.Left:
		vp.Left = col
	case col >= vp.Left+textAreaWidth:
		vp.Left = col - textAreaWidth + 1
	}
	return vp
}
