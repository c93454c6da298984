package app

import (
	"context"

	"github.com/bethropolis/qat-editor/internal/event"
	"github.com/bethropolis/qat-editor/internal/input"
	"github.com/bethropolis/qat-editor/internal/logger"
	"github.com/bethropolis/qat-editor/internal/types"
)

// perform runs one decoded action and reports whether the screen needs a
// redraw.
func (a *App) perform(ae input.ActionEvent) bool {
	switch ae.Action {
	case input.ActionQuit:
		a.Quit()
		return false

	case input.ActionMoveUp:
		a.moveVertical(-1)
	case input.ActionMoveDown:
		a.moveVertical(1)
	case input.ActionMoveLeft:
		a.moveLeft()
	case input.ActionMoveRight:
		a.moveRight()
	case input.ActionMovePageUp:
		a.moveVertical(-a.pageSize())
	case input.ActionMovePageDown:
		a.moveVertical(a.pageSize())
	case input.ActionMoveHome:
		a.setCursor(types.Position{Line: a.cursor.Line})
	case input.ActionMoveEnd:
		a.setCursor(types.Position{Line: a.cursor.Line, Col: a.doc.LineLen(a.cursor.Line)})

	case input.ActionInsertRune:
		a.insertText([]byte(string(ae.Rune)))
	case input.ActionInsertNewLine:
		a.insertText([]byte("\n"))
	case input.ActionInsertTab:
		a.insertText([]byte("\t"))
	case input.ActionDeleteCharBackward:
		a.deleteBackward()
	case input.ActionDeleteCharForward:
		a.deleteForward()

	case input.ActionCopyDocument:
		a.copyDocument()
	case input.ActionPaste:
		a.paste()
	case input.ActionRehighlight:
		a.rehighlight()

	default:
		return false
	}
	return true
}

func (a *App) pageSize() int {
	_, height := a.ui.Size()
	if n := height - a.viewport.StatusHeight; n > 1 {
		return n
	}
	return 1
}

// setCursor clamps pos to the document and announces a move.
func (a *App) setCursor(pos types.Position) {
	lineCount := a.doc.LineCount()
	if pos.Line >= lineCount {
		pos.Line = lineCount - 1
	}
	if pos.Line < 0 {
		pos.Line = 0
	}
	if n := a.doc.LineLen(pos.Line); pos.Col > n {
		pos.Col = n
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if pos == a.cursor {
		return
	}
	a.cursor = pos
	a.events.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: pos})
}

func (a *App) moveVertical(delta int) {
	a.setCursor(types.Position{Line: a.cursor.Line + delta, Col: a.cursor.Col})
}

func (a *App) moveLeft() {
	switch {
	case a.cursor.Col > 0:
		a.setCursor(types.Position{Line: a.cursor.Line, Col: a.cursor.Col - 1})
	case a.cursor.Line > 0:
		a.setCursor(types.Position{Line: a.cursor.Line - 1, Col: a.doc.LineLen(a.cursor.Line - 1)})
	}
}

func (a *App) moveRight() {
	switch {
	case a.cursor.Col < a.doc.LineLen(a.cursor.Line):
		a.setCursor(types.Position{Line: a.cursor.Line, Col: a.cursor.Col + 1})
	case a.cursor.Line < a.doc.LineCount()-1:
		a.setCursor(types.Position{Line: a.cursor.Line + 1})
	}
}

// insertText inserts at the cursor and moves the cursor past the text. The
// highlight pass runs inside Insert.
func (a *App) insertText(text []byte) {
	end, err := a.doc.Insert(a.cursor, text)
	if err != nil {
		logger.Errorf("insert at %+v: %v", a.cursor, err)
		return
	}
	a.setCursor(end)
	a.statusBar.SetFileInfo(a.doc.FilePath(), a.doc.IsModified())
}

// deleteBackward removes the grapheme before the cursor, joining lines at
// the start of a line.
func (a *App) deleteBackward() {
	var start types.Position
	switch {
	case a.cursor.Col > 0:
		start = types.Position{Line: a.cursor.Line, Col: a.cursor.Col - 1}
	case a.cursor.Line > 0:
		start = types.Position{Line: a.cursor.Line - 1, Col: a.doc.LineLen(a.cursor.Line - 1)}
	default:
		return
	}
	if err := a.doc.Delete(start, a.cursor); err != nil {
		logger.Errorf("delete %+v-%+v: %v", start, a.cursor, err)
		return
	}
	a.setCursor(start)
	a.statusBar.SetFileInfo(a.doc.FilePath(), a.doc.IsModified())
}

// deleteForward removes the grapheme under the cursor, joining the next line
// at the end of a line.
func (a *App) deleteForward() {
	var end types.Position
	switch {
	case a.cursor.Col < a.doc.LineLen(a.cursor.Line):
		end = types.Position{Line: a.cursor.Line, Col: a.cursor.Col + 1}
	case a.cursor.Line < a.doc.LineCount()-1:
		end = types.Position{Line: a.cursor.Line + 1}
	default:
		return
	}
	if err := a.doc.Delete(a.cursor, end); err != nil {
		logger.Errorf("delete %+v-%+v: %v", a.cursor, end, err)
		return
	}
	a.statusBar.SetFileInfo(a.doc.FilePath(), a.doc.IsModified())
}

// rehighlight runs a pass without an edit, e.g. after the grammar library
// was rebuilt.
func (a *App) rehighlight() {
	if a.highlighter == nil {
		a.statusBar.SetTemporaryMessage("no language for this file")
		return
	}
	res, err := a.highlighter.Highlight(context.Background(), a.doc)
	if err != nil {
		logger.Errorf("highlight: pass aborted: %v", err)
	}
	a.events.Dispatch(event.TypeHighlightDone, event.HighlightDoneData{
		Parsed: res.Parsed,
		Spans:  res.Spans,
		Err:    err,
	})
}
