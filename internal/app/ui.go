package app

import (
	"github.com/bethropolis/qat-editor/internal/logger"
	"github.com/bethropolis/qat-editor/internal/tui"
)

// draw clears the screen and redraws all components.
func (a *App) draw() {
	width, height := a.ui.Size()

	a.viewport.Cursor = a.cursor
	a.viewport = tui.ScrollToCursor(a.viewport, a.doc, width, height)
	a.updateStatusBarContent()

	logger.DebugTagf("draw", "draw: screen %dx%d, top %d, left %d",
		width, height, a.viewport.Top, a.viewport.Left)

	a.ui.Clear()
	tui.DrawDocument(a.ui, a.doc, a.viewport)
	a.statusBar.Draw(a.ui.GetScreen(), width, height)
	tui.DrawCursor(a.ui, a.doc, a.viewport)
	a.ui.Show()
}

// updateStatusBarContent pushes the current editor state to the status bar.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetFileInfo(a.doc.FilePath(), a.doc.IsModified())
	a.statusBar.SetCursorInfo(a.cursor)
}
