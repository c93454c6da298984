package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/qat-editor/internal/event"
	"github.com/bethropolis/qat-editor/internal/logger"
)

// subscribe wires the status bar to the event bus.
func (a *App) subscribe() {
	a.events.Subscribe(event.TypeBufferLoaded, a.handleBufferLoadedForStatus)
	a.events.Subscribe(event.TypeCursorMoved, a.handleCursorMovedForStatus)
	a.events.Subscribe(event.TypeHighlightDone, a.handleHighlightDoneForStatus)
}

func (a *App) handleBufferLoadedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.BufferLoadedData); ok {
		a.statusBar.SetFileInfo(data.FilePath, false)
	}
	return false
}

func (a *App) handleCursorMovedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.CursorMovedData); ok {
		a.statusBar.SetCursorInfo(data.NewPosition)
	}
	return false
}

func (a *App) handleHighlightDoneForStatus(e event.Event) bool {
	data, ok := e.Data.(event.HighlightDoneData)
	if !ok {
		logger.Warnf("app: highlight_done with unexpected data type: %T", e.Data)
		return false
	}
	a.statusBar.SetHighlightInfo(data.Parsed, data.Spans, data.Err)
	return false
}

// handleEvent reacts to one terminal event and reports whether the screen
// needs a redraw.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.ui.GetScreen().Sync()
		return true
	case *tcell.EventKey:
		if a.events.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev}) {
			return true
		}
		return a.perform(a.input.ProcessEvent(ev))
	}
	return false
}
