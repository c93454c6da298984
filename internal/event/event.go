package event

import (
	"github.com/bethropolis/qat-editor/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// TypeTextChanged fires after every edit with the full document text.
	TypeTextChanged
	TypeBufferLoaded  // a document was (re)loaded from disk
	TypeCursorMoved   // the cursor moved
	TypeHighlightDone // a highlight pass finished

	TypeKeyPressed // raw key press forwarded from the terminal

	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeUnknown:       "unknown",
	TypeTextChanged:   "text_changed",
	TypeBufferLoaded:  "buffer_loaded",
	TypeCursorMoved:   "cursor_moved",
	TypeHighlightDone: "highlight_done",
	TypeKeyPressed:    "key_pressed",
	TypeAppReady:      "app_ready",
	TypeAppQuit:       "app_quit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// TextChangedData carries the document text after an edit and the edit itself.
type TextChangedData struct {
	Text []byte
	Edit types.EditInfo
}

// BufferLoadedData names the file that was loaded.
type BufferLoadedData struct {
	FilePath string
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}

// HighlightDoneData summarises a highlight pass. Err is set when a strict
// pass aborted.
type HighlightDoneData struct {
	Parsed bool
	Spans  int
	Err    error
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// AppQuitData could carry an exit reason later.
type AppQuitData struct{}

// AppReadyData could carry initial state later.
type AppReadyData struct{}
