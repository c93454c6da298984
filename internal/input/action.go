package input

// Action represents an operation the editor performs in response to a key.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit

	// Cursor movement
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // beginning of line
	ActionMoveEnd  // end of line

	// Text manipulation
	ActionInsertRune
	ActionInsertNewLine
	ActionInsertTab
	ActionDeleteCharForward
	ActionDeleteCharBackward

	// Clipboard
	ActionCopyDocument
	ActionPaste

	ActionRehighlight
)

var actionNames = map[Action]string{
	ActionUnknown:            "unknown",
	ActionQuit:               "quit",
	ActionMoveUp:             "move_up",
	ActionMoveDown:           "move_down",
	ActionMoveLeft:           "move_left",
	ActionMoveRight:          "move_right",
	ActionMovePageUp:         "page_up",
	ActionMovePageDown:       "page_down",
	ActionMoveHome:           "move_home",
	ActionMoveEnd:            "move_end",
	ActionInsertRune:         "insert_rune",
	ActionInsertNewLine:      "insert_newline",
	ActionInsertTab:          "insert_tab",
	ActionDeleteCharForward:  "delete_forward",
	ActionDeleteCharBackward: "delete_backward",
	ActionCopyDocument:       "copy_document",
	ActionPaste:              "paste",
	ActionRehighlight:        "rehighlight",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent is a decoded key event. Rune is set for ActionInsertRune.
type ActionEvent struct {
	Action Action
	Rune   rune
}
