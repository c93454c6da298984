package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to editor actions.
type Keymap map[tcell.Key]Action

// Processor translates tcell key events into ActionEvents.
type Processor struct {
	keymap Keymap
}

// NewProcessor creates a processor with the default bindings.
func NewProcessor() *Processor {
	p := &Processor{keymap: make(Keymap)}
	p.loadDefaultBindings()
	return p
}

func (p *Processor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd

	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyTab] = ActionInsertTab
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward

	p.keymap[tcell.KeyCtrlQ] = ActionQuit
	p.keymap[tcell.KeyCtrlC] = ActionQuit
	p.keymap[tcell.KeyCtrlY] = ActionCopyDocument
	p.keymap[tcell.KeyCtrlP] = ActionPaste
	p.keymap[tcell.KeyCtrlR] = ActionRehighlight
}

// Bind maps key to action, replacing any existing binding.
func (p *Processor) Bind(key tcell.Key, action Action) {
	p.keymap[key] = action
}

// ProcessEvent returns the action bound to ev. Plain runes, with or without
// Shift, are insertions; runes with other modifiers are not bound.
func (p *Processor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	if key == tcell.KeyRune {
		if mod&^tcell.ModShift == tcell.ModNone {
			return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
		}
		return ActionEvent{Action: ActionUnknown}
	}

	// Ctrl-letter keys already carry the modifier in the key itself.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}
	if mod&^tcell.ModShift != tcell.ModNone {
		return ActionEvent{Action: ActionUnknown}
	}
	if action, ok := p.keymap[key]; ok {
		return ActionEvent{Action: action}
	}
	return ActionEvent{Action: ActionUnknown}
}
