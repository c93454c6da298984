// Package wordcount reports document statistics on Ctrl-W.
package wordcount

import (
	"bytes"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/qat-editor/internal/event"
	"github.com/bethropolis/qat-editor/internal/plugin"
)

var _ plugin.Plugin = (*WordCount)(nil)

// WordCount counts lines, words, bytes and highlighted spans.
type WordCount struct {
	api plugin.EditorAPI
	key tcell.Key
}

// New creates a new instance of the WordCount plugin.
func New() *WordCount {
	return &WordCount{key: tcell.KeyCtrlW}
}

func (p *WordCount) Name() string {
	return "WordCount"
}

// Initialize binds the plugin's key.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	if api == nil {
		return fmt.Errorf("wordcount: nil editor API")
	}
	p.api = api
	api.SubscribeEvent(event.TypeKeyPressed, p.handleKey)
	return nil
}

func (p *WordCount) Shutdown() error {
	return nil
}

func (p *WordCount) handleKey(e event.Event) bool {
	data, ok := e.Data.(event.KeyPressedData)
	if !ok || data.KeyEvent == nil || data.KeyEvent.Key() != p.key {
		return false
	}
	p.api.SetStatusMessage("%s", p.Summary())
	return true
}

// Summary formats the current statistics.
func (p *WordCount) Summary() string {
	text := p.api.Text()
	return fmt.Sprintf("Lines: %d, Words: %d, Bytes: %d, Spans: %d",
		p.api.LineCount(), len(bytes.Fields(text)), len(text), len(p.api.Spans()))
}
