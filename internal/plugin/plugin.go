// Package plugin defines the extension points of the editor.
package plugin

import (
	"github.com/bethropolis/qat-editor/internal/event"
	"github.com/bethropolis/qat-editor/internal/types"
)

// EditorAPI is what plugins may see and do. It keeps plugins away from the
// document's styles, which only the highlighter writes.
type EditorAPI interface {
	// Document access, read-only
	Text() []byte
	LineCount() int
	FilePath() string
	Spans() []types.StyledRange
	GetCursor() types.Position

	// Event bus
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// Status bar
	SetStatusMessage(format string, args ...interface{})
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once before the event loop starts. Plugins
	// subscribe to events here.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
