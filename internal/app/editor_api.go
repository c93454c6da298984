package app

import (
	"github.com/bethropolis/qat-editor/internal/event"
	"github.com/bethropolis/qat-editor/internal/plugin"
	"github.com/bethropolis/qat-editor/internal/types"
)

// editorAPI exposes the App to plugins.
type editorAPI struct {
	app *App
}

var _ plugin.EditorAPI = (*editorAPI)(nil)

func newEditorAPI(app *App) *editorAPI {
	return &editorAPI{app: app}
}

func (api *editorAPI) Text() []byte               { return api.app.doc.Text() }
func (api *editorAPI) LineCount() int             { return api.app.doc.LineCount() }
func (api *editorAPI) FilePath() string           { return api.app.doc.FilePath() }
func (api *editorAPI) Spans() []types.StyledRange { return api.app.doc.Spans() }
func (api *editorAPI) GetCursor() types.Position  { return api.app.cursor }

func (api *editorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.events.Subscribe(eventType, handler)
}

func (api *editorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
}
