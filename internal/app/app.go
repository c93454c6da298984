// Package app wires the document, highlighter and terminal UI into the
// editor and runs its event loop.
package app

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/qat-editor/internal/buffer"
	"github.com/bethropolis/qat-editor/internal/config"
	"github.com/bethropolis/qat-editor/internal/event"
	"github.com/bethropolis/qat-editor/internal/highlighter"
	"github.com/bethropolis/qat-editor/internal/highlighter/lang"
	"github.com/bethropolis/qat-editor/internal/input"
	"github.com/bethropolis/qat-editor/internal/logger"
	"github.com/bethropolis/qat-editor/internal/plugin"
	"github.com/bethropolis/qat-editor/internal/statusbar"
	"github.com/bethropolis/qat-editor/internal/theme"
	"github.com/bethropolis/qat-editor/internal/tui"
	"github.com/bethropolis/qat-editor/internal/types"
	"github.com/bethropolis/qat-editor/internal/watcher"
	"github.com/bethropolis/qat-editor/plugins/wordcount"
)

// Options configures a new App.
type Options struct {
	FilePath string
	Config   *config.Config

	// Language highlights the document. Nil leaves it plain.
	Language *lang.Language

	// Screen is the terminal to draw on. Nil opens the real terminal.
	Screen tcell.Screen

	// Clipboard overrides the clipboard chosen from Config.
	Clipboard Clipboard

	// Plugins are registered after the built-in ones.
	Plugins []plugin.Plugin
}

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg         *config.Config
	ui          *tui.TUI
	doc         *buffer.Document
	events      *event.Manager
	statusBar   *statusbar.StatusBar
	input       *input.Processor
	clipboard   Clipboard
	language    *lang.Language
	highlighter *highlighter.Highlighter
	plugins     *plugin.Manager

	watcher *watcher.Watcher
	changes <-chan struct{} // nil unless watching

	viewport tui.Viewport
	cursor   types.Position

	screenEvents chan tcell.Event
	quit         chan struct{}
	quitOnce     sync.Once
	closeOnce    sync.Once
}

// New creates the editor, loads opts.FilePath and runs the first highlight
// pass over it.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	styles := theme.NewRegistry()
	var (
		ui  *tui.TUI
		err error
	)
	if opts.Screen != nil {
		ui, err = tui.NewWithScreen(opts.Screen, styles)
	} else {
		ui, err = tui.New(styles)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	statusCfg := statusbar.DefaultConfig()
	statusCfg.MessageTimeout = config.MessageTimeout

	events := event.NewManager()
	a := &App{
		cfg:       cfg,
		ui:        ui,
		doc:       buffer.NewDocument(events),
		events:    events,
		statusBar: statusbar.New(statusCfg),
		input:     input.NewProcessor(),
		plugins:   plugin.NewManager(),
		clipboard: opts.Clipboard,
		language:  opts.Language,
		viewport: tui.Viewport{
			TabWidth:     cfg.Editor.TabWidth,
			StatusHeight: config.StatusBarHeight,
		},
		screenEvents: make(chan tcell.Event),
		quit:         make(chan struct{}),
	}
	if a.clipboard == nil {
		a.clipboard = newClipboard(cfg.Editor.SystemClipboard)
	}

	a.subscribe()

	for _, p := range append([]plugin.Plugin{wordcount.New()}, opts.Plugins...) {
		if err := a.plugins.Register(p); err != nil {
			logger.Warnf("skipping plugin: %v", err)
		}
	}
	a.plugins.InitializePlugins(newEditorAPI(a))

	if a.language != nil {
		a.highlighter = a.language.NewHighlighter(highlighter.WithStrict(cfg.Highlight.Strict))
		a.highlighter.Attach(events, a.doc)
		a.statusBar.SetLanguage(a.language.Name)
		logger.Infof("highlighting as %s (strict=%t)", a.language.Name, a.highlighter.Strict())
	} else {
		logger.Infof("no language for %q, highlighting disabled", opts.FilePath)
	}

	if opts.FilePath != "" {
		// Load announces the text, which runs the initial highlight pass.
		if err := a.doc.Load(opts.FilePath); err != nil {
			ui.Close()
			return nil, fmt.Errorf("loading %s: %w", opts.FilePath, err)
		}
		if cfg.Editor.Watch {
			a.startWatcher(opts.FilePath)
		}
	}

	return a, nil
}

func (a *App) startWatcher(path string) {
	w, err := watcher.New(watcher.Config{Path: path, DebounceDur: config.WatchDebounce})
	if err != nil {
		logger.Warnf("file watching disabled: %v", err)
		return
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		logger.Warnf("file watching disabled: %v", err)
		return
	}
	a.watcher = w
	a.changes = changes
	logger.Debugf("watching %s for changes", path)
}

// Document returns the document being edited.
func (a *App) Document() *buffer.Document { return a.doc }

// Events returns the application event bus.
func (a *App) Events() *event.Manager { return a.events }

// Cursor returns the cursor position.
func (a *App) Cursor() types.Position { return a.cursor }

// Run starts the application's main event loop. It returns after a quit
// action and releases the terminal.
func (a *App) Run() error {
	defer a.Close()

	go a.pollEvents()

	a.events.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("Ctrl-Q Quit | Ctrl-Y Copy | Ctrl-P Paste | Ctrl-R Rehighlight | Ctrl-W Count")
	a.draw()

	for {
		select {
		case <-a.quit:
			a.events.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.doc.IsModified() {
				logger.Warnf("exited with unsaved changes")
			}
			logger.Infof("exiting application")
			return nil
		case ev := <-a.screenEvents:
			if a.handleEvent(ev) {
				a.draw()
			}
		case <-a.changes:
			a.reload()
			a.draw()
		}
	}
}

// pollEvents forwards terminal events to the main loop until the screen is
// finalized.
func (a *App) pollEvents() {
	for {
		ev := a.ui.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.screenEvents <- ev:
		case <-a.quit:
			return
		}
	}
}

// Quit asks the main loop to stop.
func (a *App) Quit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// Close stops the watcher and restores the terminal. It is safe to call
// more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.Quit()
		a.plugins.ShutdownPlugins()
		if a.watcher != nil {
			if err := a.watcher.Stop(); err != nil {
				logger.Warnf("stopping watcher: %v", err)
			}
		}
		a.ui.Close()
	})
}

// reload rereads the file after it changed on disk, unless there are edits
// that would be lost.
func (a *App) reload() {
	path := a.doc.FilePath()
	if a.doc.IsModified() {
		logger.Infof("%s changed on disk; keeping unsaved edits", path)
		a.statusBar.SetTemporaryMessage("%s changed on disk (unsaved edits kept)", path)
		return
	}
	if err := a.doc.Load(path); err != nil {
		logger.Errorf("reloading %s: %v", path, err)
		a.statusBar.SetTemporaryMessage("reload failed: %v", err)
		return
	}
	a.setCursor(a.cursor)
	a.statusBar.SetTemporaryMessage("reloaded %s", path)
}
