package app

import (
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/qat-editor/internal/logger"
)

// Clipboard stores text for copy and paste.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// register is an in-process clipboard.
type register struct {
	mu   sync.Mutex
	text string
}

func (r *register) ReadAll() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text, nil
}

func (r *register) WriteAll(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
	return nil
}

// newClipboard returns the system clipboard when wanted and available.
func newClipboard(system bool) Clipboard {
	if !system {
		return &register{}
	}
	if clipboard.Unsupported {
		logger.Warnf("system clipboard unavailable, using an internal one")
		return &register{}
	}
	return systemClipboard{}
}

func (a *App) copyDocument() {
	text := a.doc.Text()
	if err := a.clipboard.WriteAll(string(text)); err != nil {
		logger.Errorf("copy: %v", err)
		a.statusBar.SetTemporaryMessage("copy failed: %v", err)
		return
	}
	a.statusBar.SetTemporaryMessage("copied %d bytes", len(text))
}

func (a *App) paste() {
	text, err := a.clipboard.ReadAll()
	if err != nil {
		logger.Errorf("paste: %v", err)
		a.statusBar.SetTemporaryMessage("paste failed: %v", err)
		return
	}
	if text == "" {
		return
	}
	a.insertText([]byte(text))
}
