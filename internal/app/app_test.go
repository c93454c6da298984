package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/qat-editor/internal/config"
	"github.com/bethropolis/qat-editor/internal/event"
	"github.com/bethropolis/qat-editor/internal/highlighter/lang"
	"github.com/bethropolis/qat-editor/internal/syntax"
	. "github.com/bethropolis/qat-editor/internal/syntax/syntaxtest"
	"github.com/bethropolis/qat-editor/internal/theme"
	"github.com/bethropolis/qat-editor/internal/types"
)

// words parses text as a flat run of raw tokens, one per word, which is
// enough for keywords and constants to be classified.
var words = syntax.GrammarFunc(func(_ context.Context, src []byte) (*syntax.Tree, error) {
	var tokens []Spec
	for _, w := range strings.Fields(string(src)) {
		tokens = append(tokens, T(w))
	}
	return Build(string(src), N("source_file", tokens...))
})

var errBroken = errors.New("broken grammar")

var broken = syntax.GrammarFunc(func(context.Context, []byte) (*syntax.Tree, error) {
	return nil, errBroken
})

type fakeClipboard struct{ text string }

func (c *fakeClipboard) ReadAll() (string, error)   { return c.text, nil }
func (c *fakeClipboard) WriteAll(text string) error { c.text = text; return nil }

func newTestApp(t *testing.T, opts Options) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	opts.Screen = screen
	if opts.Language == nil {
		opts.Language = lang.Qat(words)
	}
	if opts.Clipboard == nil {
		opts.Clipboard = &fakeClipboard{}
	}
	a, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	screen.SetSize(40, 5)
	return a, screen
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(a *App, text string) {
	for _, r := range text {
		a.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func screenRow(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		b.WriteString(string(cells[y*width+x].Runes))
	}
	return strings.TrimRight(b.String(), " ")
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.qat")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestTypingHighlights(t *testing.T) {
	a, screen := newTestApp(t, Options{})

	typeText(a, "let x")
	require.Equal(t, "let x", string(a.Document().Text()))
	require.Equal(t, types.Position{Col: 5}, a.Cursor())
	require.Equal(t, []types.StyledRange{{Start: 0, End: 3, Category: types.CategoryKeyword}}, a.Document().Spans())

	a.draw()
	require.Equal(t, "1 let x", screenRow(screen, 0))
	_, _, style, _ := screen.GetContent(2, 0)
	require.Equal(t, theme.NewRegistry().StyleOrDefault(types.CategoryKeyword), style)

	require.Equal(t, "[No Name] [Modified] -- Line: 1, Col: 6", screenRow(screen, 4)[:39])
	status, _ := a.statusBar.Text()
	require.True(t, strings.HasSuffix(status, "-- qat -- 1 spans"))
}

func TestLoadRunsInitialPass(t *testing.T) {
	path := writeFile(t, "give none")
	a, _ := newTestApp(t, Options{FilePath: path})

	require.Equal(t, []types.StyledRange{
		{Start: 0, End: 4, Category: types.CategoryKeyword},
		{Start: 5, End: 9, Category: types.CategoryConstant},
	}, a.Document().Spans())
	require.False(t, a.Document().IsModified())
}

func TestEditingKeys(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	typeText(a, "ab")
	a.handleEvent(key(tcell.KeyEnter))
	typeText(a, "cd")
	require.Equal(t, "ab\ncd", string(a.Document().Text()))
	require.Equal(t, types.Position{Line: 1, Col: 2}, a.Cursor())

	a.handleEvent(key(tcell.KeyHome))
	a.handleEvent(key(tcell.KeyBackspace2))
	require.Equal(t, "abcd", string(a.Document().Text()))
	require.Equal(t, types.Position{Col: 2}, a.Cursor())

	a.handleEvent(key(tcell.KeyDelete))
	require.Equal(t, "abd", string(a.Document().Text()))

	a.handleEvent(key(tcell.KeyTab))
	require.Equal(t, "ab\td", string(a.Document().Text()))

	a.handleEvent(key(tcell.KeyEnd))
	a.handleEvent(key(tcell.KeyDelete))
	require.Equal(t, "ab\td", string(a.Document().Text()))
	require.Equal(t, types.Position{Col: 4}, a.Cursor())
}

func TestCursorMovement(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	a.Document().SetText([]byte("long line\nab"))

	a.handleEvent(key(tcell.KeyEnd))
	require.Equal(t, types.Position{Col: 9}, a.Cursor())
	a.handleEvent(key(tcell.KeyDown))
	require.Equal(t, types.Position{Line: 1, Col: 2}, a.Cursor())
	a.handleEvent(key(tcell.KeyRight))
	require.Equal(t, types.Position{Line: 1, Col: 2}, a.Cursor())
	a.handleEvent(key(tcell.KeyHome))
	a.handleEvent(key(tcell.KeyLeft))
	require.Equal(t, types.Position{Col: 9}, a.Cursor())
	a.handleEvent(key(tcell.KeyRight))
	require.Equal(t, types.Position{Line: 1}, a.Cursor())
	a.handleEvent(key(tcell.KeyPgUp))
	require.Equal(t, types.Position{}, a.Cursor())
}

func TestCursorMovedReachesStatusBar(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	var moves []types.Position
	a.Events().Subscribe(event.TypeCursorMoved, func(e event.Event) bool {
		moves = append(moves, e.Data.(event.CursorMovedData).NewPosition)
		return false
	})
	typeText(a, "ab")
	require.Equal(t, []types.Position{{Col: 1}, {Col: 2}}, moves)

	text, _ := a.statusBar.Text()
	require.Contains(t, text, "Line: 1, Col: 3")
}

func TestKeyPressedCanBeConsumed(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	a.Events().Subscribe(event.TypeKeyPressed, func(e event.Event) bool {
		return e.Data.(event.KeyPressedData).KeyEvent.Rune() == 'x'
	})
	typeText(a, "axb")
	require.Equal(t, "ab", string(a.Document().Text()))
}

func TestCopyAndPaste(t *testing.T) {
	clip := &fakeClipboard{}
	a, _ := newTestApp(t, Options{Clipboard: clip})
	typeText(a, "let ")

	a.handleEvent(tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl))
	require.Equal(t, "let ", clip.text)
	text, _ := a.statusBar.Text()
	require.Equal(t, "copied 4 bytes", text)

	clip.text = "none\r\n"
	a.handleEvent(tcell.NewEventKey(tcell.KeyCtrlP, 0, tcell.ModCtrl))
	require.Equal(t, "let none\n", string(a.Document().Text()))
	require.Equal(t, types.Position{Line: 1}, a.Cursor())
	require.Equal(t, []types.StyledRange{
		{Start: 0, End: 3, Category: types.CategoryKeyword},
		{Start: 4, End: 8, Category: types.CategoryConstant},
	}, a.Document().Spans())
}

func TestParseFailureKeepsStyles(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	typeText(a, "let")
	require.Len(t, a.Document().Spans(), 1)

	a.highlighter = lang.Qat(broken).NewHighlighter()
	a.handleEvent(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl))

	require.Equal(t, []types.StyledRange{{Start: 0, End: 3, Category: types.CategoryKeyword}}, a.Document().Spans())
	text, _ := a.statusBar.Text()
	require.True(t, strings.HasSuffix(text, "parse failed"))
}

func TestReload(t *testing.T) {
	path := writeFile(t, "let")
	a, _ := newTestApp(t, Options{FilePath: path})

	require.NoError(t, os.WriteFile(path, []byte("give"), 0o644))
	a.reload()
	require.Equal(t, "give", string(a.Document().Text()))
	require.Equal(t, []types.StyledRange{{Start: 0, End: 4, Category: types.CategoryKeyword}}, a.Document().Spans())

	typeText(a, "x")
	require.NoError(t, os.WriteFile(path, []byte("none"), 0o644))
	a.reload()
	require.Equal(t, "xgive", string(a.Document().Text()))
}

func TestRunQuits(t *testing.T) {
	path := writeFile(t, "let x")
	cfg := config.NewDefaultConfig()
	cfg.Editor.Watch = true
	a, screen := newTestApp(t, Options{FilePath: path, Config: cfg})

	quit := false
	a.Events().Subscribe(event.TypeAppQuit, func(event.Event) bool {
		quit = true
		return false
	})

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	screen.InjectKey(tcell.KeyRune, 'z', tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Ctrl-Q")
	}
	require.True(t, quit)
	require.Equal(t, "zlet x", string(a.Document().Text()))
}

func TestNewWithoutLanguage(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	a, err := New(Options{Screen: screen, Clipboard: &fakeClipboard{}})
	require.NoError(t, err)
	defer a.Close()

	typeText(a, "let")
	require.Empty(t, a.Document().Spans())

	a.handleEvent(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl))
	text, _ := a.statusBar.Text()
	require.Equal(t, "no language for this file", text)
}

func TestDump(t *testing.T) {
	path := writeFile(t, "let x\ngive none")
	var out bytes.Buffer
	require.NoError(t, Dump(context.Background(), &out, lang.Qat(words), path, false))
	require.Equal(t, "0-3 keyword \"let\"\n6-10 keyword \"give\"\n11-15 constant \"none\"\n", out.String())
}

func TestDumpUnparsable(t *testing.T) {
	path := writeFile(t, "let")
	err := Dump(context.Background(), &bytes.Buffer{}, lang.Qat(broken), path, false)
	require.ErrorIs(t, err, ErrNotParsed)
}

func TestRegisterClipboard(t *testing.T) {
	c := newClipboard(false)
	require.NoError(t, c.WriteAll("qat"))
	text, err := c.ReadAll()
	require.NoError(t, err)
	require.Equal(t, "qat", text)
}

func TestWordCountPlugin(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	typeText(a, "let x")

	a.handleEvent(tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl))
	text, _ := a.statusBar.Text()
	require.Equal(t, "Lines: 1, Words: 2, Bytes: 5, Spans: 1", text)
	require.Equal(t, "let x", string(a.Document().Text()))
}
