// Package grammar loads compiled tree-sitter grammars from shared libraries.
//
// The qat grammar is built outside this repository (tree-sitter generate plus
// a C compiler) into something like libtree-sitter-qat.so. Loading it at run
// time keeps the grammar's C sources out of the Go build.
package grammar

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/qat-editor/internal/logger"
	"github.com/bethropolis/qat-editor/internal/syntax"
)

// DefaultSymbol is the language function exported by the qat grammar.
const DefaultSymbol = "tree_sitter_qat"

var (
	// ErrNoLibrary is returned when no library path was configured.
	ErrNoLibrary = errors.New("grammar: no library path configured")
	// ErrSymbolNotFound is returned when the library lacks the language function.
	ErrSymbolNotFound = errors.New("grammar: language symbol not found")
)

var (
	mu     sync.Mutex
	loaded = make(map[string]*sitter.Language) // path + "\x00" + symbol
)

// Load opens the shared library at path and returns the language exported
// by symbol. Libraries stay open for the life of the process; repeated loads
// of the same path and symbol return the cached language.
func Load(path, symbol string) (*sitter.Language, error) {
	if path == "" {
		return nil, ErrNoLibrary
	}
	if symbol == "" {
		symbol = DefaultSymbol
	}

	mu.Lock()
	defer mu.Unlock()

	key := path + "\x00" + symbol
	if lang, ok := loaded[key]; ok {
		return lang, nil
	}

	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("grammar: dlopen %s: %w", path, err)
	}

	fn, err := purego.Dlsym(handle, symbol)
	if err != nil || fn == 0 {
		_ = purego.Dlclose(handle)
		return nil, fmt.Errorf("%w: %s in %s", ErrSymbolNotFound, symbol, path)
	}

	var language func() unsafe.Pointer
	purego.RegisterFunc(&language, fn)
	ptr := language()
	if ptr == nil {
		_ = purego.Dlclose(handle)
		return nil, fmt.Errorf("grammar: %s in %s returned no language", symbol, path)
	}

	lang := sitter.NewLanguage(ptr)
	loaded[key] = lang
	logger.Infof("Loaded grammar %s from %s", symbol, path)
	return lang, nil
}

// Open loads the language and wraps it in a syntax.Grammar.
func Open(path, symbol string) (*syntax.SitterGrammar, error) {
	lang, err := Load(path, symbol)
	if err != nil {
		return nil, err
	}
	return syntax.NewSitterGrammar(lang), nil
}
