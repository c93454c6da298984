package lang

import (
	"fmt"

	"github.com/bethropolis/qat-editor/internal/grammar"
	"github.com/bethropolis/qat-editor/internal/highlighter/qat"
	"github.com/bethropolis/qat-editor/internal/syntax"
)

// QatExtensions are the file extensions of qat sources.
var QatExtensions = []string{".qat"}

// Qat describes the qat language over an already opened grammar.
func Qat(g syntax.Grammar) *Language {
	return &Language{
		Name:       "qat",
		Extensions: QatExtensions,
		Grammar:    g,
		Classifier: qat.NewClassifier(),
	}
}

// OpenQat loads the qat grammar library and describes the language. The
// returned close function releases the parser.
func OpenQat(library, symbol string) (*Language, func(), error) {
	g, err := grammar.Open(library, symbol)
	if err != nil {
		return nil, nil, fmt.Errorf("opening qat grammar: %w", err)
	}
	return Qat(g), g.Close, nil
}
