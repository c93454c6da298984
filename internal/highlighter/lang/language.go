package lang

import (
	"github.com/bethropolis/qat-editor/internal/highlighter"
	"github.com/bethropolis/qat-editor/internal/syntax"
)

// Language is a highlightable language: a grammar producing its trees and a
// classifier turning their nodes into styles.
type Language struct {
	// Name is the display name of the language
	Name string

	// Extensions maps file extensions to this language
	Extensions []string

	Grammar    syntax.Grammar
	Classifier highlighter.Classifier
}

// NewHighlighter builds a highlighter for the language.
func (l *Language) NewHighlighter(opts ...highlighter.Option) *highlighter.Highlighter {
	return highlighter.New(l.Grammar, l.Classifier, opts...)
}
