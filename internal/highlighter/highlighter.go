// Package highlighter runs highlight passes: it reparses a document, walks the
// tree, classifies every node and styles the document over the translated
// grapheme ranges.
package highlighter

import (
	"context"
	"fmt"
	"time"

	"github.com/bethropolis/qat-editor/internal/event"
	"github.com/bethropolis/qat-editor/internal/highlighter/grapheme"
	"github.com/bethropolis/qat-editor/internal/logger"
	"github.com/bethropolis/qat-editor/internal/syntax"
	"github.com/bethropolis/qat-editor/internal/types"
)

// Surface is the styled text a pass reads from and writes into. Offsets
// passed to ApplyStyle are grapheme offsets from the start of the document.
type Surface interface {
	Text() []byte
	ClearStyles()
	ApplyStyle(cat types.Category, start, end int)
}

// Classifier maps one syntax node to the byte spans it should be styled with.
type Classifier interface {
	Classify(n syntax.Node) ([]types.Span, error)
}

// Result describes one pass.
type Result struct {
	Parsed   bool // false when the grammar produced no tree
	Nodes    int  // nodes visited
	Spans    int  // styles applied
	Skipped  int  // nodes whose classification failed in lenient mode
	Duration time.Duration
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithStrict makes a classification error abort the pass instead of being
// logged and skipped.
func WithStrict(strict bool) Option {
	return func(h *Highlighter) { h.strict = strict }
}

// Highlighter runs full highlight passes with one grammar and classifier.
type Highlighter struct {
	grammar    syntax.Grammar
	classifier Classifier
	strict     bool
}

// New creates a highlighter.
func New(grammar syntax.Grammar, classifier Classifier, opts ...Option) *Highlighter {
	h := &Highlighter{grammar: grammar, classifier: classifier}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Strict reports whether classification errors abort a pass.
func (h *Highlighter) Strict() bool { return h.strict }

// Highlight runs one pass over surface. A parse failure is not an error: the
// surface keeps its previous styling and the result reports Parsed=false.
// In strict mode the first classification error is returned; styles applied
// before it stay on the surface.
func (h *Highlighter) Highlight(ctx context.Context, surface Surface) (Result, error) {
	started := time.Now()
	text := surface.Text()
	index := grapheme.Build(text)

	tree, err := h.grammar.Parse(ctx, text)
	if err == nil && !tree.Root().IsValid() {
		err = syntax.ErrNoTree
	}
	if err != nil {
		logger.Warnf("highlight: parse failed, keeping previous styles: %v", err)
		return Result{Duration: time.Since(started)}, nil
	}

	surface.ClearStyles()

	res := Result{Parsed: true}
	cur := tree.Walk()
	for {
		n := cur.Node()
		res.Nodes++

		spans, err := h.classifier.Classify(n)
		if err != nil {
			if h.strict {
				res.Duration = time.Since(started)
				return res, fmt.Errorf("classifying %s at %d: %w", n.Kind(), n.StartByte(), err)
			}
			logger.Errorf("highlight: skipping %s at %d: %v", n.Kind(), n.StartByte(), err)
			res.Skipped++
		}
		for _, s := range spans {
			start, end := index.Range(s.Start, s.End)
			if end <= start {
				continue
			}
			surface.ApplyStyle(s.Category, start, end)
			res.Spans++
		}

		if !cur.Next() {
			break
		}
	}

	res.Duration = time.Since(started)
	logger.DebugTagf("highlight", "pass: %d nodes, %d spans, %d skipped in %s",
		res.Nodes, res.Spans, res.Skipped, res.Duration)
	return res, nil
}

// Attach subscribes h to text changes on bus and runs a pass on surface for
// each one, inside the dispatch. Every finished pass is announced with
// event.TypeHighlightDone.
func (h *Highlighter) Attach(bus *event.Manager, surface Surface) {
	bus.Subscribe(event.TypeTextChanged, func(event.Event) bool {
		res, err := h.Highlight(context.Background(), surface)
		if err != nil {
			logger.Errorf("highlight: pass aborted: %v", err)
		}
		bus.Dispatch(event.TypeHighlightDone, event.HighlightDoneData{
			Parsed: res.Parsed,
			Spans:  res.Spans,
			Err:    err,
		})
		return false
	})
}
