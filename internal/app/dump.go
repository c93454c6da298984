package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/qat-editor/internal/buffer"
	"github.com/bethropolis/qat-editor/internal/highlighter"
	"github.com/bethropolis/qat-editor/internal/highlighter/lang"
)

// ErrNotParsed reports that the grammar produced no tree for the file.
var ErrNotParsed = errors.New("document could not be parsed")

// Dump loads path, runs one highlight pass and writes a line per styled run
// as "start-end category text", with offsets in graphemes.
func Dump(ctx context.Context, w io.Writer, language *lang.Language, path string, strict bool) error {
	doc := buffer.NewDocument(nil)
	if err := doc.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	res, err := language.NewHighlighter(highlighter.WithStrict(strict)).Highlight(ctx, doc)
	if err != nil {
		return err
	}
	if !res.Parsed {
		return fmt.Errorf("%s: %w", path, ErrNotParsed)
	}

	var clusters []string
	gr := uniseg.NewGraphemes(string(doc.Text()))
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	for _, s := range doc.Spans() {
		text := strings.Join(clusters[s.Start:s.End], "")
		if _, err := fmt.Fprintf(w, "%d-%d %s %q\n", s.Start, s.End, s.Category, text); err != nil {
			return err
		}
	}
	return nil
}
