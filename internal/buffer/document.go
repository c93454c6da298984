package buffer

import (
	"sync"

	"github.com/bethropolis/qat-editor/internal/event"
	"github.com/bethropolis/qat-editor/internal/logger"
	"github.com/bethropolis/qat-editor/internal/types"
)

// Document is a SliceBuffer with one highlight category per grapheme. It is
// the surface a highlight pass reads its text from and writes styles into.
// Edits made through it dispatch event.TypeTextChanged after the lock is
// released, so subscribers may read and style the document.
type Document struct {
	mu     sync.RWMutex
	buf    *SliceBuffer
	styles []types.Category
	events *event.Manager
}

// NewDocument creates an empty document. events may be nil.
func NewDocument(events *event.Manager) *Document {
	return &Document{
		buf:    NewSliceBuffer(),
		events: events,
	}
}

// Load reads filePath, drops all styling and announces the new text.
func (d *Document) Load(filePath string) error {
	d.mu.Lock()
	if err := d.buf.Load(filePath); err != nil {
		d.mu.Unlock()
		return err
	}
	d.styles = make([]types.Category, graphemeCount(d.buf.Bytes()))
	d.mu.Unlock()

	logger.Infof("loaded %q (%d lines)", filePath, d.LineCount())
	if d.events != nil {
		d.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: filePath})
	}
	d.notify(types.EditInfo{NewEnd: d.GraphemeCount()})
	return nil
}

// SetText replaces the content and announces it as a single edit.
func (d *Document) SetText(text []byte) {
	d.mu.Lock()
	oldEnd := len(d.styles)
	d.buf.SetText(text)
	d.styles = make([]types.Category, graphemeCount(d.buf.Bytes()))
	newEnd := len(d.styles)
	d.mu.Unlock()

	d.notify(types.EditInfo{OldEnd: oldEnd, NewEnd: newEnd})
}

// Insert inserts text at pos and returns the position just after it.
func (d *Document) Insert(pos types.Position, text []byte) (types.Position, error) {
	d.mu.Lock()
	edit, err := d.buf.Insert(pos, text)
	if err != nil {
		d.mu.Unlock()
		return pos, err
	}
	if edit == (types.EditInfo{}) {
		d.mu.Unlock()
		return pos, nil
	}
	d.spliceStyles(edit)
	end := d.buf.PositionOf(edit.NewEnd)
	d.mu.Unlock()

	d.notify(edit)
	return end, nil
}

// Delete removes the text in [start, end).
func (d *Document) Delete(start, end types.Position) error {
	d.mu.Lock()
	edit, err := d.buf.Delete(start, end)
	if err != nil {
		d.mu.Unlock()
		return err
	}
	if edit == (types.EditInfo{}) {
		d.mu.Unlock()
		return nil
	}
	d.spliceStyles(edit)
	d.mu.Unlock()

	d.notify(edit)
	return nil
}

// spliceStyles shifts existing styles around an edit so that text outside it
// keeps its category until the next pass. Callers hold the write lock.
func (d *Document) spliceStyles(edit types.EditInfo) {
	total := graphemeCount(d.buf.Bytes())
	next := make([]types.Category, 0, total)
	next = append(next, d.styles[:min(edit.Start, len(d.styles))]...)
	next = append(next, make([]types.Category, edit.NewEnd-edit.Start)...)
	if edit.OldEnd < len(d.styles) {
		next = append(next, d.styles[edit.OldEnd:]...)
	}
	switch {
	case len(next) > total:
		next = next[:total]
	case len(next) < total:
		next = append(next, make([]types.Category, total-len(next))...)
	}
	d.styles = next
}

func (d *Document) notify(edit types.EditInfo) {
	if d.events == nil {
		return
	}
	d.events.Dispatch(event.TypeTextChanged, event.TextChangedData{
		Text: d.Text(),
		Edit: edit,
	})
}

// Text returns a copy of the full document text.
func (d *Document) Text() []byte {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf.Bytes()
}

// ClearStyles removes every category from the document.
func (d *Document) ClearStyles() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.styles {
		d.styles[i] = types.CategoryNone
	}
}

// ApplyStyle applies cat over the graphemes [start, end). Where categories
// overlap the higher one wins. The range is clamped to the document.
func (d *Document) ApplyStyle(cat types.Category, start, end int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if start < 0 {
		start = 0
	}
	if end > len(d.styles) {
		end = len(d.styles)
	}
	for i := start; i < end; i++ {
		if cat > d.styles[i] {
			d.styles[i] = cat
		}
	}
}

// StyleAt returns the category of grapheme i, or CategoryNone out of range.
func (d *Document) StyleAt(i int) types.Category {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i < 0 || i >= len(d.styles) {
		return types.CategoryNone
	}
	return d.styles[i]
}

// Styles returns a copy of the per-grapheme categories.
func (d *Document) Styles() []types.Category {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]types.Category(nil), d.styles...)
}

// Spans returns the styled runs of the document in order. Adjacent graphemes
// with the same category form one run.
func (d *Document) Spans() []types.StyledRange {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var spans []types.StyledRange
	for i, cat := range d.styles {
		if cat == types.CategoryNone {
			continue
		}
		if n := len(spans); n > 0 && spans[n-1].End == i && spans[n-1].Category == cat {
			spans[n-1].End++
			continue
		}
		spans = append(spans, types.StyledRange{Start: i, End: i + 1, Category: cat})
	}
	return spans
}

// GraphemeCount returns the length of the document in graphemes.
func (d *Document) GraphemeCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.styles)
}

func (d *Document) Lines() [][]byte {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return copyLines(d.buf.Lines())
}

func (d *Document) Line(index int) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	line, err := d.buf.Line(index)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), line...), nil
}

func (d *Document) LineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf.LineCount()
}

// LineLen returns the number of graphemes on a line.
func (d *Document) LineLen(index int) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf.LineLen(index)
}

// Offset converts a position to a document grapheme offset.
func (d *Document) Offset(pos types.Position) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Offset(pos)
}

// PositionOf converts a document grapheme offset to a position.
func (d *Document) PositionOf(offset int) types.Position {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf.PositionOf(offset)
}

func (d *Document) FilePath() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf.FilePath()
}

func (d *Document) IsModified() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf.IsModified()
}
