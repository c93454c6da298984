// Package buffer holds the document text, addressed in graphemes, and the
// highlight categories applied over it.
package buffer

import "github.com/bethropolis/qat-editor/internal/types"

// Buffer defines the interface for text buffer operations. Columns are
// grapheme indices within a line.
type Buffer interface {
	Load(filePath string) error
	SetText(text []byte)
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	Insert(pos types.Position, text []byte) (types.EditInfo, error)
	Delete(start, end types.Position) (types.EditInfo, error)
	Bytes() []byte
	FilePath() string
	IsModified() bool
}
