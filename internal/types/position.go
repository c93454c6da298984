// internal/types/position.go
package types

// Position represents a cursor or text position within the document.
// Line is the 0-based line index.
// Col is the 0-based grapheme index within the line.
type Position struct {
	Line int
	Col  int // Grapheme index
}
