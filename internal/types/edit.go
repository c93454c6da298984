package types

// EditInfo describes one change to a document, in grapheme offsets from the
// start of the document.
type EditInfo struct {
	Start  int // first grapheme touched
	OldEnd int // end of the replaced text before the edit
	NewEnd int // end of the inserted text after the edit
}

// StyledRange is a category applied over the grapheme range [Start, End).
type StyledRange struct {
	Start    int
	End      int
	Category Category
}

// Span is a category applied over the byte range [Start, End) of a source
// snapshot, before translation into grapheme offsets.
type Span struct {
	Category Category
	Start    int
	End      int
}
