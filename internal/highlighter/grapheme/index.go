// Package grapheme translates parser byte offsets into the grapheme
// (user-perceived character) offsets the text surface is addressed in.
package grapheme

import "github.com/rivo/uniseg"

// Index maps every byte offset of a text to the grapheme that byte belongs to.
type Index struct {
	byByte []int
	count  int
}

// Build enumerates the grapheme clusters of text once, in O(len(text)).
func Build(text []byte) *Index {
	idx := &Index{byByte: make([]int, len(text))}
	g := uniseg.NewGraphemes(string(text))
	for g.Next() {
		from, to := g.Positions()
		for b := from; b < to; b++ {
			idx.byByte[b] = idx.count
		}
		idx.count++
	}
	return idx
}

// Len returns the byte length of the indexed text.
func (x *Index) Len() int { return len(x.byByte) }

// Count returns the number of graphemes in the indexed text.
func (x *Index) Count() int { return x.count }

// At returns the grapheme containing byte offset. Offsets outside the text
// are clamped to [0, max(0, Len()-1)]; an empty text always yields 0.
func (x *Index) At(offset int) int {
	if len(x.byByte) == 0 {
		return 0
	}
	if offset < 0 {
		offset = 0
	}
	if last := len(x.byByte) - 1; offset > last {
		offset = last
	}
	return x.byByte[offset]
}

// Range translates the byte range [start, end) into a grapheme range.
// An end at or past the end of the text maps to Count(), so a node ending
// the document still covers its final grapheme.
func (x *Index) Range(start, end int) (int, int) {
	gStart := x.At(start)
	gEnd := x.count
	if end < len(x.byByte) {
		gEnd = x.At(end)
	}
	if gEnd < gStart {
		gEnd = gStart
	}
	return gStart, gEnd
}
