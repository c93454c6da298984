package buffer

import (
	"bytes"

	"github.com/rivo/uniseg"
)

// graphemeCount returns the number of grapheme clusters in b.
func graphemeCount(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	return uniseg.GraphemeClusterCount(string(b))
}

// columnOffset returns the byte offset of grapheme col within line. A column
// past the end is clamped to the line length.
func columnOffset(line []byte, col int) (validCol, byteOffset int) {
	if col <= 0 {
		return 0, 0
	}
	state := -1
	rest := line
	n := 0
	for len(rest) > 0 {
		var cluster []byte
		cluster, rest, _, state = uniseg.Step(rest, state)
		byteOffset += len(cluster)
		n++
		if n == col {
			return col, byteOffset
		}
	}
	return n, len(line)
}

// normalizeNewlines turns CRLF and lone CR into LF. A grapheme cluster never
// spans LF, so a line's clusters can be counted on their own.
func normalizeNewlines(text []byte) []byte {
	if bytes.IndexByte(text, '\r') < 0 {
		return text
	}
	text = bytes.ReplaceAll(text, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(text, []byte("\r"), []byte("\n"))
}
