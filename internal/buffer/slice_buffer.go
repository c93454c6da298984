package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/bethropolis/qat-editor/internal/types"
)

// maxLineLength bounds a single line read by Load.
const maxLineLength = 16 * 1024 * 1024

// SliceBuffer stores the document as a slice of lines without their newlines.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
	modified bool
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		lines: [][]byte{[]byte("")},
	}
}

// Load reads a file into the buffer, replacing existing content. A missing
// file yields an empty buffer bound to that path.
func (sb *SliceBuffer) Load(filePath string) error {
	sb.modified = false

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = [][]byte{[]byte("")}
			sb.filePath = filePath
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	newLines := [][]byte{}
	for scanner.Scan() {
		line := normalizeNewlines(scanner.Bytes())
		newLines = append(newLines, bytes.Split(line, []byte("\n"))...)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file '%s': %w", filePath, err)
	}
	if len(newLines) == 0 {
		newLines = append(newLines, []byte(""))
	}
	sb.lines = copyLines(newLines)
	sb.filePath = filePath
	return nil
}

// SetText replaces the whole content without touching the file path.
func (sb *SliceBuffer) SetText(text []byte) {
	sb.lines = copyLines(bytes.Split(normalizeNewlines(text), []byte("\n")))
	sb.modified = false
}

func copyLines(lines [][]byte) [][]byte {
	out := make([][]byte, len(lines))
	for i, line := range lines {
		out[i] = append([]byte(nil), line...)
	}
	return out
}

func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// Bytes joins the lines with LF.
func (sb *SliceBuffer) Bytes() []byte {
	var buffer bytes.Buffer
	for i, line := range sb.lines {
		buffer.Write(line)
		if i < len(sb.lines)-1 {
			buffer.WriteByte('\n')
		}
	}
	return buffer.Bytes()
}

// IsModified reports whether the buffer changed since it was loaded.
func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

// LineLen returns the number of graphemes on line index.
func (sb *SliceBuffer) LineLen(index int) int {
	if index < 0 || index >= len(sb.lines) {
		return 0
	}
	return graphemeCount(sb.lines[index])
}

// Offset returns the document grapheme offset of pos after clamping.
func (sb *SliceBuffer) Offset(pos types.Position) int {
	vPos, _ := sb.validatePosition(pos)
	offset := 0
	for i := 0; i < vPos.Line; i++ {
		offset += graphemeCount(sb.lines[i]) + 1
	}
	return offset + vPos.Col
}

// PositionOf returns the position of a document grapheme offset, clamped to
// the end of the document.
func (sb *SliceBuffer) PositionOf(offset int) types.Position {
	if offset < 0 {
		offset = 0
	}
	for i, line := range sb.lines {
		n := graphemeCount(line)
		if offset <= n || i == len(sb.lines)-1 {
			if offset > n {
				offset = n
			}
			return types.Position{Line: i, Col: offset}
		}
		offset -= n + 1
	}
	return types.Position{}
}

// --- Buffer Modification Methods ---

// docByteOffset returns the byte offset of a validated position in Bytes().
func (sb *SliceBuffer) docByteOffset(pos types.Position, lineOffset int) int {
	offset := 0
	for i := 0; i < pos.Line; i++ {
		offset += len(sb.lines[i]) + 1
	}
	return offset + lineOffset
}

// editInfo describes replacing old[startByte:oldEndByte] with the text that
// now ends at newEndByte. The suffix is counted from the end so that a cluster
// joining across the edit boundary stays consistent.
func editInfo(old, updated []byte, startByte, oldEndByte, newEndByte int) types.EditInfo {
	start := graphemeCount(old[:startByte])
	oldEnd := graphemeCount(old) - graphemeCount(old[oldEndByte:])
	newEnd := graphemeCount(updated) - graphemeCount(updated[newEndByte:])
	if oldEnd < start {
		oldEnd = start
	}
	if newEnd < start {
		newEnd = start
	}
	return types.EditInfo{Start: start, OldEnd: oldEnd, NewEnd: newEnd}
}

// Insert inserts text at pos. Text may span several lines.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) (types.EditInfo, error) {
	text = normalizeNewlines(text)
	if len(text) == 0 {
		return types.EditInfo{}, nil
	}

	validPos, byteOffset := sb.validatePosition(pos)
	old := sb.Bytes()
	startByte := sb.docByteOffset(validPos, byteOffset)

	sb.modified = true

	currentLine := sb.lines[validPos.Line]
	insertLines := bytes.Split(text, []byte("\n"))

	tail := append([]byte(nil), currentLine[byteOffset:]...)
	head := append([]byte(nil), currentLine[:byteOffset]...)
	sb.lines[validPos.Line] = append(head, insertLines[0]...)

	if len(insertLines) > 1 {
		newLines := copyLines(insertLines[1:])
		newLines[len(newLines)-1] = append(newLines[len(newLines)-1], tail...)
		rest := append(newLines, sb.lines[validPos.Line+1:]...)
		sb.lines = append(sb.lines[:validPos.Line+1], rest...)
	} else {
		sb.lines[validPos.Line] = append(sb.lines[validPos.Line], tail...)
	}

	return editInfo(old, sb.Bytes(), startByte, startByte, startByte+len(text)), nil
}

// Delete removes the text in [start, end). The positions may be given in
// either order.
func (sb *SliceBuffer) Delete(start, end types.Position) (types.EditInfo, error) {
	if start.Line > end.Line || (start.Line == end.Line && start.Col > end.Col) {
		start, end = end, start
	}

	vStart, startOffset := sb.validatePosition(start)
	vEnd, endOffset := sb.validatePosition(end)
	if vStart == vEnd {
		return types.EditInfo{}, nil
	}

	old := sb.Bytes()
	startByte := sb.docByteOffset(vStart, startOffset)
	endByte := sb.docByteOffset(vEnd, endOffset)

	sb.modified = true

	head := append([]byte(nil), sb.lines[vStart.Line][:startOffset]...)
	merged := append(head, sb.lines[vEnd.Line][endOffset:]...)
	sb.lines = append(sb.lines[:vStart.Line+1], sb.lines[vEnd.Line+1:]...)
	sb.lines[vStart.Line] = merged

	return editInfo(old, sb.Bytes(), startByte, endByte, startByte), nil
}

// validatePosition clamps pos into the buffer and returns the byte offset of
// its column within the line.
func (sb *SliceBuffer) validatePosition(pos types.Position) (types.Position, int) {
	if len(sb.lines) == 0 {
		sb.lines = [][]byte{[]byte("")}
	}
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(sb.lines) {
		pos.Line = len(sb.lines) - 1
	}
	col, byteOffset := columnOffset(sb.lines[pos.Line], pos.Col)
	return types.Position{Line: pos.Line, Col: col}, byteOffset
}

var _ Buffer = (*SliceBuffer)(nil)
