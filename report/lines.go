package report

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// LineIndex converts byte offsets into line and column positions.
type LineIndex struct {
	source string
	starts []int
}

func NewLineIndex(source string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{source: source, starts: starts}
}

// Position returns the 0-based line and byte column of offset.
func (li *LineIndex) Position(offset int) (line, col int) {
	offset = li.clamp(offset)
	line = sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	return line, offset - li.starts[line]
}

// UTF16Position is Position with the column counted in UTF-16 code
// units, as editors speaking LSP expect.
func (li *LineIndex) UTF16Position(offset int) (line, col int) {
	offset = li.clamp(offset)
	line, _ = li.Position(offset)
	for _, r := range li.source[li.starts[line]:offset] {
		col += utf16.RuneLen(r)
	}
	return line, col
}

// Offset is the inverse of UTF16Position.
func (li *LineIndex) Offset(line, utf16Col int) int {
	if line < 0 {
		return 0
	}
	if line >= len(li.starts) {
		return len(li.source)
	}
	offset := li.starts[line]
	for utf16Col > 0 && offset < len(li.source) && li.source[offset] != '\n' {
		r, size := utf8.DecodeRuneInString(li.source[offset:])
		utf16Col -= utf16.RuneLen(r)
		offset += size
	}
	return offset
}

// Line returns the text of a 0-based line without its newline.
func (li *LineIndex) Line(line int) string {
	if line < 0 || line >= len(li.starts) {
		return ""
	}
	start := li.starts[line]
	end := len(li.source)
	if line+1 < len(li.starts) {
		end = li.starts[line+1] - 1
	}
	if end > start && li.source[end-1] == '\r' {
		end--
	}
	return li.source[start:end]
}

func (li *LineIndex) LineCount() int {
	return len(li.starts)
}

func (li *LineIndex) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(li.source) {
		return len(li.source)
	}
	return offset
}
