package ast

import (
	"fmt"
	"strings"

	"github.com/dhamidi/cook/span"
)

type FragmentKind int

const (
	FragmentText FragmentKind = iota
	// FragmentSoftBreak is a newline inside a block that continues on the next line.
	FragmentSoftBreak
)

type TextFragment struct {
	Kind   FragmentKind
	Value  string
	Offset int
}

func TextPart(value string, offset int) TextFragment {
	return TextFragment{Kind: FragmentText, Value: value, Offset: offset}
}

func SoftBreak(value string, offset int) TextFragment {
	return TextFragment{Kind: FragmentSoftBreak, Value: value, Offset: offset}
}

func (f TextFragment) End() int {
	return f.Offset + len(f.Value)
}

// Text is text taken from the source, kept as fragments so every piece
// can still be located after escapes and comments were removed.
type Text struct {
	offset    int
	fragments []TextFragment
}

func EmptyText(offset int) Text {
	return Text{offset: offset}
}

func TextFromString(s string, offset int) Text {
	t := EmptyText(offset)
	t.AppendStr(s, offset)
	return t
}

func (t *Text) AppendStr(s string, offset int) {
	t.AppendFragment(TextPart(s, offset))
}

// AppendFragment adds f at the end. Empty fragments are dropped. Offsets
// must not go backwards.
func (t *Text) AppendFragment(f TextFragment) {
	if f.Offset < t.End() {
		panic(fmt.Sprintf("text fragment at %d appended after %d. this is a bug", f.Offset, t.End()))
	}
	if f.Value == "" {
		return
	}
	t.fragments = append(t.fragments, f)
}

func (t Text) Offset() int {
	return t.offset
}

// End is the source offset just after the last fragment.
func (t Text) End() int {
	if len(t.fragments) == 0 {
		return t.offset
	}
	return t.fragments[len(t.fragments)-1].End()
}

func (t Text) Span() span.Span {
	return span.New(t.offset, t.End())
}

func (t Text) Fragments() []TextFragment {
	return t.fragments
}

// String joins the fragments. Soft breaks read as a single space.
func (t Text) String() string {
	if len(t.fragments) == 1 && t.fragments[0].Kind == FragmentText {
		return t.fragments[0].Value
	}
	var b strings.Builder
	for _, f := range t.fragments {
		switch f.Kind {
		case FragmentSoftBreak:
			b.WriteByte(' ')
		default:
			b.WriteString(f.Value)
		}
	}
	return b.String()
}

func (t Text) Trimmed() string {
	return strings.TrimSpace(t.String())
}

// IsTextEmpty reports whether the text has nothing but whitespace.
func (t Text) IsTextEmpty() bool {
	return t.Trimmed() == ""
}

// Equal compares texts by fragments and offset.
func (t Text) Equal(other Text) bool {
	if t.offset != other.offset || len(t.fragments) != len(other.fragments) {
		return false
	}
	for i := range t.fragments {
		if t.fragments[i] != other.fragments[i] {
			return false
		}
	}
	return true
}
