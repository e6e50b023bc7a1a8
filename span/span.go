// Package span locates things in recipe source by byte offset.
package span

import "fmt"

// Span is a half-open byte range [Start, End) into the source.
type Span struct {
	Start int
	End   int
}

func New(start, end int) Span {
	if start > end {
		panic(fmt.Sprintf("span start %d after end %d", start, end))
	}
	return Span{Start: start, End: end}
}

// Pos returns an empty span at offset.
func Pos(offset int) Span {
	return Span{Start: offset, End: offset}
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains reports whether offset falls inside s.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Located attaches a source span to a value.
type Located[T any] struct {
	Value T
	Span  Span
}

func At[T any](value T, s Span) Located[T] {
	return Located[T]{Value: value, Span: s}
}
