package grammar

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

type memoKey struct {
	name   string
	offset int
}

// Matcher matches text against the productions of a grammar.
//
// Matching is greedy: an alternative takes its longest match and
// repetitions take as much as they can, without backtracking.
type Matcher struct {
	grammar  ebnf.Grammar
	input    string
	memo     map[memoKey]int // match length, -1 = no match
	visiting map[memoKey]bool
}

func NewMatcher(g ebnf.Grammar) *Matcher {
	return &Matcher{grammar: g}
}

// Match returns the length in bytes of the prefix of input matched by
// production. ok is false when the production does not match at all or
// is not defined.
func (m *Matcher) Match(production, input string) (n int, ok bool) {
	m.input = input
	m.memo = make(map[memoKey]int)
	m.visiting = make(map[memoKey]bool)
	return m.matchName(production, 0)
}

// MatchAll reports whether production matches the whole input.
func (m *Matcher) MatchAll(production, input string) bool {
	n, ok := m.Match(production, input)
	return ok && n == len(input)
}

func (m *Matcher) match(expr ebnf.Expression, offset int) (int, bool) {
	switch e := expr.(type) {
	case nil:
		return 0, true

	case *ebnf.Token:
		if strings.HasPrefix(m.input[offset:], e.String) {
			return len(e.String), true
		}
		return 0, false

	case *ebnf.Range:
		return m.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		pos := offset
		for _, item := range e {
			n, ok := m.match(item, pos)
			if !ok {
				return 0, false
			}
			pos += n
		}
		return pos - offset, true

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n, ok := m.match(alt, offset); ok && n > best {
				best = n
			}
		}
		if best < 0 {
			return 0, false
		}
		return best, true

	case *ebnf.Repetition:
		pos := offset
		for {
			n, ok := m.match(e.Body, pos)
			if !ok || n == 0 {
				break
			}
			pos += n
		}
		return pos - offset, true

	case *ebnf.Option:
		if n, ok := m.match(e.Body, offset); ok {
			return n, true
		}
		return 0, true

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return 0, false
}

func (m *Matcher) matchName(name string, offset int) (int, bool) {
	key := memoKey{name: name, offset: offset}
	if n, ok := m.memo[key]; ok {
		return max(n, 0), n >= 0
	}
	// left recursion
	if m.visiting[key] {
		return 0, false
	}

	prod, ok := m.grammar[name]
	if !ok {
		m.memo[key] = -1
		return 0, false
	}

	m.visiting[key] = true
	n, ok := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	if ok {
		m.memo[key] = n
	} else {
		m.memo[key] = -1
	}
	return n, ok
}

func (m *Matcher) matchRange(begin, end string, offset int) (int, bool) {
	if offset >= len(m.input) {
		return 0, false
	}
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	r, size := utf8.DecodeRuneInString(m.input[offset:])
	if r == utf8.RuneError && size <= 1 {
		return 0, false
	}
	if r >= lo && r <= hi {
		return size, true
	}
	return 0, false
}
