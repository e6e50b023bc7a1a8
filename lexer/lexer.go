// Package lexer splits recipe source into adjacent tokens.
//
// Every byte of the input belongs to exactly one token, so consecutive
// tokens always share a boundary. Whitespace, comments and newlines are
// tokens too; the parser decides what to ignore.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/cook/span"
)

type Lexer struct {
	input string
	pos   int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize lexes the whole input. The EOF token is not included.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Kind == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) peekRune() (rune, int) {
	return utf8.DecodeRuneInString(l.input[l.pos:])
}

func (l *Lexer) atLineStart() bool {
	return l.pos == 0 || l.input[l.pos-1] == '\n'
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	return Token{Kind: kind, Span: span.New(start, l.pos)}
}

func (l *Lexer) NextToken() Token {
	start := l.pos
	if l.pos >= len(l.input) {
		return l.token(TokenEOF, start)
	}

	ch := l.peek()

	switch {
	case ch == '\n':
		l.pos++
		return l.token(TokenNewline, start)
	case ch == '\r' && l.peekN(1) == '\n':
		l.pos += 2
		return l.token(TokenNewline, start)
	case ch == '>' && l.atLineStart():
		if l.peekN(1) == '>' {
			l.pos += 2
			return l.token(TokenMetaStart, start)
		}
		l.pos++
		return l.token(TokenTextStep, start)
	case ch == '-' && l.peekN(1) == '-':
		return l.scanLineComment(start)
	case ch == '[' && l.peekN(1) == '-':
		return l.scanBlockComment(start)
	case ch == '\\':
		return l.scanEscaped(start)
	case isDigit(ch):
		return l.scanNumber(start)
	}

	if kind, ok := singleCharKinds[ch]; ok {
		l.pos++
		return l.token(kind, start)
	}

	if ch < utf8.RuneSelf && isPunctuation(ch) {
		l.pos++
		return l.token(TokenPunctuation, start)
	}

	if r, _ := l.peekRune(); isSpace(r) {
		return l.scanWhitespace(start)
	}

	l.scanWordRest()
	return l.token(TokenWord, start)
}

func (l *Lexer) scanWhitespace(start int) Token {
	for l.pos < len(l.input) {
		if l.peek() == '\r' && l.peekN(1) == '\n' {
			break
		}
		r, size := l.peekRune()
		if !isSpace(r) {
			break
		}
		l.pos += size
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanLineComment(start int) Token {
	l.pos += 2
	for l.pos < len(l.input) && l.peek() != '\n' {
		if l.peek() == '\r' && l.peekN(1) == '\n' {
			break
		}
		l.pos++
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start int) Token {
	l.pos += 2
	for l.pos < len(l.input) {
		if l.peek() == '-' && l.peekN(1) == ']' {
			l.pos += 2
			break
		}
		l.pos++
	}
	return l.token(TokenBlockComment, start)
}

// scanEscaped takes the backslash and the whole rune after it. A trailing
// backslash is plain punctuation.
func (l *Lexer) scanEscaped(start int) Token {
	l.pos++
	if l.pos >= len(l.input) {
		return l.token(TokenPunctuation, start)
	}
	_, size := l.peekRune()
	l.pos += size
	return l.token(TokenEscaped, start)
}

func (l *Lexer) scanNumber(start int) Token {
	for isDigit(l.peek()) {
		l.pos++
	}
	kind := TokenInt
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		l.pos++
		for isDigit(l.peek()) {
			l.pos++
		}
		kind = TokenFloat
	}
	// "2nd" or "10x" is a word, not a number followed by a word
	if l.atWordChar() {
		l.scanWordRest()
		return l.token(TokenWord, start)
	}
	return l.token(kind, start)
}

func (l *Lexer) scanWordRest() {
	for l.pos < len(l.input) && l.atWordChar() {
		_, size := l.peekRune()
		l.pos += size
	}
}

func (l *Lexer) atWordChar() bool {
	if l.pos >= len(l.input) {
		return false
	}
	ch := l.peek()
	if ch < utf8.RuneSelf {
		if ch == '\\' || ch == '\n' || ch == '\r' || isPunctuation(ch) {
			return false
		}
		if _, special := singleCharKinds[ch]; special {
			return false
		}
	}
	r, _ := l.peekRune()
	return !isSpace(r)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}

// isPunctuation covers ASCII punctuation that has no meaning of its own.
func isPunctuation(ch byte) bool {
	if _, special := singleCharKinds[ch]; special {
		return false
	}
	switch ch {
	case '\\', '_':
		return false
	case '<', '>', '^', '`', '$':
		return true
	}
	return ch < utf8.RuneSelf && unicode.IsPunct(rune(ch))
}
