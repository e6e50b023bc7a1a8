package lexer

import "github.com/dhamidi/cook/span"

type TokenKind int

const (
	TokenEOF TokenKind = iota

	// Line starters
	TokenMetaStart
	TokenTextStep

	// Component syntax
	TokenAt
	TokenHash
	TokenTilde
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen

	// Quantity syntax
	TokenOr
	TokenStar
	TokenPercent
	TokenSlash
	TokenMinus

	TokenEq
	TokenPlus
	TokenQuestion
	TokenAnd
	TokenColon
	TokenPunctuation

	// Literals
	TokenInt
	TokenFloat
	TokenWord
	TokenEscaped

	// Trivia
	TokenWhitespace
	TokenNewline
	TokenLineComment
	TokenBlockComment
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:          "EOF",
	TokenMetaStart:    ">>",
	TokenTextStep:     ">",
	TokenAt:           "@",
	TokenHash:         "#",
	TokenTilde:        "~",
	TokenLBrace:       "{",
	TokenRBrace:       "}",
	TokenLParen:       "(",
	TokenRParen:       ")",
	TokenOr:           "|",
	TokenStar:         "*",
	TokenPercent:      "%",
	TokenSlash:        "/",
	TokenMinus:        "-",
	TokenEq:           "=",
	TokenPlus:         "+",
	TokenQuestion:     "?",
	TokenAnd:          "&",
	TokenColon:        ":",
	TokenPunctuation:  "Punctuation",
	TokenInt:          "Int",
	TokenFloat:        "Float",
	TokenWord:         "Word",
	TokenEscaped:      "Escaped",
	TokenWhitespace:   "Whitespace",
	TokenNewline:      "Newline",
	TokenLineComment:  "LineComment",
	TokenBlockComment: "BlockComment",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTrivia reports whether the kind carries no content: whitespace and comments.
func (k TokenKind) IsTrivia() bool {
	return k == TokenWhitespace || k == TokenLineComment || k == TokenBlockComment
}

type Token struct {
	Kind TokenKind
	Span span.Span
}

func (t Token) Len() int {
	return t.Span.Len()
}

// Text returns the source text covered by the token.
func (t Token) Text(input string) string {
	return input[t.Span.Start:t.Span.End]
}

var singleCharKinds = map[byte]TokenKind{
	'@': TokenAt,
	'#': TokenHash,
	'~': TokenTilde,
	'{': TokenLBrace,
	'}': TokenRBrace,
	'(': TokenLParen,
	')': TokenRParen,
	'|': TokenOr,
	'*': TokenStar,
	'%': TokenPercent,
	'/': TokenSlash,
	'-': TokenMinus,
	'=': TokenEq,
	'+': TokenPlus,
	'?': TokenQuestion,
	'&': TokenAnd,
	':': TokenColon,
}
