package parser

import (
	"fmt"

	"github.com/dhamidi/cook/ast"
	"github.com/dhamidi/cook/lexer"
	"github.com/dhamidi/cook/span"
)

// blockParser is a cursor over the tokens of a single block. Grammar
// functions consume tokens and push events; the PullParser drains them
// once the block is done.
type blockParser struct {
	baseOffset int
	tokens     []lexer.Token
	current    int
	input      string
	extensions Extensions
	events     []Event
}

// newBlockParser panics if tokens are not adjacent: the lexer never
// produces gaps, so a gap means the caller sliced the stream wrong.
func newBlockParser(baseOffset int, tokens []lexer.Token, input string, ext Extensions) *blockParser {
	checkAdjacent(tokens)
	if len(tokens) > 0 && tokens[len(tokens)-1].Span.End > len(input) {
		panic("block tokens out of input bounds. this is a bug")
	}
	return &blockParser{
		baseOffset: baseOffset,
		tokens:     tokens,
		input:      input,
		extensions: ext,
	}
}

func checkAdjacent(tokens []lexer.Token) {
	for i := 1; i < len(tokens); i++ {
		if tokens[i-1].Span.End != tokens[i].Span.Start {
			panic(fmt.Sprintf("tokens %v and %v are not adjacent. this is a bug", tokens[i-1], tokens[i]))
		}
	}
}

func (bp *blockParser) event(ev Event) {
	bp.events = append(bp.events, ev)
}

func (bp *blockParser) error(err ParserError) {
	bp.event(ErrorEvent{Err: err})
}

func (bp *blockParser) warn(w ParserWarning) {
	bp.event(WarningEvent{Warn: w})
}

// finish returns the events of the block. Every token must have been
// consumed by then.
func (bp *blockParser) finish() []Event {
	if bp.current != len(bp.tokens) {
		panic(fmt.Sprintf("%d block tokens not parsed. this is a bug", len(bp.tokens)-bp.current))
	}
	return bp.events
}

func (bp *blockParser) extension(ext Extensions) bool {
	return bp.extensions.Has(ext)
}

// withRecover runs a grammar function that may not match. When it
// reports false the cursor goes back to where it was. Events pushed in
// the meantime are kept.
func withRecover[T any](bp *blockParser, f func(*blockParser) (T, bool)) (T, bool) {
	saved := bp.current
	out, ok := f(bp)
	if !ok {
		bp.current = saved
	}
	return out, ok
}

func (bp *blockParser) asStr(tok lexer.Token) string {
	return tok.Text(bp.input)
}

// text rebuilds the source text of tokens. Newlines become soft breaks,
// comments are left out and escapes keep only the escaped character.
// offset must be where the first token starts.
func (bp *blockParser) text(offset int, tokens []lexer.Token) ast.Text {
	checkAdjacent(tokens)

	t := ast.EmptyText(offset)
	if len(tokens) == 0 {
		return t
	}
	start := tokens[0].Span.Start
	if offset != start {
		panic(fmt.Sprintf("text offset %d does not match first token %v. this is a bug", offset, tokens[0]))
	}
	end := start

	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.TokenNewline:
			t.AppendStr(bp.input[start:end], start)
			t.AppendFragment(ast.SoftBreak(bp.asStr(tok), tok.Span.Start))
			start = tok.Span.End
			end = start
		case lexer.TokenLineComment, lexer.TokenBlockComment:
			t.AppendStr(bp.input[start:end], start)
			start = tok.Span.End
			end = start
		case lexer.TokenEscaped:
			t.AppendStr(bp.input[start:end], start)
			start = tok.Span.Start + 1 // skip "\"
			end = tok.Span.End
		default:
			end = tok.Span.End
		}
	}
	t.AppendStr(bp.input[start:end], start)
	return t
}

// currentOffset is the source offset just after the last consumed token.
func (bp *blockParser) currentOffset() int {
	if bp.current == 0 {
		return bp.baseOffset
	}
	return bp.tokens[bp.current-1].Span.End
}

func (bp *blockParser) tokensConsumed() int {
	return bp.current
}

func (bp *blockParser) parsed() []lexer.Token {
	return bp.tokens[:bp.current]
}

func (bp *blockParser) rest() []lexer.Token {
	return bp.tokens[bp.current:]
}

func (bp *blockParser) consumeRest() []lexer.Token {
	r := bp.rest()
	bp.current = len(bp.tokens)
	return r
}

// peek returns the kind of the next token, TokenEOF at the end.
func (bp *blockParser) peek() lexer.TokenKind {
	if bp.current >= len(bp.tokens) {
		return lexer.TokenEOF
	}
	return bp.tokens[bp.current].Kind
}

func (bp *blockParser) at(kind lexer.TokenKind) bool {
	return bp.peek() == kind
}

func (bp *blockParser) next() (lexer.Token, bool) {
	if bp.current >= len(bp.tokens) {
		return lexer.Token{}, false
	}
	tok := bp.tokens[bp.current]
	bp.current++
	return tok, true
}

// bumpAny is next for callers that already know a token is there.
func (bp *blockParser) bumpAny() lexer.Token {
	tok, ok := bp.next()
	if !ok {
		panic("expected a token, but there was none. this is a bug")
	}
	return tok
}

func (bp *blockParser) bump(expected lexer.TokenKind) lexer.Token {
	tok := bp.bumpAny()
	if tok.Kind != expected {
		panic(fmt.Sprintf("expected %v, but got %v. this is a bug", expected, tok.Kind))
	}
	return tok
}

// consume takes the next token only if it is of the expected kind.
func (bp *blockParser) consume(expected lexer.TokenKind) (lexer.Token, bool) {
	if !bp.at(expected) {
		return lexer.Token{}, false
	}
	return bp.bumpAny(), true
}

// until takes tokens up to, not including, the first one matching f. If
// none matches nothing is consumed and ok is false.
func (bp *blockParser) until(f func(lexer.TokenKind) bool) ([]lexer.Token, bool) {
	rest := bp.rest()
	for i, tok := range rest {
		if f(tok.Kind) {
			bp.current += i
			return rest[:i], true
		}
	}
	return nil, false
}

func (bp *blockParser) consumeWhile(f func(lexer.TokenKind) bool) []lexer.Token {
	rest := bp.rest()
	i := 0
	for i < len(rest) && f(rest[i].Kind) {
		i++
	}
	bp.current += i
	return rest[:i]
}

func (bp *blockParser) wsComments() []lexer.Token {
	return bp.consumeWhile(lexer.TokenKind.IsTrivia)
}

// tokensSpan covers a non-empty run of tokens.
func tokensSpan(tokens []lexer.Token) span.Span {
	if len(tokens) == 0 {
		panic("span of empty token run. this is a bug")
	}
	return span.New(tokens[0].Span.Start, tokens[len(tokens)-1].Span.End)
}
