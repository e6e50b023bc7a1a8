package parser

import (
	"github.com/dhamidi/cook/lexer"
)

// section parses "= Name" and "== Name ==". Nothing but whitespace and
// comments may follow the closing equal signs.
func section(bp *blockParser) (Event, bool) {
	isEq := func(k lexer.TokenKind) bool { return k == lexer.TokenEq }

	bp.consumeWhile(isEq)
	bp.wsComments()
	nameTokens := bp.consumeWhile(func(k lexer.TokenKind) bool { return k != lexer.TokenEq })
	bp.consumeWhile(isEq)
	bp.wsComments()
	if len(bp.rest()) > 0 {
		return nil, false
	}

	end := len(nameTokens)
	for end > 0 && nameTokens[end-1].Kind.IsTrivia() {
		end--
	}
	nameTokens = nameTokens[:end]
	if len(nameTokens) == 0 {
		return Section{}, true
	}

	name := bp.text(nameTokens[0].Span.Start, nameTokens)
	if name.IsTextEmpty() {
		return Section{}, true
	}
	return Section{Name: &name}, true
}
