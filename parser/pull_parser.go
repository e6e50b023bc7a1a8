// Package parser turns recipe source into a stream of events and builds
// the syntax tree from them.
//
// The PullParser groups tokens into blocks, one metadata entry, section
// header or step each, and parses one block at a time as events are
// requested. Problems in the input are events too: parsing never stops
// at the first error.
package parser

import (
	"iter"

	"github.com/dhamidi/cook/lexer"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cook.parser")

// TokenSource produces tokens until a TokenEOF token. *lexer.Lexer is one.
type TokenSource interface {
	NextToken() lexer.Token
}

type PullParser struct {
	input      string
	tokens     TokenSource
	peeked     *lexer.Token
	block      []lexer.Token
	queue      []Event
	extensions Extensions
}

func NewPullParser(input string, ext Extensions) *PullParser {
	return NewPullParserFromTokens(input, ext, lexer.NewLexer(input))
}

// NewPullParserFromTokens parses tokens produced elsewhere. Their spans
// must point into input.
func NewPullParserFromTokens(input string, ext Extensions, tokens TokenSource) *PullParser {
	return &PullParser{
		input:      input,
		tokens:     tokens,
		extensions: ext,
	}
}

// Next returns the next event, parsing another block when the queue is
// empty. ok is false once the input has no more blocks.
func (p *PullParser) Next() (Event, bool) {
	for len(p.queue) == 0 {
		if !p.nextBlock() {
			return nil, false
		}
	}
	return p.pop(), true
}

// Events iterates over the remaining events.
func (p *PullParser) Events() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for {
			ev, ok := p.Next()
			if !ok || !yield(ev) {
				return
			}
		}
	}
}

// Metadata iterates over the metadata entries only, with their errors
// and warnings. Lines that are not metadata are skipped without being
// parsed.
func (p *PullParser) Metadata() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for {
			for len(p.queue) == 0 {
				if !p.nextMetadataBlock() {
					return
				}
			}
			if !yield(p.pop()) {
				return
			}
		}
	}
}

func (p *PullParser) pop() Event {
	ev := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	return ev
}

func (p *PullParser) peek() (lexer.Token, bool) {
	if p.peeked == nil {
		tok := p.tokens.NextToken()
		p.peeked = &tok
	}
	return *p.peeked, p.peeked.Kind != lexer.TokenEOF
}

func (p *PullParser) nextToken() (lexer.Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.peeked = nil
	}
	return tok, ok
}

func isEmptyToken(k lexer.TokenKind) bool {
	return k.IsTrivia() || k == lexer.TokenNewline
}

// isSingleLineMarker reports whether a line starting with tok never
// continues on the next line: metadata and sections.
func isSingleLineMarker(tok lexer.Token, ok bool) bool {
	return ok && (tok.Kind == lexer.TokenMetaStart || tok.Kind == lexer.TokenEq)
}

type lineInfo struct {
	isEmpty      bool
	isSingleLine bool
}

// pullLine appends the tokens of one line, newline included, to the
// block. ok is false when there are no tokens left.
func (p *PullParser) pullLine() (lineInfo, bool) {
	info := lineInfo{
		isEmpty:      true,
		isSingleLine: isSingleLineMarker(p.peek()),
	}
	pulled := false
	for {
		tok, ok := p.nextToken()
		if !ok {
			break
		}
		p.block = append(p.block, tok)
		pulled = true
		if !isEmptyToken(tok.Kind) {
			info.isEmpty = false
		}
		if tok.Kind == lexer.TokenNewline {
			break
		}
	}
	return info, pulled
}

// nextBlock parses the next block into the queue. It reports false when
// only blank lines were left.
func (p *PullParser) nextBlock() bool {
	p.block = p.block[:0]
	multilineExt := p.extensions.Has(MultilineSteps)

	// start and end delimit the non blank part of the block
	start := 0

	line, ok := p.pullLine()
	if !ok {
		return false
	}
	for line.isEmpty {
		start = len(p.block)
		if line, ok = p.pullLine(); !ok {
			return false
		}
	}

	end := len(p.block)
	if multilineExt && !line.isSingleLine {
		for !isSingleLineMarker(p.peek()) {
			next, ok := p.pullLine()
			if !ok || next.isEmpty {
				break
			}
			end = len(p.block)
		}
	}

	for end > start && p.block[end-1].Kind == lexer.TokenNewline {
		end--
	}
	trimmed := p.block[start:end]
	if len(trimmed) == 0 {
		return false
	}

	bp := newBlockParser(trimmed[0].Span.Start, trimmed, p.input, p.extensions)
	parseBlock(bp)
	p.queue = append(p.queue, bp.finish()...)
	return true
}

func parseBlock(bp *blockParser) {
	var (
		ev Event
		ok bool
	)
	switch bp.peek() {
	case lexer.TokenMetaStart:
		ev, ok = withRecover(bp, metadataEntry)
	case lexer.TokenEq:
		ev, ok = withRecover(bp, section)
	}
	if ok {
		bp.event(ev)
		return
	}
	step(bp)
}

// nextMetadataBlock skips to the next line starting with >> and parses
// it as a metadata entry.
func (p *PullParser) nextMetadataBlock() bool {
	p.block = p.block[:0]

	last := lexer.TokenNewline
	for {
		tok, ok := p.peek()
		if !ok {
			return false
		}
		if last == lexer.TokenNewline && tok.Kind == lexer.TokenMetaStart {
			break
		}
		p.nextToken()
		last = tok.Kind
	}

	for {
		tok, ok := p.nextToken()
		if !ok || tok.Kind == lexer.TokenNewline {
			break
		}
		p.block = append(p.block, tok)
	}

	bp := newBlockParser(p.block[0].Span.Start, p.block, p.input, p.extensions)
	if ev, ok := metadataEntry(bp); ok {
		bp.event(ev)
	} else {
		bp.consumeRest()
	}
	p.queue = append(p.queue, bp.finish()...)
	return true
}
