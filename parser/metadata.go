package parser

import (
	"github.com/dhamidi/cook/lexer"
	"github.com/dhamidi/cook/report"
	"github.com/dhamidi/cook/span"
)

// metadataEntry parses ">> key: value". Key and value keep the text as
// written, surrounding whitespace included.
func metadataEntry(bp *blockParser) (Event, bool) {
	bp.bump(lexer.TokenMetaStart)

	keyTokens, ok := bp.until(func(k lexer.TokenKind) bool { return k == lexer.TokenColon })
	if !ok {
		return nil, false
	}
	colon := bp.bump(lexer.TokenColon)
	valueTokens := bp.consumeRest()

	keyOffset := colon.Span.Start
	if len(keyTokens) > 0 {
		keyOffset = keyTokens[0].Span.Start
	}
	key := bp.text(keyOffset, keyTokens)
	value := bp.text(colon.Span.End, valueTokens)

	if key.IsTextEmpty() {
		bp.error(&ComponentPartInvalid{
			Container:  "metadata entry",
			What:       "key",
			Reason:     "is empty",
			Highlights: []report.Label{report.NewLabel(span.New(keyOffset, colon.Span.End), "this cannot be empty")},
		})
	}
	if value.IsTextEmpty() {
		bp.warn(&EmptyMetadataValue{Key: span.At(key.Trimmed(), key.Span())})
	}

	return Metadata{Key: key, Value: value}, true
}
