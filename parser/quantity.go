package parser

import (
	"strconv"

	"github.com/dhamidi/cook/ast"
	"github.com/dhamidi/cook/lexer"
	"github.com/dhamidi/cook/quantity"
	"github.com/dhamidi/cook/report"
	"github.com/dhamidi/cook/span"
)

type ParsedQuantity struct {
	Quantity span.Located[ast.Quantity]
	// UnitSeparator is the % between value and unit, if there was one.
	UnitSeparator *span.Span
}

// parseQuantity parses the tokens between the braces of a component.
// It works on its own cursor, so bp only receives the diagnostics; none of
// bp's tokens are consumed. tokens must not be empty.
func parseQuantity(bp *blockParser, tokens []lexer.Token) ParsedQuantity {
	if len(tokens) == 0 {
		panic("empty quantity tokens. this is a bug")
	}

	sub := newBlockParser(tokens[0].Span.Start, tokens, bp.input, bp.extensions)

	var (
		q  ParsedQuantity
		ok bool
	)
	if sub.extension(AdvancedUnits) {
		q, ok = withRecover(sub, parseAdvancedQuantity)
	}
	if !ok {
		q = parseRegularQuantity(sub)
	}

	bp.events = append(bp.events, sub.events...)
	return q
}

func isQuantitySeparator(k lexer.TokenKind) bool {
	return k == lexer.TokenOr || k == lexer.TokenStar || k == lexer.TokenPercent
}

// parseRegularQuantity handles value|value*%unit.
func parseRegularQuantity(bp *blockParser) ParsedQuantity {
	value := manyValues(bp)

	var (
		unit          *ast.Text
		unitSeparator *span.Span
	)
	switch bp.peek() {
	case lexer.TokenPercent:
		sep := bp.bumpAny()
		unitSeparator = &sep.Span
		rest := bp.consumeRest()
		if isBlankUnit(rest) {
			where := span.Pos(sep.Span.End)
			if len(rest) > 0 {
				where = span.New(sep.Span.Start, rest[len(rest)-1].Span.End)
			}
			bp.error(&ComponentPartInvalid{
				Container: "quantity",
				What:      "unit",
				Reason:    "is empty",
				Highlights: []report.Label{
					report.NewLabel(sep.Span, "remove this"),
					report.NewLabel(where, "or add unit here"),
				},
			})
		} else {
			t := bp.text(sep.Span.End, rest)
			unit = &t
		}
	case lexer.TokenEOF:
	default:
		// Something follows the auto scale marker. Give up on the
		// structure and take everything as text.
		bp.consumeRest()
		t := bp.text(bp.tokens[0].Span.Start, bp.tokens)
		value = ast.Single{Value: span.At[quantity.Value](quantity.Text(t.Trimmed()), t.Span())}
	}

	return ParsedQuantity{
		Quantity:      span.At(ast.Quantity{Value: value, Unit: unit}, tokensSpan(bp.tokens)),
		UnitSeparator: unitSeparator,
	}
}

func isBlankUnit(tokens []lexer.Token) bool {
	for _, tok := range tokens {
		if tok.Kind != lexer.TokenWhitespace && tok.Kind != lexer.TokenBlockComment {
			return false
		}
	}
	return true
}

// parseAdvancedQuantity handles "100 ml": a number, at least one space and
// a unit, without any separator.
func parseAdvancedQuantity(bp *blockParser) (ParsedQuantity, bool) {
	for _, tok := range bp.tokens {
		if isQuantitySeparator(tok.Kind) {
			return ParsedQuantity{}, false
		}
	}

	bp.wsComments()
	valueTokens := bp.consumeWhile(func(k lexer.TokenKind) bool { return k != lexer.TokenWord })
	if len(valueTokens) == 0 || valueTokens[len(valueTokens)-1].Kind != lexer.TokenWhitespace {
		return ParsedQuantity{}, false
	}

	// leading trivia is already gone, so there is a non-blank token
	end := len(valueTokens) - 1
	for valueTokens[end].Kind == lexer.TokenWhitespace || valueTokens[end].Kind == lexer.TokenBlockComment {
		end--
	}
	valueTokens = valueTokens[:end+1]

	v, ok, err := numericValue(bp, valueTokens)
	if !ok {
		return ParsedQuantity{}, false
	}
	if err != nil {
		bp.error(err)
		v = quantity.Recover()
	}
	value := span.At(v, tokensSpan(valueTokens))

	unitTokens := bp.consumeRest()
	if len(unitTokens) == 0 {
		return ParsedQuantity{}, false
	}
	unit := bp.text(unitTokens[0].Span.Start, unitTokens)

	q := ast.Quantity{
		Value: ast.Single{Value: value},
		Unit:  &unit,
	}
	return ParsedQuantity{Quantity: span.At(q, tokensSpan(bp.tokens))}, true
}

// manyValues parses values separated by |, up to a * or a %.
func manyValues(bp *blockParser) ast.QuantityValue {
	var (
		values    []span.Located[quantity.Value]
		autoScale *span.Span
	)

loop:
	for {
		valueTokens := bp.consumeWhile(func(k lexer.TokenKind) bool { return !isQuantitySeparator(k) })
		values = append(values, parseValue(bp, valueTokens))

		switch bp.peek() {
		case lexer.TokenOr:
			bp.bumpAny()
		case lexer.TokenStar:
			tok := bp.bumpAny()
			if len(values) == 1 {
				autoScale = &tok.Span
			} else {
				bp.error(&QuantityScalingConflict{BadBit: span.New(values[0].Span.End, tok.Span.End)})
			}
			break loop
		default:
			break loop
		}
	}

	return quantityValue(bp, values, autoScale)
}

// quantityValue builds the AST value of the parsed values. manyValues
// only sets autoScale for a single value, so the error below is not
// reached from the markup.
func quantityValue(bp *blockParser, values []span.Located[quantity.Value], autoScale *span.Span) ast.QuantityValue {
	if len(values) == 1 {
		return ast.Single{Value: values[0], AutoScale: autoScale}
	}
	if autoScale != nil {
		bp.error(&ComponentPartInvalid{
			Container:  "quantity",
			What:       "value",
			Reason:     "auto scale is not compatible with multiple values",
			Highlights: []report.Label{report.NewLabel(*autoScale, "remove this")},
		})
	}
	return ast.Many(values)
}

func parseValue(bp *blockParser, tokens []lexer.Token) span.Located[quantity.Value] {
	start := bp.currentOffset()
	if len(tokens) > 0 {
		start = tokens[0].Span.Start
	}
	s := span.New(start, bp.currentOffset())

	v, ok, err := numericValue(bp, tokens)
	switch {
	case !ok:
		v = textValue(bp, tokens, start)
	case err != nil:
		bp.error(err)
		v = quantity.Recover()
	}
	return span.At(v, s)
}

func textValue(bp *blockParser, tokens []lexer.Token, offset int) quantity.Value {
	t := bp.text(offset, tokens)
	if t.IsTextEmpty() {
		bp.error(&ComponentPartInvalid{
			Container:  "quantity",
			What:       "value",
			Reason:     "is empty",
			Highlights: []report.Label{report.NewLabel(t.Span(), "empty value here")},
		})
	}
	return quantity.Text(t.Trimmed())
}

// numericValue recognizes the numeric forms of a value. ok is false when
// tokens are not a number at all; err is set when they look like one but
// can't be computed.
func numericValue(bp *blockParser, tokens []lexer.Token) (v quantity.Value, ok bool, err ParserError) {
	// no numeric form has more than 4 tokens
	var f []lexer.Token
	for _, tok := range tokens {
		if tok.Kind.IsTrivia() {
			continue
		}
		if len(f) == 4 {
			return nil, false, nil
		}
		f = append(f, tok)
	}

	is := func(kinds ...lexer.TokenKind) bool {
		if len(f) != len(kinds) {
			return false
		}
		for i, k := range kinds {
			if f[i].Kind != k {
				return false
			}
		}
		return true
	}
	isNum := func(tok lexer.Token) bool {
		return tok.Kind == lexer.TokenInt || tok.Kind == lexer.TokenFloat
	}

	var n float64
	switch {
	case is(lexer.TokenInt):
		n, err = bp.parseInt(f[0])
	case is(lexer.TokenFloat):
		n, err = bp.parseFloat(f[0])
	case is(lexer.TokenInt, lexer.TokenInt, lexer.TokenSlash, lexer.TokenInt):
		n, err = bp.mixedNum(f[0], f[1], f[3])
	case is(lexer.TokenInt, lexer.TokenSlash, lexer.TokenInt):
		n, err = bp.frac(f[0], f[2])
	case len(f) == 3 && isNum(f[0]) && f[1].Kind == lexer.TokenMinus && isNum(f[2]) && bp.extension(RangeValues):
		r, err := bp.rangeValue(f[0], f[2])
		if err != nil {
			return nil, true, err
		}
		return r, true, nil
	default:
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	return quantity.Number(n), true, nil
}

func (bp *blockParser) mixedNum(i, a, b lexer.Token) (float64, ParserError) {
	whole, err := bp.parseInt(i)
	if err != nil {
		return 0, err
	}
	f, err := bp.frac(a, b)
	if err != nil {
		return 0, err
	}
	return whole + f, nil
}

func (bp *blockParser) frac(a, b lexer.Token) (float64, ParserError) {
	s := span.New(a.Span.Start, b.Span.End)
	num, err := bp.parseInt(a)
	if err != nil {
		return 0, err
	}
	den, err := bp.parseInt(b)
	if err != nil {
		return 0, err
	}
	if den == 0 {
		return 0, &DivisionByZero{BadBit: s}
	}
	return num / den, nil
}

func (bp *blockParser) rangeValue(s, e lexer.Token) (quantity.Value, ParserError) {
	start, err := bp.num(s)
	if err != nil {
		return nil, err
	}
	end, err := bp.num(e)
	if err != nil {
		return nil, err
	}
	return quantity.Range{Start: start, End: end}, nil
}

func (bp *blockParser) num(tok lexer.Token) (float64, ParserError) {
	switch tok.Kind {
	case lexer.TokenInt:
		return bp.parseInt(tok)
	case lexer.TokenFloat:
		return bp.parseFloat(tok)
	}
	panic("unexpected number token " + tok.Kind.String() + ". this is a bug")
}

// parseInt parses integer literals. They are unsigned 32 bit numbers; anything
// larger is an error.
func (bp *blockParser) parseInt(tok lexer.Token) (float64, ParserError) {
	i, err := strconv.ParseUint(bp.asStr(tok), 10, 32)
	if err != nil {
		return 0, &ParseIntError{BadBit: tok.Span, Err: err}
	}
	return float64(i), nil
}

func (bp *blockParser) parseFloat(tok lexer.Token) (float64, ParserError) {
	f, err := strconv.ParseFloat(bp.asStr(tok), 64)
	if err != nil {
		return 0, &ParseFloatError{BadBit: tok.Span, Err: err}
	}
	return f, nil
}
