package parser

import (
	"github.com/dhamidi/cook/ast"
	"github.com/dhamidi/cook/lexer"
	"github.com/dhamidi/cook/report"
	"github.com/dhamidi/cook/span"
)

const (
	containerIngredient = "ingredient"
	containerCookware   = "cookware"
	containerTimer      = "timer"
)

// step parses a whole block as a step: plain text with components in it.
func step(bp *blockParser) {
	isText := false
	if bp.extension(TextSteps) {
		_, isText = bp.consume(lexer.TokenTextStep)
	}

	bp.event(StartStep{IsText: isText})
	if isText {
		bp.textItem(bp.consumeRest())
	} else {
		stepItems(bp)
	}
	bp.event(EndStep{IsText: isText})
}

func stepItems(bp *blockParser) {
	textStart := bp.tokensConsumed()
	for !bp.at(lexer.TokenEOF) {
		switch bp.peek() {
		case lexer.TokenAt, lexer.TokenHash, lexer.TokenTilde:
			before := bp.tokensConsumed()
			mark := len(bp.events)
			ev, ok := withRecover(bp, component)
			if !ok {
				break
			}
			// the text in front of the component goes before its diagnostics
			diags := append([]Event(nil), bp.events[mark:]...)
			bp.events = bp.events[:mark]
			bp.textItem(bp.tokens[textStart:before])
			bp.events = append(bp.events, diags...)
			bp.event(ev)
			textStart = bp.tokensConsumed()
			continue
		}
		bp.bumpAny()
	}
	bp.textItem(bp.tokens[textStart:])
}

// textItem pushes a Text event unless tokens hold no text at all.
func (bp *blockParser) textItem(tokens []lexer.Token) {
	if len(tokens) == 0 {
		return
	}
	t := bp.text(tokens[0].Span.Start, tokens)
	if len(t.Fragments()) == 0 {
		return
	}
	bp.event(Text{Value: t})
}

type componentBody struct {
	name []lexer.Token
	// nameOffset is where the name starts, or would start if empty.
	nameOffset int
	quantity   []lexer.Token
	// close is the closing brace, empty in the short form.
	close *span.Span
}

func component(bp *blockParser) (Event, bool) {
	marker := bp.bumpAny()
	var container string
	switch marker.Kind {
	case lexer.TokenAt:
		container = containerIngredient
	case lexer.TokenHash:
		container = containerCookware
	case lexer.TokenTilde:
		container = containerTimer
	default:
		panic("component without a marker. this is a bug")
	}

	mods, modErrors := modifiers(bp, container, marker.Span.End)

	body, ok := withRecover(bp, longBody)
	if !ok {
		body, ok = shortBody(bp)
	}
	if !ok {
		return nil, false
	}
	for _, err := range modErrors {
		bp.error(err)
	}

	name := bp.text(body.nameOffset, body.name)
	var alias *ast.Text
	if aliasStart, found := findToken(body.name, lexer.TokenOr); found {
		name = bp.text(body.nameOffset, body.name[:aliasStart])
		alias = bp.alias(container, body.name[aliasStart], body.name[aliasStart+1:])
	}

	var q *ParsedQuantity
	if tokens := trimWhitespace(body.quantity); len(tokens) > 0 {
		pq := parseQuantity(bp, tokens)
		q = &pq
	}

	switch container {
	case containerIngredient:
		var note *ast.Text
		if bp.extension(ComponentNote) {
			note, _ = withRecover(bp, componentNote)
		}
		bp.checkName(container, name)
		igr := ast.Ingredient{
			Modifiers: mods,
			Name:      name,
			Alias:     alias,
			Note:      note,
		}
		if q != nil {
			igr.Quantity = &q.Quantity
		}
		return Ingredient(span.At(igr, span.New(marker.Span.Start, bp.currentOffset()))), true

	case containerCookware:
		var note *ast.Text
		if bp.extension(ComponentNote) {
			note, _ = withRecover(bp, componentNote)
		}
		bp.checkName(container, name)
		cw := ast.Cookware{
			Modifiers: mods,
			Name:      name,
			Alias:     alias,
			Note:      note,
		}
		if q != nil {
			cw.Quantity = bp.cookwareQuantity(q)
		}
		return Cookware(span.At(cw, span.New(marker.Span.Start, bp.currentOffset()))), true

	default:
		tm := ast.Timer{}
		if !name.IsTextEmpty() {
			tm.Name = &name
		}
		end := bp.currentOffset()
		switch {
		case q == nil:
			pos := span.Pos(end)
			if body.close != nil {
				pos = span.Pos(body.close.Start)
			}
			bp.error(&ComponentPartMissing{Container: container, What: "quantity", ExpectedPos: pos})
		default:
			tq := q.Quantity
			tq.Value.Value = bp.dropAutoScale(container, tq.Value.Value)
			if tq.Value.Unit == nil {
				bp.error(&ComponentPartMissing{Container: container, What: "unit", ExpectedPos: span.Pos(tq.Span.End)})
			}
			tm.Quantity = &tq
		}
		return Timer(span.At(tm, span.New(marker.Span.Start, end))), true
	}
}

// modifiers parses the modifier characters after a component marker.
// Errors are returned instead of pushed, because the component itself
// may still turn out to be plain text.
func modifiers(bp *blockParser, container string, offset int) (span.Located[ast.Modifiers], []ParserError) {
	none := span.At(ast.Modifiers(0), span.Pos(offset))
	if !bp.extension(ComponentModifiers) {
		return none, nil
	}

	tokens := bp.consumeWhile(func(k lexer.TokenKind) bool {
		switch k {
		case lexer.TokenAnd, lexer.TokenQuestion, lexer.TokenPlus, lexer.TokenMinus:
			return true
		}
		return false
	})
	if len(tokens) == 0 {
		return none, nil
	}

	s := tokensSpan(tokens)
	if container == containerTimer {
		return none, []ParserError{&ComponentPartNotAllowed{
			Container: container,
			What:      "modifiers",
			ToRemove:  s,
			Hint:      "Modifiers are only available in ingredients and cookware",
		}}
	}

	var (
		mods ast.Modifiers
		errs []ParserError
	)
	for _, tok := range tokens {
		m, _ := ast.ModifierFromChar(bp.input[tok.Span.Start])
		if mods.Has(m) {
			errs = append(errs, &DuplicateModifiers{ModifiersSpan: s, Dup: m.String()})
			continue
		}
		mods |= m
	}
	return span.At(mods, s), errs
}

// longBody parses name{quantity}. The name ends at the brace and may not
// span lines or contain another component.
func longBody(bp *blockParser) (componentBody, bool) {
	nameTokens, ok := bp.until(func(k lexer.TokenKind) bool {
		switch k {
		case lexer.TokenLBrace, lexer.TokenNewline, lexer.TokenAt, lexer.TokenHash, lexer.TokenTilde:
			return true
		}
		return false
	})
	if !ok || !bp.at(lexer.TokenLBrace) {
		return componentBody{}, false
	}
	if len(nameTokens) > 0 && nameTokens[0].Kind == lexer.TokenWhitespace {
		return componentBody{}, false
	}
	open := bp.bump(lexer.TokenLBrace)

	inner, ok := bp.until(func(k lexer.TokenKind) bool {
		return k == lexer.TokenRBrace || k == lexer.TokenNewline
	})
	if !ok || !bp.at(lexer.TokenRBrace) {
		return componentBody{}, false
	}
	closeBrace := bp.bump(lexer.TokenRBrace)

	nameOffset := open.Span.Start
	if len(nameTokens) > 0 {
		nameOffset = nameTokens[0].Span.Start
	}
	return componentBody{
		name:       nameTokens,
		nameOffset: nameOffset,
		quantity:   inner,
		close:      &closeBrace.Span,
	}, true
}

// shortBody is the single word form: @salt
func shortBody(bp *blockParser) (componentBody, bool) {
	word, ok := bp.consume(lexer.TokenWord)
	if !ok {
		return componentBody{}, false
	}
	return componentBody{
		name:       []lexer.Token{word},
		nameOffset: word.Span.Start,
	}, true
}

func componentNote(bp *blockParser) (*ast.Text, bool) {
	open, ok := bp.consume(lexer.TokenLParen)
	if !ok {
		return nil, false
	}
	tokens, ok := bp.until(func(k lexer.TokenKind) bool {
		return k == lexer.TokenRParen || k == lexer.TokenNewline
	})
	if !ok || !bp.at(lexer.TokenRParen) {
		return nil, false
	}
	bp.bump(lexer.TokenRParen)
	note := bp.text(open.Span.End, tokens)
	return &note, true
}

func (bp *blockParser) alias(container string, sep lexer.Token, tokens []lexer.Token) *ast.Text {
	toRemove := sep.Span
	if len(tokens) > 0 {
		toRemove = toRemove.Cover(tokensSpan(tokens))
	}
	if container == containerTimer {
		bp.error(&ComponentPartNotAllowed{Container: container, What: "alias", ToRemove: toRemove})
		return nil
	}
	if !bp.extension(ComponentAlias) {
		bp.error(&ComponentPartNotAllowed{
			Container: container,
			What:      "alias",
			ToRemove:  toRemove,
			Hint:      "Enable the component_alias extension to use aliases",
		})
		return nil
	}

	alias := bp.text(sep.Span.End, tokens)
	if alias.IsTextEmpty() {
		bp.error(&ComponentPartInvalid{
			Container:  container,
			What:       "alias",
			Reason:     "is empty",
			Highlights: []report.Label{report.NewLabel(toRemove, "add an alias or remove the separator")},
		})
		return nil
	}
	return &alias
}

func (bp *blockParser) checkName(container string, name ast.Text) {
	if !name.IsTextEmpty() {
		return
	}
	bp.error(&ComponentPartInvalid{
		Container:  container,
		What:       "name",
		Reason:     "is empty",
		Highlights: []report.Label{report.NewLabel(name.Span(), "add a name here")},
	})
}

// cookwareQuantity keeps only the value: cookware is counted, not measured.
func (bp *blockParser) cookwareQuantity(q *ParsedQuantity) *span.Located[ast.QuantityValue] {
	if unit := q.Quantity.Value.Unit; unit != nil {
		toRemove := unit.Span()
		if q.UnitSeparator != nil {
			toRemove = q.UnitSeparator.Cover(toRemove)
		}
		bp.error(&ComponentPartNotAllowed{
			Container: containerCookware,
			What:      "unit",
			ToRemove:  toRemove,
			Hint:      "Cookware quantities are a number of items, remove the unit",
		})
	}
	value := bp.dropAutoScale(containerCookware, q.Quantity.Value.Value)
	located := span.At(value, q.Quantity.Span)
	return &located
}

// dropAutoScale reports and removes a * marker on components that are
// never scaled linearly.
func (bp *blockParser) dropAutoScale(container string, v ast.QuantityValue) ast.QuantityValue {
	single, ok := v.(ast.Single)
	if !ok || single.AutoScale == nil {
		return v
	}
	bp.error(&ComponentPartNotAllowed{
		Container: container,
		What:      "auto scale marker",
		ToRemove:  *single.AutoScale,
		Hint:      "Only ingredient quantities can scale automatically",
	})
	single.AutoScale = nil
	return single
}

func findToken(tokens []lexer.Token, kind lexer.TokenKind) (int, bool) {
	for i, tok := range tokens {
		if tok.Kind == kind {
			return i, true
		}
	}
	return 0, false
}

func trimWhitespace(tokens []lexer.Token) []lexer.Token {
	for len(tokens) > 0 && tokens[0].Kind == lexer.TokenWhitespace {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].Kind == lexer.TokenWhitespace {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}
