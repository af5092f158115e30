package parser

import (
	"burn/internal/ast"
	"burn/internal/diag"
	"burn/internal/token"
)

// parseFnItem parses `fn name(params) [-> Type] { body }`. Truncated
// declarations still produce an item with whatever was recognised, and a
// declaration that already reported an error does not stack follow-up
// errors for the missing remainder.
func (p *Parser) parseFnItem() (ast.ItemID, bool) {
	kw := p.advance() // fn
	span := kw.Span
	errored := false

	name, nameSpan, ok := p.parseIdent("expected function name after 'fn'")
	if ok {
		span = span.Cover(nameSpan)
	} else {
		errored = true
	}

	var params []ast.Param
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); ok {
		var closed bool
		params, closed = p.parseFnParams()
		if !closed {
			errored = true
		}
	} else {
		errored = true
	}
	if len(params) > 0 {
		span = span.Cover(params[len(params)-1].Span)
	}

	result := ast.NoTypeID
	if p.eat(token.Arrow) {
		t, tSpan, ok := p.parseType()
		if ok {
			result = t
			span = span.Cover(tSpan)
			p.arenas.RecordContext(tSpan, ast.CtxType)
		} else {
			errored = true
		}
	}

	body := ast.NoStmtID
	if p.at(token.LBrace) {
		b, bSpan := p.parseBlock()
		body = b
		span = span.Cover(bSpan)
	} else if !errored && !p.at(token.EOF) {
		p.err(diag.SynUnexpectedToken, "expected '{' to begin function body")
	}

	return p.arenas.NewItem(ast.Item{
		Kind:     ast.ItemFn,
		Span:     span,
		Name:     name,
		NameSpan: nameSpan,
		Params:   params,
		Result:   result,
		Body:     body,
	}), true
}

// parseFnParams parses the parameter list after '('. Returns the params
// and whether the closing ')' was found.
func (p *Parser) parseFnParams() ([]ast.Param, bool) {
	var params []ast.Param

	for !p.at(token.RParen) && !p.at(token.EOF) {
		name, nameSpan, ok := p.parseIdent("expected parameter name")
		if !ok {
			// Skip to the next separator so one bad parameter cannot
			// derail the whole list.
			p.resyncUntil(token.Comma, token.RParen, token.LBrace)
			if !p.eat(token.Comma) {
				break
			}
			continue
		}

		pSpan := nameSpan
		typ := ast.NoTypeID
		if p.eat(token.Colon) {
			t, tSpan, ok := p.parseType()
			if ok {
				typ = t
				pSpan = pSpan.Cover(tSpan)
				p.arenas.RecordContext(tSpan, ast.CtxType)
			}
		}
		params = append(params, ast.Param{
			Name:     name,
			NameSpan: nameSpan,
			Type:     typ,
			Span:     pSpan,
		})

		if !p.eat(token.Comma) {
			break
		}
	}

	if p.at(token.RParen) {
		p.advance()
		return params, true
	}
	p.err(diag.SynUnclosedParen, "expected ')' to close parameter list")
	return params, false
}
