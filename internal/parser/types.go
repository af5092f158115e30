package parser

import (
	"burn/internal/ast"
	"burn/internal/diag"
	"burn/internal/source"
	"burn/internal/token"
)

// parseType parses a type annotation. Grammar, loosest binding last:
//
//	type     = postfix ('|' postfix)*
//	postfix  = primary ('[' ']' | '?')*
//	primary  = Ident | 'fn' '(' type* ')' '->' type
func (p *Parser) parseType() (ast.TypeID, source.Span, bool) {
	first, span, ok := p.parsePostfixType()
	if !ok {
		return ast.NoTypeID, span, false
	}

	if !p.at(token.Pipe) {
		return first, span, true
	}

	members := []ast.TypeID{first}
	for p.eat(token.Pipe) {
		m, mSpan, ok := p.parsePostfixType()
		if !ok {
			p.err(diag.SynExpectType, "expected type after '|'")
			break
		}
		members = append(members, m)
		span = span.Cover(mSpan)
	}

	id := p.arenas.NewType(ast.TypeSyn{
		Kind:   ast.TypeSynUnion,
		Span:   span,
		Params: members,
	})
	return id, span, true
}

func (p *Parser) parsePostfixType() (ast.TypeID, source.Span, bool) {
	id, span, ok := p.parsePrimaryType()
	if !ok {
		return ast.NoTypeID, span, false
	}

	for {
		switch p.lx.Peek().Kind {
		case token.LBracket:
			lb := p.advance()
			if rb, closed := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' in array type"); closed {
				span = span.Cover(rb.Span)
			} else {
				span = span.Cover(lb.Span)
			}
			id = p.arenas.NewType(ast.TypeSyn{
				Kind: ast.TypeSynArray,
				Span: span,
				Elem: id,
			})
		case token.Question:
			q := p.advance()
			span = span.Cover(q.Span)
			id = p.arenas.NewType(ast.TypeSyn{
				Kind: ast.TypeSynOptional,
				Span: span,
				Elem: id,
			})
		default:
			return id, span, true
		}
	}
}

func (p *Parser) parsePrimaryType() (ast.TypeID, source.Span, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		id := p.arenas.NewType(ast.TypeSyn{
			Kind:     ast.TypeSynNamed,
			Span:     tok.Span,
			Name:     p.arenas.StringsInterner.Intern(tok.Text),
			NameSpan: tok.Span,
		})
		return id, tok.Span, true
	case token.KwFn:
		return p.parseFnType()
	default:
		p.report(diag.SynExpectType, diag.SevError, p.diagSpan(), "expected type")
		return ast.NoTypeID, p.diagSpan(), false
	}
}

// parseFnType parses `fn(T, U) -> R`.
func (p *Parser) parseFnType() (ast.TypeID, source.Span, bool) {
	kw := p.advance() // fn
	span := kw.Span

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' in function type"); !ok {
		id := p.arenas.NewType(ast.TypeSyn{Kind: ast.TypeSynError, Span: span})
		return id, span, true
	}

	var params []ast.TypeID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		t, _, ok := p.parseType()
		if !ok {
			p.resyncUntil(token.Comma, token.RParen, token.Arrow, token.LBrace)
		} else {
			params = append(params, t)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	if rp, closed := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' in function type"); closed {
		span = span.Cover(rp.Span)
	}

	result := ast.NoTypeID
	if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '->' in function type"); ok {
		if t, tSpan, ok := p.parseType(); ok {
			result = t
			span = span.Cover(tSpan)
		}
	}

	id := p.arenas.NewType(ast.TypeSyn{
		Kind:   ast.TypeSynFn,
		Span:   span,
		Params: params,
		Result: result,
	})
	return id, span, true
}
