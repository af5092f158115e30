package parser

import (
	"burn/internal/ast"
	"burn/internal/diag"
	"burn/internal/source"
	"burn/internal/token"
)

// parseVarItem parses `let|var|const name [: Type] [= expr] [;]` at top
// level. The item is always produced, possibly partial.
func (p *Parser) parseVarItem() (ast.ItemID, bool) {
	kw := p.advance() // let | var | const
	mutable := kw.Kind != token.KwConst
	span := kw.Span

	name, nameSpan, ok := p.parseIdent("expected variable name")
	if ok {
		span = span.Cover(nameSpan)
	}

	typ, init, span := p.parseVarTail(span)

	return p.arenas.NewItem(ast.Item{
		Kind:     ast.ItemVar,
		Span:     span,
		Name:     name,
		NameSpan: nameSpan,
		Mutable:  mutable,
		Type:     typ,
		Init:     init,
	}), true
}

// parseVarTail parses the optional annotation and initializer shared by
// top-level and statement variable declarations.
func (p *Parser) parseVarTail(span source.Span) (ast.TypeID, ast.ExprID, source.Span) {
	typ := ast.NoTypeID
	init := ast.NoExprID

	if p.eat(token.Colon) {
		t, tSpan, ok := p.parseType()
		if ok {
			typ = t
			span = span.Cover(tSpan)
			p.arenas.RecordContext(tSpan, ast.CtxType)
		}
	}

	if p.eat(token.Assign) {
		e, ok := p.parseExpr()
		if ok {
			init = e
			eSpan := p.arenas.Expr(e).Span
			span = span.Cover(eSpan)
			p.arenas.RecordContext(eSpan, ast.CtxExpr)
		} else {
			p.err(diag.SynExpectExpression, "expected expression after '='")
		}
	}

	if p.at(token.Semicolon) {
		span = span.Cover(p.advance().Span)
	}
	return typ, init, span
}
