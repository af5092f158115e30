package parser

import (
	"burn/internal/ast"
	"burn/internal/diag"
	"burn/internal/token"
)

// parseStructItem parses `struct Name { field: Type ... fn method... }`.
// Methods nest as child fn items so the outline mirrors containment.
func (p *Parser) parseStructItem() (ast.ItemID, bool) {
	kw := p.advance() // struct
	span := kw.Span

	name, nameSpan, ok := p.parseIdent("expected type name after 'struct'")
	if ok {
		span = span.Cover(nameSpan)
	}

	var fields []ast.Field
	var methods []ast.ItemID

	lbrace, haveBody := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after struct name")
	if haveBody {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			p.eatSemicolons()
			switch p.lx.Peek().Kind {
			case token.RBrace:
				continue
			case token.KwFn:
				m, _ := p.parseFnItem()
				methods = append(methods, m)
			case token.Ident:
				fName, fNameSpan, _ := p.parseIdent("expected field name")
				fSpan := fNameSpan
				typ := ast.NoTypeID
				if _, ok := p.expect(token.Colon, diag.SynExpectType, "expected ':' after field name"); ok {
					t, tSpan, ok := p.parseType()
					if ok {
						typ = t
						fSpan = fSpan.Cover(tSpan)
						p.arenas.RecordContext(tSpan, ast.CtxType)
					}
				}
				fields = append(fields, ast.Field{
					Name:     fName,
					NameSpan: fNameSpan,
					Type:     typ,
					Span:     fSpan,
				})
				p.eat(token.Comma)
			default:
				sp := p.lx.Peek().Span
				p.report(diag.SynExpectFieldOrFn, diag.SevError, sp, "expected field or method declaration")
				p.advance()
			}
		}

		rbrace, closed := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close struct body")
		if closed {
			span = span.Cover(rbrace.Span)
			p.arenas.RecordContext(innerSpan(lbrace.Span, rbrace.Span), ast.CtxStructBody)
		} else {
			span = span.Cover(p.lastSpan)
		}
	}

	return p.arenas.NewItem(ast.Item{
		Kind:     ast.ItemStruct,
		Span:     span,
		Name:     name,
		NameSpan: nameSpan,
		Fields:   fields,
		Methods:  methods,
	}), true
}
