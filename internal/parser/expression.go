package parser

import (
	"burn/internal/ast"
	"burn/internal/diag"
	"burn/internal/token"
)

// parseExpr is the entry point for expression parsing.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr implements precedence climbing over binaryPrec.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.lx.Peek()
		prec, rightAssoc := binaryPrec(tok.Kind)
		if prec == 0 || prec < minPrec {
			break
		}

		opTok := p.advance()
		nextMinPrec := prec + 1
		if rightAssoc {
			nextMinPrec = prec
		}

		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			p.err(diag.SynExpectExpression, "expected expression after '"+opTok.Kind.String()+"'")
			// Degrade to the left operand so the statement still types.
			return left, true
		}

		span := p.arenas.Expr(left).Span.Cover(p.arenas.Expr(right).Span)
		kind := ast.ExprBinary
		if opTok.Kind == token.Assign {
			kind = ast.ExprAssign
		}
		left = p.arenas.NewExpr(ast.Expr{
			Kind:  kind,
			Span:  span,
			Op:    opTok.Kind,
			Left:  left,
			Right: right,
		})
	}

	return left, true
}

// parseUnaryExpr handles prefix '-' and '!'.
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	if tok.Kind == token.Minus || tok.Kind == token.Bang {
		opTok := p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			p.err(diag.SynExpectExpression, "expected expression after '"+opTok.Kind.String()+"'")
			return ast.NoExprID, false
		}
		span := opTok.Span.Cover(p.arenas.Expr(operand).Span)
		return p.arenas.NewExpr(ast.Expr{
			Kind: ast.ExprUnary,
			Span: span,
			Op:   opTok.Kind,
			Left: operand,
		}), true
	}
	return p.parsePostfixExpr()
}

// parsePostfixExpr parses a primary expression followed by any number of
// call, property-access, and index suffixes.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		switch p.lx.Peek().Kind {
		case token.LParen:
			expr = p.parseCallSuffix(expr)
		case token.Dot:
			p.advance()
			name, nameSpan, ok := p.parseIdent("expected property name after '.'")
			if !ok {
				return expr, true
			}
			span := p.arenas.Expr(expr).Span.Cover(nameSpan)
			expr = p.arenas.NewExpr(ast.Expr{
				Kind:     ast.ExprProperty,
				Span:     span,
				Name:     name,
				NameSpan: nameSpan,
				Left:     expr,
			})
		case token.LBracket:
			p.advance()
			index, ok := p.parseExpr()
			if !ok {
				p.err(diag.SynExpectExpression, "expected index expression")
				return expr, true
			}
			rb, closed := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close index")
			span := p.arenas.Expr(expr).Span.Cover(p.arenas.Expr(index).Span)
			if closed {
				span = span.Cover(rb.Span)
			}
			expr = p.arenas.NewExpr(ast.Expr{
				Kind:  ast.ExprIndex,
				Span:  span,
				Left:  expr,
				Right: index,
			})
		default:
			return expr, true
		}
	}
}

func (p *Parser) parseCallSuffix(callee ast.ExprID) ast.ExprID {
	p.advance() // '('
	var args []ast.ExprID

	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg, ok := p.parseExpr()
		if !ok {
			p.err(diag.SynExpectExpression, "expected argument expression")
			p.resyncUntil(token.Comma, token.RParen)
		} else {
			args = append(args, arg)
		}
		if !p.eat(token.Comma) {
			break
		}
	}

	span := p.arenas.Expr(callee).Span
	if rp, closed := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close call"); closed {
		span = span.Cover(rp.Span)
	} else {
		span = span.Cover(p.lastSpan)
	}

	return p.arenas.NewExpr(ast.Expr{
		Kind: ast.ExprCall,
		Span: span,
		Left: callee,
		Args: args,
	})
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return p.arenas.NewExpr(ast.Expr{Kind: ast.ExprIntLit, Span: tok.Span, Text: tok.Text}), true
	case token.FloatLit:
		p.advance()
		return p.arenas.NewExpr(ast.Expr{Kind: ast.ExprFloatLit, Span: tok.Span, Text: tok.Text}), true
	case token.StringLit:
		p.advance()
		return p.arenas.NewExpr(ast.Expr{Kind: ast.ExprStringLit, Span: tok.Span, Text: tok.Text}), true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.arenas.NewExpr(ast.Expr{Kind: ast.ExprBoolLit, Span: tok.Span, Text: tok.Text}), true
	case token.KwNull:
		p.advance()
		return p.arenas.NewExpr(ast.Expr{Kind: ast.ExprNullLit, Span: tok.Span, Text: tok.Text}), true
	case token.Ident:
		p.advance()
		return p.arenas.NewExpr(ast.Expr{
			Kind:     ast.ExprIdent,
			Span:     tok.Span,
			Name:     p.arenas.StringsInterner.Intern(tok.Text),
			NameSpan: tok.Span,
		}), true
	case token.LParen:
		lp := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			p.err(diag.SynExpectExpression, "expected expression after '('")
			return ast.NoExprID, false
		}
		span := lp.Span.Cover(p.arenas.Expr(inner).Span)
		if rp, closed := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); closed {
			span = span.Cover(rp.Span)
		}
		return p.arenas.NewExpr(ast.Expr{
			Kind: ast.ExprParen,
			Span: span,
			Left: inner,
		}), true
	case token.LBracket:
		lb := p.advance()
		var elems []ast.ExprID
		for !p.at(token.RBracket) && !p.at(token.EOF) {
			el, ok := p.parseExpr()
			if !ok {
				p.err(diag.SynExpectExpression, "expected array element")
				p.resyncUntil(token.Comma, token.RBracket)
			} else {
				elems = append(elems, el)
			}
			if !p.eat(token.Comma) {
				break
			}
		}
		span := lb.Span
		if rb, closed := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array literal"); closed {
			span = span.Cover(rb.Span)
		} else {
			span = span.Cover(p.lastSpan)
		}
		return p.arenas.NewExpr(ast.Expr{
			Kind: ast.ExprArrayLit,
			Span: span,
			Args: elems,
		}), true
	default:
		return ast.NoExprID, false
	}
}
