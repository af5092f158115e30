package parser

import (
	"burn/internal/ast"
	"burn/internal/diag"
	"burn/internal/source"
	"burn/internal/token"
)

// innerSpan is the region strictly between two delimiter tokens.
func innerSpan(open, close source.Span) source.Span {
	return source.Span{File: open.File, Start: open.End, End: close.Start}
}

// parseBlock parses `{ stmt* }` and returns the block statement plus its
// full span including braces.
func (p *Parser) parseBlock() (ast.StmtID, source.Span) {
	lbrace := p.advance() // '{'
	span := lbrace.Span

	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		p.eatSemicolons()
		if p.at(token.RBrace) || p.at(token.EOF) {
			break
		}
		st, ok := p.parseStmt()
		if !ok {
			st = p.errorStmt()
		}
		stmts = append(stmts, st)
	}

	if rbrace, closed := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block"); closed {
		span = span.Cover(rbrace.Span)
		p.arenas.RecordContext(innerSpan(lbrace.Span, rbrace.Span), ast.CtxBlock)
	} else {
		span = span.Cover(p.lastSpan)
		p.arenas.RecordContext(source.Span{File: span.File, Start: lbrace.Span.End, End: span.End}, ast.CtxBlock)
	}

	id := p.arenas.NewStmt(ast.Stmt{
		Kind:  ast.StmtBlock,
		Span:  span,
		Stmts: stmts,
	})
	return id, span
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwLet, token.KwVar, token.KwConst:
		return p.parseVarStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.LBrace:
		id, _ := p.parseBlock()
		return id, true
	default:
		return p.parseExprStmt()
	}
}

// errorStmt consumes tokens up to the next statement boundary and wraps
// them in an Error statement.
func (p *Parser) errorStmt() ast.StmtID {
	start := p.lx.Peek().Span
	span := start
	for !p.at(token.EOF) && !p.at(token.RBrace) && !isStmtStarter(p.lx.Peek().Kind) {
		tok := p.advance()
		span = span.Cover(tok.Span)
		if tok.Kind == token.Semicolon {
			break
		}
	}
	return p.arenas.NewStmt(ast.Stmt{Kind: ast.StmtError, Span: span})
}

func isStmtStarter(k token.Kind) bool {
	switch k {
	case token.KwLet, token.KwVar, token.KwConst, token.KwReturn,
		token.KwIf, token.KwWhile, token.KwFor, token.LBrace:
		return true
	default:
		return false
	}
}

func (p *Parser) parseVarStmt() (ast.StmtID, bool) {
	kw := p.advance()
	mutable := kw.Kind != token.KwConst
	span := kw.Span

	name, nameSpan, ok := p.parseIdent("expected variable name")
	if ok {
		span = span.Cover(nameSpan)
	}

	typ, init, span := p.parseVarTail(span)

	return p.arenas.NewStmt(ast.Stmt{
		Kind:     ast.StmtVar,
		Span:     span,
		Name:     name,
		NameSpan: nameSpan,
		Mutable:  mutable,
		Type:     typ,
		Init:     init,
	}), true
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	kw := p.advance() // return
	span := kw.Span

	expr := ast.NoExprID
	if !p.atAny(token.Semicolon, token.RBrace, token.EOF) {
		e, ok := p.parseExpr()
		if ok {
			expr = e
			eSpan := p.arenas.Expr(e).Span
			span = span.Cover(eSpan)
			p.arenas.RecordContext(eSpan, ast.CtxExpr)
		} else {
			p.err(diag.SynExpectExpression, "expected expression after 'return'")
		}
	}
	if p.at(token.Semicolon) {
		span = span.Cover(p.advance().Span)
	}

	return p.arenas.NewStmt(ast.Stmt{
		Kind: ast.StmtReturn,
		Span: span,
		Expr: expr,
	}), true
}

func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	kw := p.advance() // if
	span := kw.Span

	cond := p.parseCondition("expected condition after 'if'")
	then := ast.NoStmtID
	if p.at(token.LBrace) {
		var bSpan source.Span
		then, bSpan = p.parseBlock()
		span = span.Cover(bSpan)
	} else {
		p.err(diag.SynUnexpectedToken, "expected '{' after if condition")
	}

	elseStmt := ast.NoStmtID
	if p.eat(token.KwElse) {
		if p.at(token.KwIf) {
			e, _ := p.parseIfStmt()
			elseStmt = e
			span = span.Cover(p.arenas.Stmt(e).Span)
		} else if p.at(token.LBrace) {
			e, bSpan := p.parseBlock()
			elseStmt = e
			span = span.Cover(bSpan)
		} else {
			p.err(diag.SynUnexpectedToken, "expected '{' or 'if' after 'else'")
		}
	}

	return p.arenas.NewStmt(ast.Stmt{
		Kind: ast.StmtIf,
		Span: span,
		Cond: cond,
		Then: then,
		Else: elseStmt,
	}), true
}

func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	kw := p.advance() // while
	span := kw.Span

	cond := p.parseCondition("expected condition after 'while'")
	body := ast.NoStmtID
	if p.at(token.LBrace) {
		var bSpan source.Span
		body, bSpan = p.parseBlock()
		span = span.Cover(bSpan)
	} else {
		p.err(diag.SynUnexpectedToken, "expected '{' after while condition")
	}

	return p.arenas.NewStmt(ast.Stmt{
		Kind: ast.StmtWhile,
		Span: span,
		Cond: cond,
		Then: body,
	}), true
}

func (p *Parser) parseForStmt() (ast.StmtID, bool) {
	kw := p.advance() // for
	span := kw.Span

	name, nameSpan, ok := p.parseIdent("expected loop variable after 'for'")
	if ok {
		span = span.Cover(nameSpan)
	}

	if _, ok := p.expect(token.KwIn, diag.SynForMissingIn, "expected 'in' in for loop"); !ok {
		p.resyncUntil(token.LBrace, token.RBrace, token.Semicolon)
	}

	iter := ast.NoExprID
	if !p.at(token.LBrace) {
		e, ok := p.parseExpr()
		if ok {
			iter = e
			eSpan := p.arenas.Expr(e).Span
			span = span.Cover(eSpan)
			p.arenas.RecordContext(eSpan, ast.CtxExpr)
		}
	}

	body := ast.NoStmtID
	if p.at(token.LBrace) {
		var bSpan source.Span
		body, bSpan = p.parseBlock()
		span = span.Cover(bSpan)
	} else {
		p.err(diag.SynUnexpectedToken, "expected '{' to begin for body")
	}

	return p.arenas.NewStmt(ast.Stmt{
		Kind:     ast.StmtFor,
		Span:     span,
		Name:     name,
		NameSpan: nameSpan,
		Expr:     iter,
		Then:     body,
	}), true
}

// parseCondition parses a condition expression, recording its context.
func (p *Parser) parseCondition(msg string) ast.ExprID {
	e, ok := p.parseExpr()
	if !ok {
		p.err(diag.SynExpectExpression, msg)
		return ast.NoExprID
	}
	eSpan := p.arenas.Expr(e).Span
	p.arenas.RecordContext(eSpan, ast.CtxExpr)
	return e
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	e, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	span := p.arenas.Expr(e).Span
	p.arenas.RecordContext(span, ast.CtxExpr)
	if p.at(token.Semicolon) {
		span = span.Cover(p.advance().Span)
	}
	return p.arenas.NewStmt(ast.Stmt{
		Kind: ast.StmtExpr,
		Span: span,
		Expr: e,
	}), true
}
