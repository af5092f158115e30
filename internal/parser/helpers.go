package parser

import (
	"burn/internal/diag"
	"burn/internal/source"
	"burn/internal/token"
)

// advance consumes the next token and remembers its span for diagnostics.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagSpan picks the best span for a diagnostic at the current position:
// for EOF that is the zero-width position after the last consumed token.
func (p *Parser) diagSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && !p.lastSpan.Empty() {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports an error.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// eat consumes a token of kind k when present.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// eatSemicolons skips optional statement separators.
func (p *Parser) eatSemicolons() {
	for p.at(token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	if !p.opts.Enough() {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
}

// parseIdent expects an identifier and interns it.
func (p *Parser) parseIdent(msg string) (source.StringID, source.Span, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, msg)
	if !ok {
		return source.NoStringID, tok.Span, false
	}
	return p.arenas.StringsInterner.Intern(tok.Text), tok.Span, true
}

// resyncUntil skips tokens until one of the stop kinds or EOF, covering
// the skipped region in the returned span.
func (p *Parser) resyncUntil(stop ...token.Kind) source.Span {
	span := p.diagSpan()
	for !p.at(token.EOF) && !p.atAny(stop...) {
		span = span.Cover(p.advance().Span)
	}
	return span
}
