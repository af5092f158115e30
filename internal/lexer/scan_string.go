package lexer

import (
	"burn/internal/diag"
	"burn/internal/token"
)

// scanString scans a double-quoted string literal with \-escapes.
// An unterminated string runs to the end of the line (or limit) and is
// reported, but still yields a StringLit token so analysis can continue.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote

	terminated := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
		if b == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump() // escaped character, including \"
			continue
		}
		if b == '"' {
			terminated = true
			break
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if !terminated {
		lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
	}
	return token.Token{Kind: token.StringLit, Span: sp, Text: text}
}
