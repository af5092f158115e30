package lexer

import (
	"burn/internal/diag"
	"burn/internal/source"
)

// Options configure one lexer instance. A nil Reporter silently drops
// diagnostics; lexing itself never fails either way.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	diag.Report(lx.opts.Reporter, code, diag.SevError, sp, msg)
}
