package ast

import "burn/internal/source"

// GrammarContext tags a source region with the grammar production that
// surrounds it. The parser records contexts as it goes, so completion can
// map a position to keyword suggestions without re-deriving the context
// from raw tree shape.
type GrammarContext uint8

const (
	CtxTopLevel GrammarContext = iota
	CtxStructBody
	CtxBlock
	CtxExpr
	CtxType
)

func (c GrammarContext) String() string {
	switch c {
	case CtxTopLevel:
		return "top-level"
	case CtxStructBody:
		return "struct-body"
	case CtxBlock:
		return "block"
	case CtxExpr:
		return "expr"
	case CtxType:
		return "type"
	}
	return "unknown"
}

// ContextSpan is one recorded (region, context) pair.
type ContextSpan struct {
	Span source.Span
	Ctx  GrammarContext
}
