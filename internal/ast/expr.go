package ast

import (
	"burn/internal/source"
	"burn/internal/token"
)

// ExprKind enumerates expression productions.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIntLit
	ExprFloatLit
	ExprStringLit
	ExprBoolLit
	ExprNullLit
	ExprIdent
	ExprUnary
	ExprBinary
	ExprAssign
	ExprCall
	ExprProperty
	ExprIndex
	ExprArrayLit
	ExprParen
	ExprError
)

func (k ExprKind) String() string {
	switch k {
	case ExprIntLit:
		return "int"
	case ExprFloatLit:
		return "float"
	case ExprStringLit:
		return "string"
	case ExprBoolLit:
		return "bool"
	case ExprNullLit:
		return "null"
	case ExprIdent:
		return "ident"
	case ExprUnary:
		return "unary"
	case ExprBinary:
		return "binary"
	case ExprAssign:
		return "assign"
	case ExprCall:
		return "call"
	case ExprProperty:
		return "property"
	case ExprIndex:
		return "index"
	case ExprArrayLit:
		return "array"
	case ExprParen:
		return "paren"
	case ExprError:
		return "error"
	default:
		return "invalid"
	}
}

// Expr is an expression node. Field use per kind:
//
//	literals: Text (source spelling)
//	ident:    Name/NameSpan
//	unary:    Op, Left
//	binary:   Op, Left, Right
//	assign:   Left (target), Right (value)
//	call:     Left (callee), Args
//	property: Left (object), Name/NameSpan
//	index:    Left (array), Right (index)
//	array:    Args (elements)
//	paren:    Left
type Expr struct {
	Kind     ExprKind
	Span     source.Span
	Name     source.StringID
	NameSpan source.Span
	Text     string
	Op       token.Kind
	Left     ExprID
	Right    ExprID
	Args     []ExprID
}
