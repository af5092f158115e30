package ast

import "burn/internal/source"

// TypeSynKind enumerates type annotation syntax.
type TypeSynKind uint8

const (
	TypeSynInvalid TypeSynKind = iota
	TypeSynNamed
	TypeSynArray
	TypeSynOptional
	TypeSynFn
	TypeSynUnion
	TypeSynError
)

func (k TypeSynKind) String() string {
	switch k {
	case TypeSynNamed:
		return "named"
	case TypeSynArray:
		return "array"
	case TypeSynOptional:
		return "optional"
	case TypeSynFn:
		return "fn"
	case TypeSynUnion:
		return "union"
	case TypeSynError:
		return "error"
	default:
		return "invalid"
	}
}

// TypeSyn is a type annotation as written. The checker resolves it into an
// interned semantic type. Field use per kind:
//
//	named:    Name/NameSpan
//	array:    Elem
//	optional: Elem
//	fn:       Params, Result
//	union:    Params (members)
type TypeSyn struct {
	Kind     TypeSynKind
	Span     source.Span
	Name     source.StringID
	NameSpan source.Span
	Elem     TypeID
	Params   []TypeID
	Result   TypeID
}
