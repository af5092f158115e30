package ast

import "burn/internal/source"

// ItemKind enumerates top-level (and struct-member) declarations.
type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemFn
	ItemVar
	ItemStruct
	ItemImport
	// ItemError spans tokens the parser skipped while recovering.
	ItemError
)

func (k ItemKind) String() string {
	switch k {
	case ItemFn:
		return "fn"
	case ItemVar:
		return "var"
	case ItemStruct:
		return "struct"
	case ItemImport:
		return "import"
	case ItemError:
		return "error"
	default:
		return "invalid"
	}
}

// Param is one function parameter.
type Param struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID // annotation, NoTypeID when omitted
	Span     source.Span
}

// Field is one struct field.
type Field struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
	Span     source.Span
}

// Item is a declaration node. Which fields are meaningful depends on Kind:
// fn uses Params/Result/Body, var uses Mutable/Type/Init, struct uses
// Fields/Methods, import uses only the name.
type Item struct {
	Kind     ItemKind
	Span     source.Span
	Name     source.StringID
	NameSpan source.Span

	// fn
	Params []Param
	Result TypeID
	Body   StmtID

	// var
	Mutable bool
	Type    TypeID
	Init    ExprID

	// struct
	Fields  []Field
	Methods []ItemID
}
