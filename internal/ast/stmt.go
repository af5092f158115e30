package ast

import "burn/internal/source"

// StmtKind enumerates statement productions.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtVar
	StmtReturn
	StmtIf
	StmtWhile
	StmtFor
	StmtBlock
	StmtExpr
	StmtError
)

func (k StmtKind) String() string {
	switch k {
	case StmtVar:
		return "var"
	case StmtReturn:
		return "return"
	case StmtIf:
		return "if"
	case StmtWhile:
		return "while"
	case StmtFor:
		return "for"
	case StmtBlock:
		return "block"
	case StmtExpr:
		return "expr"
	case StmtError:
		return "error"
	default:
		return "invalid"
	}
}

// Stmt is a statement node. Field use per kind:
//
//	var:    Name/NameSpan/Mutable/Type/Init
//	return: Expr (NoExprID for bare return)
//	if:     Cond/Then/Else (Else may be another if for else-if chains)
//	while:  Cond/Then
//	for:    Name (loop variable), Expr (iterable), Then (body)
//	block:  Stmts
//	expr:   Expr
type Stmt struct {
	Kind     StmtKind
	Span     source.Span
	Name     source.StringID
	NameSpan source.Span

	Mutable bool
	Type    TypeID
	Init    ExprID

	Expr ExprID
	Cond ExprID
	Then StmtID
	Else StmtID

	Stmts []StmtID
}
