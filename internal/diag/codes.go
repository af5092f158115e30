package diag

import (
	"fmt"
)

// Code identifies a diagnostic family. Ranges follow analysis stages:
// 1xxx lexer, 2xxx parser, 3xxx binder, 4xxx type checker.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Syntax
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynExpectExpression   Code = 2005
	SynUnclosedBrace      Code = 2006
	SynUnclosedParen      Code = 2007
	SynUnclosedBracket    Code = 2008
	SynForMissingIn       Code = 2009
	SynExpectParamName    Code = 2010
	SynExpectFieldOrFn    Code = 2011

	// Binding
	BindUnresolvedName Code = 3001
	BindRedeclared     Code = 3002
	BindUnknownType    Code = 3003

	// Typing
	TypeMismatch        Code = 4001
	TypeArity           Code = 4002
	TypeArgMismatch     Code = 4003
	TypeNotCallable     Code = 4004
	TypeBadOperand      Code = 4005
	TypeCondNotBool     Code = 4006
	TypeNotIndexable    Code = 4007
	TypeAssignImmutable Code = 4008
	TypeNotIterable     Code = 4009
)

var codeDescription = map[Code]string{
	UnknownCode:           "unknown diagnostic",
	LexUnknownChar:        "unknown character",
	LexUnterminatedString: "unterminated string literal",
	LexBadNumber:          "malformed numeric literal",
	SynUnexpectedToken:    "unexpected token",
	SynUnexpectedTopLevel: "unexpected top-level construct",
	SynExpectIdentifier:   "expected identifier",
	SynExpectType:         "expected type",
	SynExpectExpression:   "expected expression",
	SynUnclosedBrace:      "unclosed brace",
	SynUnclosedParen:      "unclosed parenthesis",
	SynUnclosedBracket:    "unclosed bracket",
	SynForMissingIn:       "missing 'in' in for loop",
	SynExpectParamName:    "expected parameter name",
	SynExpectFieldOrFn:    "expected field or method",
	BindUnresolvedName:    "unresolved name",
	BindRedeclared:        "redeclared name",
	BindUnknownType:       "unknown type name",
	TypeMismatch:          "type mismatch",
	TypeArity:             "wrong number of arguments",
	TypeArgMismatch:       "argument type mismatch",
	TypeNotCallable:       "expression is not callable",
	TypeBadOperand:        "invalid operand type",
	TypeCondNotBool:       "condition is not Bool",
	TypeNotIndexable:      "expression is not indexable",
	TypeAssignImmutable:   "assignment to immutable binding",
	TypeNotIterable:       "expression is not iterable",
}

// Stage derives the producing stage from the code range.
func (c Code) Stage() Stage {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return StageLexer
	case ic >= 2000 && ic < 3000:
		return StageParser
	case ic >= 3000 && ic < 4000:
		return StageBinder
	case ic >= 4000 && ic < 5000:
		return StageChecker
	}
	return StageLexer
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("BND%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("TYP%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
