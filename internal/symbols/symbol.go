package symbols

import (
	"burn/internal/ast"
	"burn/internal/source"
	"burn/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolImport
	SymbolFunction
	SymbolVar
	SymbolParam
	SymbolType
	SymbolField
	SymbolMethod
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolImport:
		return "import"
	case SymbolFunction:
		return "function"
	case SymbolVar:
		return "variable"
	case SymbolParam:
		return "parameter"
	case SymbolType:
		return "type"
	case SymbolField:
		return "field"
	case SymbolMethod:
		return "method"
	default:
		return "invalid"
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint8

const (
	SymbolFlagMutable SymbolFlags = 1 << iota
	SymbolFlagBuiltin
)

// SymbolDecl points back at the AST origin for diagnostics and queries.
type SymbolDecl struct {
	Item ast.ItemID
	Stmt ast.StmtID
}

// Symbol describes one named entity available in a scope. Type starts as
// the invalid placeholder for unannotated variables; the checker fills it
// in after inferring the initializer.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Scope ScopeID
	Span  source.Span // the declaring identifier
	Flags SymbolFlags
	Decl  SymbolDecl
	Type  types.TypeID
}

// Mutable reports whether the symbol may be assigned after declaration.
func (s *Symbol) Mutable() bool { return s.Flags&SymbolFlagMutable != 0 }

// Builtin reports whether the symbol comes from the builtin scope.
func (s *Symbol) Builtin() bool { return s.Flags&SymbolFlagBuiltin != 0 }
