package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"burn/internal/ast"
	"burn/internal/source"
	"burn/internal/types"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates the scope and symbol arenas for one analysed file plus
// the shared builtin scope. Refs and TypeRefs record, per resolved AST
// node, which symbol the name bound to; queries walk them for hover and
// go-to-definition.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
	Types   *types.Interner

	Builtin  ScopeID
	Refs     map[ast.ExprID]SymbolID
	TypeRefs map[ast.TypeID]SymbolID
	ItemSyms map[ast.ItemID]SymbolID
	StmtSyms map[ast.StmtID]SymbolID
}

// NewTable builds a fresh table with the builtin scope installed. If
// strings or interner are nil, fresh ones are allocated.
func NewTable(h Hints, strings *source.Interner, interner *types.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	if interner == nil {
		interner = types.NewInterner()
	}
	t := &Table{
		Scopes:   NewScopes(scopeCap),
		Symbols:  NewSymbols(symCap),
		Strings:  strings,
		Types:    interner,
		Refs:     make(map[ast.ExprID]SymbolID),
		TypeRefs: make(map[ast.TypeID]SymbolID),
		ItemSyms: make(map[ast.ItemID]SymbolID),
		StmtSyms: make(map[ast.StmtID]SymbolID),
	}
	t.Builtin = t.Scopes.New(ScopeBuiltin, NoScopeID, source.Span{})
	t.installBuiltins()
	return t
}

// NewScope allocates a child scope.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, span source.Span) ScopeID {
	return t.Scopes.New(kind, parent, span)
}

// Declare adds a symbol to the scope. When the name is already taken in
// this same scope the previous winner is returned so the caller can
// report the redeclaration; the new symbol wins either way.
func (t *Table) Declare(scope ScopeID, sym Symbol) (SymbolID, SymbolID) {
	sc := t.Scopes.Get(scope)
	if sc == nil {
		return NoSymbolID, NoSymbolID
	}
	sym.Scope = scope
	id := t.Symbols.New(sym)
	prev := sc.NameIndex[sym.Name]
	sc.NameIndex[sym.Name] = id
	sc.Symbols = append(sc.Symbols, id)
	if sym.Decl.Item.IsValid() {
		t.ItemSyms[sym.Decl.Item] = id
	}
	if sym.Decl.Stmt.IsValid() {
		t.StmtSyms[sym.Decl.Stmt] = id
	}
	return id, prev
}

// LookupIn finds a name in exactly one scope.
func (t *Table) LookupIn(scope ScopeID, name source.StringID) SymbolID {
	sc := t.Scopes.Get(scope)
	if sc == nil {
		return NoSymbolID
	}
	return sc.NameIndex[name]
}

// Resolve walks the scope chain from the given scope to the builtin root.
func (t *Table) Resolve(scope ScopeID, name source.StringID) SymbolID {
	for scope.IsValid() {
		if id := t.LookupIn(scope, name); id.IsValid() {
			return id
		}
		scope = t.Scopes.Get(scope).Parent
	}
	return NoSymbolID
}

// ScopeAt returns the innermost scope whose span contains the offset,
// starting the search at root. Root itself is the fallback.
func (t *Table) ScopeAt(root ScopeID, off uint32) ScopeID {
	best := root
	sc := t.Scopes.Get(root)
	if sc == nil {
		return NoScopeID
	}
	for _, child := range sc.Children {
		cs := t.Scopes.Get(child)
		if cs == nil || !cs.Span.Contains(off) {
			continue
		}
		if inner := t.ScopeAt(child, off); inner.IsValid() {
			best = inner
		}
	}
	return best
}

// Visible collects every symbol reachable from the scope chain, innermost
// first. Shadowed names appear once, bound to the innermost winner.
func (t *Table) Visible(scope ScopeID) []SymbolID {
	var out []SymbolID
	seen := make(map[source.StringID]bool)
	for scope.IsValid() {
		sc := t.Scopes.Get(scope)
		if sc == nil {
			break
		}
		for name, id := range sc.NameIndex {
			if !seen[name] {
				seen[name] = true
				out = append(out, id)
			}
		}
		scope = sc.Parent
	}
	return out
}
