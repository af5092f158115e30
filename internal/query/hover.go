package query

import (
	"burn/internal/source"
	"burn/internal/symbols"
	"burn/internal/types"
)

// Hover describes the name under the cursor.
type Hover struct {
	Text string      // "name: Type" formatted for display
	Span source.Span // the hovered name
}

// Hover resolves the name at the offset and formats its declared or
// inferred type. Positions not on a name, or names that never resolved,
// produce no hover.
func (s *Snapshot) Hover(off uint32) (Hover, bool) {
	hit, ok := s.nameAt(off)
	if !ok {
		return Hover{}, false
	}

	name := s.Table.Strings.MustLookup(hit.name)
	typ, ok := s.typeOfHit(hit)
	if !ok {
		return Hover{}, false
	}
	return Hover{
		Text: name + ": " + s.formatType(typ),
		Span: hit.span,
	}, true
}

// typeOfHit finds the semantic type behind a named node.
func (s *Snapshot) typeOfHit(hit nameHit) (types.TypeID, bool) {
	switch hit.kind {
	case hitIdent:
		if sym := s.Table.Symbols.Get(s.Table.Refs[hit.expr]); sym != nil {
			return sym.Type, true
		}
	case hitProperty:
		// The checker typed the whole access; that type is the member's.
		if t, ok := s.ExprTypes[hit.expr]; ok && !s.Table.Types.IsInvalid(t) {
			return t, true
		}
	case hitItemName:
		if sym := s.Table.Symbols.Get(s.Table.ItemSyms[hit.item]); sym != nil {
			return sym.Type, true
		}
	case hitStmtName:
		if sym := s.Table.Symbols.Get(s.Table.StmtSyms[hit.stmt]); sym != nil {
			return sym.Type, true
		}
	case hitParam:
		if sym := s.scopedSymbol(hit); sym != nil {
			return sym.Type, true
		}
	case hitField:
		if owner := s.Table.Symbols.Get(s.Table.ItemSyms[hit.item]); owner != nil {
			if t, _, ok := s.Table.Types.StructMember(owner.Type, hit.name); ok {
				return t, true
			}
		}
	}
	return types.NoTypeID, false
}

// scopedSymbol resolves a declaring name through the scope containing it.
// Parameters have no direct declaration back-pointer, so they are found
// the same way a reference to them would be.
func (s *Snapshot) scopedSymbol(hit nameHit) *symbols.Symbol {
	scope := s.Table.ScopeAt(s.Module, hit.span.Start)
	id := s.Table.Resolve(scope, hit.name)
	return s.Table.Symbols.Get(id)
}
