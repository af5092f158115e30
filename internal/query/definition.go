package query

import (
	"burn/internal/source"
)

// Definition finds the declaration span of the name at the offset. Names
// that never resolved, builtins without a source declaration, and
// positions not on a name report no definition.
func (s *Snapshot) Definition(off uint32) (source.Span, bool) {
	hit, ok := s.nameAt(off)
	if !ok {
		return source.Span{}, false
	}

	switch hit.kind {
	case hitIdent:
		sym := s.Table.Symbols.Get(s.Table.Refs[hit.expr])
		if sym == nil || sym.Builtin() {
			return source.Span{}, false
		}
		return sym.Span, true
	case hitProperty:
		// Member accesses point at the field or method declaration inside
		// the struct body.
		base := s.Arenas.Expr(hit.expr)
		if base == nil {
			return source.Span{}, false
		}
		baseType, ok := s.ExprTypes[base.Left]
		if !ok {
			return source.Span{}, false
		}
		if info, ok := s.Table.Types.StructInfo(baseType); ok {
			for _, f := range info.Fields {
				if f.Name == hit.name {
					return f.Span, true
				}
			}
			for _, m := range info.Methods {
				if m.Name == hit.name {
					return m.Span, true
				}
			}
		}
	case hitItemName, hitParam, hitField, hitStmtName:
		// The cursor is already on the declaration.
		return hit.span, true
	}
	return source.Span{}, false
}
