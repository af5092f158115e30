// Package query answers editor requests (completion, hover, definition,
// outline) against one immutable analysis snapshot. Every function here is
// a pure read: snapshots are never mutated after publication, so queries
// run concurrently with edits without locks.
package query

import (
	"burn/internal/ast"
	"burn/internal/source"
	"burn/internal/symbols"
	"burn/internal/types"
)

// Snapshot is the semantic model of one document version: the syntax tree,
// the symbol table derived from exactly that tree, the inferred expression
// types, and the grammar contexts recorded during parsing.
type Snapshot struct {
	File      *source.File
	Arenas    *ast.Builder
	Root      ast.FileID
	Table     *symbols.Table
	Module    symbols.ScopeID
	ExprTypes map[ast.ExprID]types.TypeID
	Contexts  []ast.ContextSpan
}

func (s *Snapshot) items() []ast.ItemID {
	f := s.Arenas.File(s.Root)
	if f == nil {
		return nil
	}
	return f.Items
}

func (s *Snapshot) formatType(id types.TypeID) string {
	return s.Table.Types.Format(id, s.Table.Strings)
}
