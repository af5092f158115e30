package store

import (
	"burn/internal/diag"
	"burn/internal/parser"
	"burn/internal/query"
)

// Snapshot is one published document version. It is immutable after
// publication: edits build a new snapshot and swap the pointer, so a query
// that started against version N keeps reading version N undisturbed.
type Snapshot struct {
	Version uint64
	Model   *query.Snapshot
	Diags   []diag.Diagnostic

	// records couple each top-level item with the arena ranges its
	// subtree occupies, in source order. ApplyEdit partitions them around
	// the edited region.
	records []parser.ItemRecord

	// count of lexer and parser diagnostics; incremental reparse only
	// runs from a syntactically clean base.
	syntaxErrs int
}

// Text returns the document content of this version.
func (s *Snapshot) Text() []byte {
	return s.Model.File.Content
}

// Size returns the content length in bytes.
func (s *Snapshot) Size() uint32 {
	return s.Model.File.Size()
}
