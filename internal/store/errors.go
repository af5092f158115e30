package store

import "errors"

// Contract violations by the caller are explicit error results, kept
// apart from source diagnostics which are data, not failures.
var (
	// ErrNotOpen is returned for any operation on a path that was never
	// opened or was already closed.
	ErrNotOpen = errors.New("document is not open")

	// ErrOutOfBounds is returned when an edit range or query position
	// lies outside the document, or when edit ranges overlap.
	ErrOutOfBounds = errors.New("position outside document bounds")

	// ErrInternal wraps a recovered panic from an analysis pass. The
	// document keeps its previous version; other documents are unaffected.
	ErrInternal = errors.New("internal analysis failure")
)
