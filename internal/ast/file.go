package ast

import "burn/internal/source"

// File is the root node of one parsed document. Its span always covers the
// whole input, and Items lists top-level declarations in source order.
type File struct {
	Span  source.Span
	Items []ItemID
}
