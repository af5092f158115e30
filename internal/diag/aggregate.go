package diag

// Aggregate merges per-stage bags into one ordered, deduplicated list for a
// single document version. Order: primary span start, then severity (errors
// before warnings before info), then stage (lexer, parser, binder, checker).
// Diagnostics with identical span and message collapse to one.
func Aggregate(bags ...*Bag) []Diagnostic {
	total := 0
	for _, b := range bags {
		if b != nil {
			total += b.Len()
		}
	}
	merged := NewBag(total)
	for _, b := range bags {
		merged.Merge(b)
	}
	merged.Sort()
	merged.Dedup()

	// Copy out so callers cannot alias the working buffer.
	out := make([]Diagnostic, merged.Len())
	copy(out, merged.Items())
	return out
}
