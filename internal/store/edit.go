package store

import "fmt"

// Edit replaces the byte range [Start, End) of the current text with Text.
// Offsets address the document content as of the version the edit targets.
type Edit struct {
	Start uint32
	End   uint32
	Text  []byte
}

func (e Edit) delta() int64 {
	return int64(len(e.Text)) - int64(e.End-e.Start)
}

// validateEdits checks that every range is well-formed, in bounds and that
// the sequence is ascending and non-overlapping.
func validateEdits(edits []Edit, size uint32) error {
	for i, e := range edits {
		if e.Start > e.End {
			return fmt.Errorf("%w: edit %d has start %d after end %d", ErrOutOfBounds, i, e.Start, e.End)
		}
		if e.End > size {
			return fmt.Errorf("%w: edit %d ends at %d, document has %d bytes", ErrOutOfBounds, i, e.End, size)
		}
		if i > 0 && e.Start < edits[i-1].End {
			return fmt.Errorf("%w: edit %d overlaps the previous range", ErrOutOfBounds, i)
		}
	}
	return nil
}

// applyEdits splices all edits into a fresh buffer. Ranges are ascending
// and validated, so a single left-to-right pass suffices.
func applyEdits(text []byte, edits []Edit) []byte {
	grown := len(text)
	for _, e := range edits {
		grown += int(e.delta())
	}
	out := make([]byte, 0, max(grown, 0))

	cursor := uint32(0)
	for _, e := range edits {
		out = append(out, text[cursor:e.Start]...)
		out = append(out, e.Text...)
		cursor = e.End
	}
	out = append(out, text[cursor:]...)
	return out
}
