package store

import (
	"burn/internal/diag"
	"burn/internal/lexer"
	"burn/internal/parser"
	"burn/internal/source"
)

// tryIncremental reparses only the items touched by the edit and reuses
// the rest of the previous tree. It takes the cheap path only when it can
// prove the result matches a full reparse:
//
//   - the previous version had no lexer or parser diagnostics, so item
//     boundaries in the old tree are trustworthy, and
//   - relexing the edited region produces no diagnostics either, so the
//     new items cannot interact with their neighbors.
//
// Anything else returns false and the caller reparses from scratch.
func (d *document) tryIncremental(prev *Snapshot, newFile *source.File, edit Edit, version uint64, maxDiags int) (*Snapshot, bool) {
	if prev.syntaxErrs != 0 {
		return nil, false
	}

	arenas := prev.Model.Arenas
	delta := edit.delta()

	// Items strictly before the edit keep their spans, items strictly
	// after keep their shape and shift. An edit touching an item boundary
	// counts as affecting both sides.
	var prefix, suffix []parser.ItemRecord
	regionStart := uint32(0)
	regionEndOld := prev.Size()
	for _, rec := range prev.records {
		sp := arenas.Item(rec.Item).Span
		switch {
		case sp.End < edit.Start:
			prefix = append(prefix, rec)
			regionStart = sp.End
		case sp.Start > edit.End:
			if len(suffix) == 0 {
				regionEndOld = sp.Start
			}
			suffix = append(suffix, rec)
		}
	}
	regionEnd := uint32(int64(regionEndOld) + delta)
	if regionEnd < regionStart || regionEnd > newFile.Size() {
		return nil, false
	}

	// Reparse the region into a clone so a bailout, or a concurrent query
	// against the published snapshot, never sees shifted spans.
	clone := arenas.Clone()
	lexBag := diag.NewBag(maxDiags)
	parseBag := diag.NewBag(maxDiags)
	lx := lexer.NewRange(newFile, regionStart, regionEnd, lexer.Options{Reporter: diag.BagReporter{Bag: lexBag}})
	fresh := parser.ParseItems(lx, clone, parser.Options{Reporter: diag.BagReporter{Bag: parseBag}})
	if lexBag.Len() != 0 || parseBag.Len() != 0 {
		return nil, false
	}

	for _, rec := range suffix {
		clone.ShiftSpans(rec.From, rec.To, delta)
	}

	records := make([]parser.ItemRecord, 0, len(prefix)+len(fresh)+len(suffix))
	records = append(records, prefix...)
	records = append(records, fresh...)
	records = append(records, suffix...)

	root := clone.NewFile(source.Span{File: newFile.ID, End: newFile.Size()})
	for _, rec := range records {
		clone.PushItem(root, rec.Item)
	}

	return d.finish(newFile, version, maxDiags, clone, root, records, lexBag, parseBag), true
}
