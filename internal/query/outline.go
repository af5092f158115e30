package query

import (
	"sort"

	"burn/internal/ast"
	"burn/internal/source"
)

// OutlineKind classifies one outline entry.
type OutlineKind uint8

const (
	OutlineFunction OutlineKind = iota
	OutlineVariable
	OutlineStruct
	OutlineField
	OutlineMethod
	OutlineImport
)

func (k OutlineKind) String() string {
	switch k {
	case OutlineFunction:
		return "function"
	case OutlineVariable:
		return "variable"
	case OutlineStruct:
		return "struct"
	case OutlineField:
		return "field"
	case OutlineMethod:
		return "method"
	case OutlineImport:
		return "import"
	default:
		return "unknown"
	}
}

// OutlineItem is one document symbol. Children mirror source containment:
// fields and methods nest under their struct, in source order.
type OutlineItem struct {
	Name     string
	Kind     OutlineKind
	Span     source.Span // the whole declaration
	NameSpan source.Span // just the name
	Children []OutlineItem
}

// Outline lists the declarations of the document in source order. Items
// recovered from malformed input appear as long as their name was parsed;
// pure error regions are skipped.
func (s *Snapshot) Outline() []OutlineItem {
	var out []OutlineItem
	for _, id := range s.items() {
		if entry, ok := s.outlineItem(id, false); ok {
			out = append(out, entry)
		}
	}
	return out
}

func (s *Snapshot) outlineItem(id ast.ItemID, method bool) (OutlineItem, bool) {
	it := s.Arenas.Item(id)
	if it == nil || it.Name == source.NoStringID {
		return OutlineItem{}, false
	}
	entry := OutlineItem{
		Name:     s.Table.Strings.MustLookup(it.Name),
		Span:     it.Span,
		NameSpan: it.NameSpan,
	}
	switch it.Kind {
	case ast.ItemFn:
		entry.Kind = OutlineFunction
		if method {
			entry.Kind = OutlineMethod
		}
	case ast.ItemVar:
		entry.Kind = OutlineVariable
	case ast.ItemImport:
		entry.Kind = OutlineImport
	case ast.ItemStruct:
		entry.Kind = OutlineStruct
		for _, f := range it.Fields {
			if f.Name == source.NoStringID {
				continue
			}
			entry.Children = append(entry.Children, OutlineItem{
				Name:     s.Table.Strings.MustLookup(f.Name),
				Kind:     OutlineField,
				Span:     f.Span,
				NameSpan: f.NameSpan,
			})
		}
		for _, m := range it.Methods {
			if child, ok := s.outlineItem(m, true); ok {
				entry.Children = append(entry.Children, child)
			}
		}
		// The arena stores fields and methods apart; the outline shows
		// them as written.
		sort.SliceStable(entry.Children, func(i, j int) bool {
			return entry.Children[i].Span.Start < entry.Children[j].Span.Start
		})
	default:
		return OutlineItem{}, false
	}
	return entry, true
}
