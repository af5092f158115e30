package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// UnionInfo stores the member set of a structural union type.
type UnionInfo struct {
	Members []TypeID
}

// Union creates or finds a structural union. Members are normalised:
// order is canonicalised, duplicates collapse, and a single surviving
// member is returned as-is without a union wrapper.
func (in *Interner) Union(members []TypeID) TypeID {
	norm := normalizeUnionMembers(members)
	switch len(norm) {
	case 0:
		return in.builtins.Invalid
	case 1:
		return norm[0]
	}

	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindUnion {
			continue
		}
		if slices.Equal(in.unions[tt.Payload].Members, norm) {
			return id
		}
	}

	slot := in.appendUnionInfo(UnionInfo{Members: norm})
	return in.internRaw(Type{Kind: KindUnion, Payload: slot})
}

// UnionInfo returns metadata for the provided union TypeID.
func (in *Interner) UnionInfo(id TypeID) (*UnionInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindUnion {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.unions) {
		return nil, false
	}
	return &in.unions[tt.Payload], true
}

// UnionHas reports whether member is one of the union's alternatives.
func (in *Interner) UnionHas(union, member TypeID) bool {
	info, ok := in.UnionInfo(union)
	if !ok {
		return false
	}
	return slices.Contains(info.Members, member)
}

func normalizeUnionMembers(members []TypeID) []TypeID {
	norm := make([]TypeID, 0, len(members))
	for _, m := range members {
		if m != NoTypeID {
			norm = append(norm, m)
		}
	}
	slices.Sort(norm)
	return slices.Compact(norm)
}

func (in *Interner) appendUnionInfo(info UnionInfo) uint32 {
	in.unions = append(in.unions, info)
	slot, err := safecast.Conv[uint32](len(in.unions) - 1)
	if err != nil {
		panic(fmt.Errorf("union info overflow: %w", err))
	}
	return slot
}
