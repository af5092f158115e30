package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive types every program can name.
type Builtins struct {
	Invalid TypeID
	Unit    TypeID
	Bool    TypeID
	Int     TypeID
	Float   TypeID
	String  TypeID
	Null    TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Identical descriptors always map to the same TypeID, so type equality
// is an integer comparison.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
	fns      []FnInfo
	structs  []StructInfo
	unions   []UnionInfo
}

// NewInterner constructs an interner seeded with the built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 64),
	}
	// Slot 0 of each side table is an invalid sentinel.
	in.fns = append(in.fns, FnInfo{})
	in.structs = append(in.structs, StructInfo{})
	in.unions = append(in.unions, UnionInfo{})

	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Unit = in.internRaw(Type{Kind: KindUnit})
	in.builtins.Bool = in.internRaw(Type{Kind: KindBool})
	in.builtins.Int = in.internRaw(Type{Kind: KindInt})
	in.builtins.Float = in.internRaw(Type{Kind: KindFloat})
	in.builtins.String = in.internRaw(Type{Kind: KindString})
	in.builtins.Null = in.internRaw(Type{Kind: KindNull})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is out of range.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Array interns T[] for the given element.
func (in *Interner) Array(elem TypeID) TypeID {
	return in.Intern(MakeArray(elem))
}

// Optional interns T? for the given element. Optionals do not nest: T??
// collapses to T?.
func (in *Interner) Optional(elem TypeID) TypeID {
	if tt, ok := in.Lookup(elem); ok && tt.Kind == KindOptional {
		return elem
	}
	return in.Intern(MakeOptional(elem))
}

// IsInvalid reports whether id is the invalid placeholder (or out of
// range). The placeholder propagates silently so one error does not
// cascade into follow-up diagnostics.
func (in *Interner) IsInvalid(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return !ok || tt.Kind == KindInvalid
}

func cloneTypeArgs(args []TypeID) []TypeID {
	if len(args) == 0 {
		return nil
	}
	out := make([]TypeID, len(args))
	copy(out, args)
	return out
}
