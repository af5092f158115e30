package sema

import "burn/internal/types"

// Member names one member available on values of a builtin type. Fn marks
// members that must be called.
type Member struct {
	Name string
	Fn   bool
}

// BuiltinMembers lists the member surface of a builtin type, sorted by
// name. String and array values carry a small fixed set; every other base
// has none. The list is a pure read of the interner, so editor queries may
// call it against a published snapshot.
func BuiltinMembers(tin *types.Interner, base types.TypeID) []Member {
	if base == tin.Builtins().String {
		return []Member{
			{Name: "length"},
			{Name: "substring", Fn: true},
			{Name: "toLowerCase", Fn: true},
			{Name: "toUpperCase", Fn: true},
		}
	}
	if tt, ok := tin.Lookup(base); ok && tt.Kind == types.KindArray {
		return []Member{
			{Name: "join", Fn: true},
			{Name: "length"},
			{Name: "pop", Fn: true},
			{Name: "push", Fn: true},
		}
	}
	return nil
}

// builtinMemberType types one builtin member access. Function members are
// interned on first use, so only the checker calls this.
func (c *checker) builtinMemberType(base types.TypeID, name string) (types.TypeID, bool) {
	b := c.builtins
	if base == b.String {
		switch name {
		case "length":
			return b.Int, true
		case "substring":
			return c.tin.Fn([]types.TypeID{b.Int, b.Int}, b.String), true
		case "toLowerCase", "toUpperCase":
			return c.tin.Fn(nil, b.String), true
		}
		return types.NoTypeID, false
	}
	if tt, ok := c.tin.Lookup(base); ok && tt.Kind == types.KindArray {
		switch name {
		case "length":
			return b.Int, true
		case "push":
			return c.tin.Fn([]types.TypeID{tt.Elem}, b.Int), true
		case "pop":
			return c.tin.Fn(nil, tt.Elem), true
		case "join":
			return c.tin.Fn([]types.TypeID{b.String}, b.String), true
		}
	}
	return types.NoTypeID, false
}
