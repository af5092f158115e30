package symbols

import "burn/internal/types"

// installBuiltins seeds the builtin scope with the primitive type names
// and the intrinsic functions every program can call.
func (t *Table) installBuiltins() {
	b := t.Types.Builtins()

	builtinTypes := []struct {
		name string
		typ  types.TypeID
	}{
		{"Int", b.Int},
		{"Float", b.Float},
		{"Bool", b.Bool},
		{"String", b.String},
		{"Unit", b.Unit},
	}
	for _, bt := range builtinTypes {
		t.Declare(t.Builtin, Symbol{
			Name:  t.Strings.Intern(bt.name),
			Kind:  SymbolType,
			Flags: SymbolFlagBuiltin,
			Type:  bt.typ,
		})
	}

	intrinsics := []struct {
		name   string
		params []types.TypeID
		result types.TypeID
	}{
		{"print", []types.TypeID{b.String}, b.Unit},
		{"len", []types.TypeID{b.String}, b.Int},
	}
	for _, fn := range intrinsics {
		t.Declare(t.Builtin, Symbol{
			Name:  t.Strings.Intern(fn.name),
			Kind:  SymbolFunction,
			Flags: SymbolFlagBuiltin,
			Type:  t.Types.Fn(fn.params, fn.result),
		})
	}
}
