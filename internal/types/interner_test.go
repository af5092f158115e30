package types

import (
	"testing"

	"burn/internal/source"
)

func TestBuiltinsAreStable(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	if b.Invalid != NoTypeID {
		t.Fatalf("invalid = %d, want the zero TypeID", b.Invalid)
	}
	if b.Int == b.Float || b.Int == b.Bool {
		t.Fatal("primitive TypeIDs must be distinct")
	}
	if tt := in.MustLookup(b.String); tt.Kind != KindString {
		t.Fatalf("string kind = %v", tt.Kind)
	}
}

func TestStructuralDedup(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	arr1 := in.Array(b.Int)
	arr2 := in.Array(b.Int)
	if arr1 != arr2 {
		t.Errorf("Int[] interned twice: %d vs %d", arr1, arr2)
	}
	if in.Array(b.Float) == arr1 {
		t.Error("Float[] must differ from Int[]")
	}

	fn1 := in.Fn([]TypeID{b.Int, b.String}, b.Bool)
	fn2 := in.Fn([]TypeID{b.Int, b.String}, b.Bool)
	if fn1 != fn2 {
		t.Errorf("fn type interned twice: %d vs %d", fn1, fn2)
	}
	if in.Fn([]TypeID{b.Int}, b.Bool) == fn1 {
		t.Error("different arity must not share a TypeID")
	}
}

func TestOptionalCollapses(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	opt := in.Optional(b.Int)
	if in.Optional(opt) != opt {
		t.Error("T?? must collapse to T?")
	}
}

func TestUnionNormalization(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	u1 := in.Union([]TypeID{b.Int, b.String})
	u2 := in.Union([]TypeID{b.String, b.Int})
	if u1 != u2 {
		t.Errorf("member order must not matter: %d vs %d", u1, u2)
	}
	if in.Union([]TypeID{b.Int, b.Int}) != b.Int {
		t.Error("single-member union must unwrap")
	}
	if !in.UnionHas(u1, b.String) {
		t.Error("union should contain String")
	}
	if in.UnionHas(u1, b.Float) {
		t.Error("union should not contain Float")
	}
}

func TestStructMembers(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	names := source.NewInterner()

	point := in.RegisterStruct(names.Intern("Point"), source.Span{})
	in.SetStructFields(point, []StructField{
		{Name: names.Intern("x"), Type: b.Float},
		{Name: names.Intern("y"), Type: b.Float},
	})
	length := in.Fn(nil, b.Float)
	in.SetStructMethods(point, []StructMethod{
		{Name: names.Intern("length"), Type: length},
	})

	ft, isMethod, ok := in.StructMember(point, names.Intern("x"))
	if !ok || isMethod || ft != b.Float {
		t.Fatalf("field x = (%d, method=%v, ok=%v)", ft, isMethod, ok)
	}
	mt, isMethod, ok := in.StructMember(point, names.Intern("length"))
	if !ok || !isMethod || mt != length {
		t.Fatalf("method length = (%d, method=%v, ok=%v)", mt, isMethod, ok)
	}
	if _, _, ok := in.StructMember(point, names.Intern("z")); ok {
		t.Error("unknown member must not resolve")
	}

	// Nominal: a second Point declaration is a different type.
	if in.RegisterStruct(names.Intern("Point"), source.Span{}) == point {
		t.Error("struct declarations must be nominal")
	}
}

func TestFormat(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	names := source.NewInterner()

	cases := []struct {
		id   TypeID
		want string
	}{
		{b.Int, "Int"},
		{in.Array(b.Int), "Int[]"},
		{in.Optional(in.Array(b.String)), "String[]?"},
		{in.Fn([]TypeID{b.Int, b.String}, b.Bool), "fn(Int, String) -> Bool"},
		{in.Array(in.Union([]TypeID{b.Int, b.String})), "(Int | String)[]"},
		{NoTypeID, "invalid"},
	}
	for _, tc := range cases {
		if got := in.Format(tc.id, names); got != tc.want {
			t.Errorf("Format(%d) = %q, want %q", tc.id, got, tc.want)
		}
	}

	point := in.RegisterStruct(names.Intern("Point"), source.Span{})
	if got := in.Format(point, names); got != "Point" {
		t.Errorf("struct format = %q", got)
	}
}
