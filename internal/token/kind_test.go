package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		in   string
		kind Kind
		ok   bool
	}{
		{"fn", KwFn, true},
		{"let", KwLet, true},
		{"var", KwVar, true},
		{"const", KwConst, true},
		{"struct", KwStruct, true},
		{"null", KwNull, true},
		{"function", Ident, false},
		{"Fn", Ident, false},
		{"", Ident, false},
	}
	for _, c := range cases {
		kind, ok := LookupKeyword(c.in)
		if kind != c.kind || ok != c.ok {
			t.Errorf("LookupKeyword(%q) = %v, %v; want %v, %v", c.in, kind, ok, c.kind, c.ok)
		}
	}
}

func TestKindStringCoversAll(t *testing.T) {
	for k := Kind(0); k < kindCount; k++ {
		if k.String() == "Kind(?)" {
			t.Errorf("kind %d has no name", k)
		}
	}
}

func TestTokenClassification(t *testing.T) {
	if !(Token{Kind: IntLit}).IsLiteral() {
		t.Error("IntLit must be a literal")
	}
	if !(Token{Kind: KwNull}).IsLiteral() {
		t.Error("null must count as a literal")
	}
	if !(Token{Kind: KwFn}).IsKeyword() {
		t.Error("fn must be a keyword")
	}
	if (Token{Kind: Ident}).IsKeyword() {
		t.Error("Ident must not be a keyword")
	}
}
