package sema

import (
	"testing"

	"burn/internal/ast"
	"burn/internal/diag"
	"burn/internal/lexer"
	"burn/internal/parser"
	"burn/internal/source"
	"burn/internal/symbols"
	"burn/internal/types"
)

type checked struct {
	arenas *ast.Builder
	tab    *symbols.Table
	res    Result
	bag    *diag.Bag
}

func checkSource(t *testing.T, src string) checked {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.brn", []byte(src))
	file := fs.Get(fileID)

	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	strings := source.NewInterner()
	arenas := ast.NewBuilder(ast.DefaultHints(), strings)
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	pr := parser.ParseFile(lx, arenas, parser.Options{Reporter: rep})

	tab := symbols.NewTable(symbols.Hints{}, strings, types.NewInterner())
	symbols.Resolve(arenas, pr.File, tab, rep)
	res := Check(arenas, pr.File, Options{Reporter: rep, Table: tab})
	return checked{arenas: arenas, tab: tab, res: res, bag: bag}
}

func (c checked) codes() []diag.Code {
	var out []diag.Code
	for _, d := range c.bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestCheckCleanFunction(t *testing.T) {
	c := checkSource(t, "fn add(a: Int, b: Int) -> Int { return a + b }")
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", c.bag.Items())
	}
}

func TestCheckUnresolvedDoesNotCascade(t *testing.T) {
	c := checkSource(t, "fn f() { let x = y + 1\nlet z = x * 2 }")
	codes := c.codes()
	if len(codes) != 1 || codes[0] != diag.BindUnresolvedName {
		t.Fatalf("codes = %v, want exactly the unresolved-name error", codes)
	}
}

func TestCheckInference(t *testing.T) {
	c := checkSource(t, `fn f() {
	let i = 1
	let fl = 1.5
	let s = "hi"
	let b = true
	let a = [1, 2, 3]
}`)
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", c.bag.Items())
	}

	b := c.tab.Types.Builtins()
	wants := map[string]types.TypeID{
		"i":  b.Int,
		"fl": b.Float,
		"s":  b.String,
		"b":  b.Bool,
		"a":  c.tab.Types.Array(b.Int),
	}
	for stmtID, symID := range c.tab.StmtSyms {
		sym := c.tab.Symbols.Get(symID)
		name := c.tab.Strings.MustLookup(sym.Name)
		want, ok := wants[name]
		if !ok {
			continue
		}
		if sym.Type != want {
			t.Errorf("%s inferred as %s, want %s", name,
				c.tab.Types.Format(sym.Type, c.tab.Strings),
				c.tab.Types.Format(want, c.tab.Strings))
		}
		_ = stmtID
	}
}

func TestCheckAnnotatedMismatch(t *testing.T) {
	c := checkSource(t, `fn f() { let x: Int = "hello" }`)
	codes := c.codes()
	if len(codes) != 1 || codes[0] != diag.TypeMismatch {
		t.Fatalf("codes = %v, want one type mismatch", codes)
	}
}

func TestCheckCallDiagnostics(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want diag.Code
	}{
		{"arity", `fn g(a: Int) { }
fn f() { g(1, 2) }`, diag.TypeArity},
		{"argument", `fn g(a: Int) { }
fn f() { g("no") }`, diag.TypeArgMismatch},
		{"not callable", `fn f() { let x = 1
x() }`, diag.TypeNotCallable},
		{"builtin argument", `fn f() { print(42) }`, diag.TypeArgMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := checkSource(t, tc.src)
			codes := c.codes()
			if len(codes) != 1 || codes[0] != tc.want {
				t.Fatalf("codes = %v, want [%v]", codes, tc.want)
			}
		})
	}
}

func TestCheckConditionNotBool(t *testing.T) {
	c := checkSource(t, "fn f() { if 1 { } }")
	codes := c.codes()
	if len(codes) != 1 || codes[0] != diag.TypeCondNotBool {
		t.Fatalf("codes = %v, want condition-not-bool", codes)
	}
}

func TestCheckAssignImmutable(t *testing.T) {
	c := checkSource(t, "fn f() { let x = 1\nx = 2 }")
	codes := c.codes()
	if len(codes) != 1 || codes[0] != diag.TypeAssignImmutable {
		t.Fatalf("codes = %v, want assign-immutable", codes)
	}

	c = checkSource(t, "fn f() { var x = 1\nx = 2 }")
	if c.bag.Len() != 0 {
		t.Fatalf("var bindings are mutable: %v", c.bag.Items())
	}
}

func TestCheckOptionalAndNull(t *testing.T) {
	c := checkSource(t, `fn f() {
	var x: Int? = null
	x = 5
}`)
	if c.bag.Len() != 0 {
		t.Fatalf("optional must accept null and its element: %v", c.bag.Items())
	}

	c = checkSource(t, "fn f() { let x: Int = null }")
	codes := c.codes()
	if len(codes) != 1 || codes[0] != diag.TypeMismatch {
		t.Fatalf("codes = %v, want mismatch for null into Int", codes)
	}
}

func TestCheckUnionAssignability(t *testing.T) {
	c := checkSource(t, `fn f() {
	var x: Int | String = 1
	x = "also fine"
}`)
	if c.bag.Len() != 0 {
		t.Fatalf("union must accept its members: %v", c.bag.Items())
	}

	c = checkSource(t, "fn f() { let x: Int | String = true }")
	codes := c.codes()
	if len(codes) != 1 || codes[0] != diag.TypeMismatch {
		t.Fatalf("codes = %v, want mismatch for Bool into union", codes)
	}
}

func TestCheckOperators(t *testing.T) {
	c := checkSource(t, `fn f() {
	let a = 1 + 2
	let b = 1.5 * 2.0
	let s = "a" + "b"
	let cmp = 1 < 2
	let eq = "x" == "y"
	let l = true && false
	let n = -5
	let nb = !true
}`)
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", c.bag.Items())
	}

	c = checkSource(t, `fn f() { let x = 1 + "no" }`)
	codes := c.codes()
	if len(codes) != 1 || codes[0] != diag.TypeBadOperand {
		t.Fatalf("codes = %v, want bad operand", codes)
	}
}

func TestCheckIndexing(t *testing.T) {
	c := checkSource(t, `fn f(a: Int[]) -> Int { return a[0] }`)
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", c.bag.Items())
	}

	c = checkSource(t, "fn f() { let x = 1\nlet y = x[0] }")
	codes := c.codes()
	if len(codes) != 1 || codes[0] != diag.TypeNotIndexable {
		t.Fatalf("codes = %v, want not-indexable", codes)
	}

	c = checkSource(t, `fn f(a: Int[]) { let x = a["k"] }`)
	codes = c.codes()
	if len(codes) != 1 || codes[0] != diag.TypeMismatch {
		t.Fatalf("codes = %v, want index-type mismatch", codes)
	}
}

func TestCheckForIterable(t *testing.T) {
	c := checkSource(t, `fn f(xs: Int[]) { for x in xs { let y = x + 1 } }`)
	if c.bag.Len() != 0 {
		t.Fatalf("loop variable must get the element type: %v", c.bag.Items())
	}

	c = checkSource(t, "fn f() { for x in 5 { } }")
	codes := c.codes()
	if len(codes) != 1 || codes[0] != diag.TypeNotIterable {
		t.Fatalf("codes = %v, want not-iterable", codes)
	}
}

func TestCheckStructMembers(t *testing.T) {
	src := `struct Point {
	x: Float,
	y: Float

	fn length() -> Float { return 0.0 }
}
fn f(p: Point) -> Float {
	let a = p.x
	let b = p.length()
	return a + b
}`
	c := checkSource(t, src)
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", c.bag.Items())
	}

	c = checkSource(t, `struct Point { x: Float }
fn f(p: Point) { let z = p.z }`)
	codes := c.codes()
	if len(codes) != 1 || codes[0] != diag.TypeBadOperand {
		t.Fatalf("codes = %v, want unknown-member", codes)
	}
}

func TestCheckReturnMismatch(t *testing.T) {
	c := checkSource(t, `fn f() -> Int { return "no" }`)
	codes := c.codes()
	if len(codes) != 1 || codes[0] != diag.TypeMismatch {
		t.Fatalf("codes = %v, want return mismatch", codes)
	}

	c = checkSource(t, "fn f() -> Int { return }")
	codes = c.codes()
	if len(codes) != 1 || codes[0] != diag.TypeMismatch {
		t.Fatalf("codes = %v, want bare-return mismatch", codes)
	}
}

func TestCheckBuiltinMembers(t *testing.T) {
	c := checkSource(t, `fn f(s: String, xs: Int[]) -> Int { return s.length + xs.length }`)
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", c.bag.Items())
	}

	c = checkSource(t, `fn f(s: String) -> String { return s.substring(0, 2) + s.toUpperCase() + s.toLowerCase() }`)
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", c.bag.Items())
	}

	c = checkSource(t, "fn f(xs: Int[]) -> Int { xs.push(4)\nreturn xs.pop() }")
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", c.bag.Items())
	}

	c = checkSource(t, `fn f(xs: String[]) -> String { return xs.join(", ") }`)
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", c.bag.Items())
	}
}

func TestCheckBuiltinMemberMisuse(t *testing.T) {
	c := checkSource(t, `fn f(xs: Int[]) { xs.push("no") }`)
	codes := c.codes()
	if len(codes) != 1 || codes[0] != diag.TypeArgMismatch {
		t.Fatalf("codes = %v, want push argument mismatch", codes)
	}

	c = checkSource(t, `fn f(s: String) -> Int { return s.size }`)
	codes = c.codes()
	if len(codes) != 1 || codes[0] != diag.TypeBadOperand {
		t.Fatalf("codes = %v, want unknown-member", codes)
	}

	c = checkSource(t, "fn f(n: Int) -> Int { return n.length }")
	codes = c.codes()
	if len(codes) != 1 || codes[0] != diag.TypeBadOperand {
		t.Fatalf("codes = %v, want no-members-on-Int", codes)
	}
}
