package parser

import (
	"testing"

	"burn/internal/ast"
	"burn/internal/diag"
	"burn/internal/lexer"
	"burn/internal/source"
)

type parsed struct {
	arenas *ast.Builder
	result Result
	bag    *diag.Bag
	file   *source.File
}

func parseSource(t *testing.T, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.brn", []byte(src))
	file := fs.Get(id)

	bag := diag.NewBag(64)
	strings := source.NewInterner()
	arenas := ast.NewBuilder(ast.DefaultHints(), strings)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	res := ParseFile(lx, arenas, Options{Reporter: diag.BagReporter{Bag: bag}})
	return parsed{arenas: arenas, result: res, bag: bag, file: file}
}

func (p parsed) items(t *testing.T) []*ast.Item {
	t.Helper()
	f := p.arenas.File(p.result.File)
	out := make([]*ast.Item, 0, len(f.Items))
	for _, id := range f.Items {
		out = append(out, p.arenas.Item(id))
	}
	return out
}

func TestParseRootSpanCoversWholeInput(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"// only a comment\n",
		"  fn a() { }",
		"fn a() { }\n\n",
		"@@@",
	}
	for _, src := range inputs {
		p := parseSource(t, src)
		root := p.arenas.File(p.result.File)
		if root.Span.Start != 0 || root.Span.End != uint32(len(src)) {
			t.Errorf("%q: root span [%d,%d), want [0,%d)",
				src, root.Span.Start, root.Span.End, len(src))
		}
	}
}

func TestParseFnItem(t *testing.T) {
	p := parseSource(t, "fn add(a: Int, b: Int) -> Int { return a + b }")
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.bag.Items())
	}

	items := p.items(t)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	fn := items[0]
	if fn.Kind != ast.ItemFn {
		t.Fatalf("kind = %v, want fn", fn.Kind)
	}
	if got := p.arenas.Lookup(fn.Name); got != "add" {
		t.Errorf("name = %q, want add", got)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("params = %d, want 2", len(fn.Params))
	}
	if got := p.arenas.Lookup(fn.Params[1].Name); got != "b" {
		t.Errorf("param name = %q, want b", got)
	}
	if !fn.Result.IsValid() {
		t.Error("missing result type")
	}
	if !fn.Body.IsValid() {
		t.Error("missing body")
	}
}

func TestParseTruncatedFnOneError(t *testing.T) {
	p := parseSource(t, "fn add(a: Int")
	if got := p.bag.Len(); got != 1 {
		t.Fatalf("diagnostics = %d, want exactly 1: %v", got, p.bag.Items())
	}
	d := p.bag.Items()[0]
	if d.Code != diag.SynUnclosedParen {
		t.Errorf("code = %v, want unclosed paren", d.Code)
	}

	items := p.items(t)
	if len(items) != 1 || items[0].Kind != ast.ItemFn {
		t.Fatalf("expected one fn item, got %v", items)
	}
	if len(items[0].Params) != 1 {
		t.Errorf("params = %d, want 1 recovered param", len(items[0].Params))
	}
}

func TestParsePrecedence(t *testing.T) {
	p := parseSource(t, "let x = 1 + 2 * 3")
	items := p.items(t)
	if len(items) != 1 {
		t.Fatalf("items = %d", len(items))
	}

	root := p.arenas.Expr(items[0].Init)
	if root.Kind != ast.ExprBinary || root.Op.String() != "+" {
		t.Fatalf("root = %v %v, want binary +", root.Kind, root.Op)
	}
	right := p.arenas.Expr(root.Right)
	if right.Kind != ast.ExprBinary || right.Op.String() != "*" {
		t.Fatalf("right = %v %v, want binary *", right.Kind, right.Op)
	}
}

func TestParseAssignRightAssociative(t *testing.T) {
	p := parseSource(t, "fn f() { a = b = c }")
	body := p.arenas.Stmt(p.items(t)[0].Body)
	stmt := p.arenas.Stmt(body.Stmts[0])
	root := p.arenas.Expr(stmt.Expr)
	if root.Kind != ast.ExprAssign {
		t.Fatalf("root = %v, want assign", root.Kind)
	}
	right := p.arenas.Expr(root.Right)
	if right.Kind != ast.ExprAssign {
		t.Fatalf("right = %v, want nested assign", right.Kind)
	}
}

func TestParsePostfixChain(t *testing.T) {
	p := parseSource(t, "let x = obj.field[0].method(1, 2)")
	root := p.arenas.Expr(p.items(t)[0].Init)
	if root.Kind != ast.ExprCall {
		t.Fatalf("root = %v, want call", root.Kind)
	}
	if len(root.Args) != 2 {
		t.Errorf("args = %d, want 2", len(root.Args))
	}
	callee := p.arenas.Expr(root.Left)
	if callee.Kind != ast.ExprProperty || p.arenas.Lookup(callee.Name) != "method" {
		t.Fatalf("callee = %v, want property method", callee.Kind)
	}
	idx := p.arenas.Expr(callee.Left)
	if idx.Kind != ast.ExprIndex {
		t.Fatalf("callee base = %v, want index", idx.Kind)
	}
}

func TestParseStructWithMethods(t *testing.T) {
	src := `struct Point {
	x: Float,
	y: Float

	fn length() -> Float { return 0.0 }
}`
	p := parseSource(t, src)
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.bag.Items())
	}
	st := p.items(t)[0]
	if st.Kind != ast.ItemStruct {
		t.Fatalf("kind = %v, want struct", st.Kind)
	}
	if len(st.Fields) != 2 {
		t.Errorf("fields = %d, want 2", len(st.Fields))
	}
	if len(st.Methods) != 1 {
		t.Fatalf("methods = %d, want 1", len(st.Methods))
	}
	m := p.arenas.Item(st.Methods[0])
	if got := p.arenas.Lookup(m.Name); got != "length" {
		t.Errorf("method name = %q", got)
	}
}

func TestParseErrorItemRecovery(t *testing.T) {
	p := parseSource(t, "@@@ ;\nfn ok() { }")
	items := p.items(t)
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Kind != ast.ItemError {
		t.Errorf("first item = %v, want error", items[0].Kind)
	}
	if items[1].Kind != ast.ItemFn {
		t.Errorf("second item = %v, want fn", items[1].Kind)
	}
	if !p.bag.HasErrors() {
		t.Error("expected at least one diagnostic")
	}
}

func TestParseBinaryGarbageIsTotal(t *testing.T) {
	p := parseSource(t, "\x00\x01\xff{]]}((\x7f")
	f := p.arenas.File(p.result.File)
	if f == nil {
		t.Fatal("no file node")
	}
	for _, id := range f.Items {
		if p.arenas.Item(id) == nil {
			t.Fatal("dangling item id")
		}
	}
}

func TestParseTypeSyntax(t *testing.T) {
	p := parseSource(t, "let a: Int[]?\nlet b: fn(Int, String) -> Bool\nlet c: Int | String")
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.bag.Items())
	}
	items := p.items(t)
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}

	a := p.arenas.Type(items[0].Type)
	if a.Kind != ast.TypeSynOptional {
		t.Fatalf("a = %v, want optional", a.Kind)
	}
	if elem := p.arenas.Type(a.Elem); elem.Kind != ast.TypeSynArray {
		t.Fatalf("a elem = %v, want array", elem.Kind)
	}

	b := p.arenas.Type(items[1].Type)
	if b.Kind != ast.TypeSynFn || len(b.Params) != 2 || !b.Result.IsValid() {
		t.Fatalf("b = %v params=%d, want fn with 2 params and result", b.Kind, len(b.Params))
	}

	c := p.arenas.Type(items[2].Type)
	if c.Kind != ast.TypeSynUnion || len(c.Params) != 2 {
		t.Fatalf("c = %v members=%d, want union of 2", c.Kind, len(c.Params))
	}
}

func TestParseControlFlow(t *testing.T) {
	src := `fn main() {
	if x < 10 {
		print("small")
	} else if x < 100 {
		print("medium")
	} else {
		print("large")
	}
	while x > 0 {
		x = x - 1
	}
	for item in items {
		print(item)
	}
}`
	p := parseSource(t, src)
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.bag.Items())
	}

	body := p.arenas.Stmt(p.items(t)[0].Body)
	if len(body.Stmts) != 3 {
		t.Fatalf("stmts = %d, want 3", len(body.Stmts))
	}
	ifStmt := p.arenas.Stmt(body.Stmts[0])
	if ifStmt.Kind != ast.StmtIf || !ifStmt.Else.IsValid() {
		t.Fatalf("first stmt = %v, want if with else", ifStmt.Kind)
	}
	elseIf := p.arenas.Stmt(ifStmt.Else)
	if elseIf.Kind != ast.StmtIf || !elseIf.Else.IsValid() {
		t.Fatalf("else branch = %v, want chained if", elseIf.Kind)
	}
	if p.arenas.Stmt(body.Stmts[1]).Kind != ast.StmtWhile {
		t.Error("second stmt should be while")
	}
	forStmt := p.arenas.Stmt(body.Stmts[2])
	if forStmt.Kind != ast.StmtFor {
		t.Fatal("third stmt should be for")
	}
	if got := p.arenas.Lookup(forStmt.Name); got != "item" {
		t.Errorf("loop variable = %q", got)
	}
}

func TestParseForMissingIn(t *testing.T) {
	p := parseSource(t, "fn f() { for x items { } }")
	found := false
	for _, d := range p.bag.Items() {
		if d.Code == diag.SynForMissingIn {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected missing-in diagnostic, got %v", p.bag.Items())
	}
}

func TestParseRecordsTileItems(t *testing.T) {
	p := parseSource(t, "import std\nlet x = 1\nfn f() { }\nstruct S { a: Int }")
	recs := p.result.Records
	if len(recs) != 4 {
		t.Fatalf("records = %d, want 4", len(recs))
	}
	prev := ast.Marks{}
	for i, rec := range recs {
		if !rec.Item.IsValid() {
			t.Fatalf("record %d has no item", i)
		}
		if rec.From.Items < prev.Items {
			t.Fatalf("record %d marks go backwards", i)
		}
		prev = rec.To
	}
	// Item spans must be ordered and non-overlapping.
	for i := 1; i < len(recs); i++ {
		a := p.arenas.Item(recs[i-1].Item).Span
		b := p.arenas.Item(recs[i].Item).Span
		if b.Start < a.End {
			t.Fatalf("item %d span %v overlaps previous %v", i, b, a)
		}
	}
}

func TestParseGrammarContexts(t *testing.T) {
	src := "struct S { a: Int }\nfn f() { let x = 1 }"
	p := parseSource(t, src)
	entries := p.arenas.ContextsInRange(ast.Marks{}, p.arenas.Mark())

	structInner := uint32(12) // inside the struct braces
	if got := ast.ContextAt(entries, structInner); got != ast.CtxStructBody {
		t.Errorf("context in struct body = %v, want struct body", got)
	}
	topLevel := uint32(20) // between the two items
	if got := ast.ContextAt(entries, topLevel); got != ast.CtxTopLevel {
		t.Errorf("context at top level = %v, want top level", got)
	}
}

func TestParseMaxErrors(t *testing.T) {
	bagAll := diag.NewBag(0)
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.brn", []byte("let = ;\nlet = ;\nlet = ;\nlet = ;"))
	file := fs.Get(id)
	strings := source.NewInterner()
	arenas := ast.NewBuilder(ast.DefaultHints(), strings)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bagAll}})
	ParseFile(lx, arenas, Options{MaxErrors: 2, Reporter: diag.BagReporter{Bag: bagAll}})
	if got := bagAll.Len(); got > 2 {
		t.Fatalf("diagnostics = %d, want at most 2", got)
	}
}
