package lexer_test

import (
	"strings"
	"testing"

	"burn/internal/diag"
	"burn/internal/lexer"
	"burn/internal/source"
	"burn/internal/token"
)

// testReporter collects every diagnostic the lexer emits.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Stage:    code.Stage(),
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) errorCount() int {
	n := 0
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.burn", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

func collect(t *testing.T, input string) ([]token.Token, *testReporter) {
	t.Helper()
	lx, rep := makeTestLexer(input)
	var toks []token.Token
	for i := 0; ; i++ {
		if i > len(input)+16 {
			t.Fatalf("lexer did not terminate on %q", input)
		}
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, rep
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexSimpleFunction(t *testing.T) {
	toks, rep := collect(t, "fn add(a: Int, b: Int) -> Int { return a + b }")
	want := []token.Kind{
		token.KwFn, token.Ident, token.LParen, token.Ident, token.Colon, token.Ident,
		token.Comma, token.Ident, token.Colon, token.Ident, token.RParen, token.Arrow,
		token.Ident, token.LBrace, token.KwReturn, token.Ident, token.Plus, token.Ident,
		token.RBrace, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
	if rep.errorCount() != 0 {
		t.Fatalf("unexpected lex errors: %v", rep.diagnostics)
	}
}

func TestLexRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"let x = 1",
		"fn add(a: Int, b: Int) -> Int {\n\treturn a + b\n}\n",
		"// comment\nlet s = \"hi\\\"there\"  /* block */ \n\n",
		"let bad = @#$",
		"\xff\xfe binary garbage \x00",
		"12ab + 3.5",
	}
	for _, in := range inputs {
		toks, _ := collect(t, in)
		var sb strings.Builder
		for _, tok := range toks {
			sb.WriteString(tok.LeadingText())
			sb.WriteString(tok.Text)
		}
		if sb.String() != in {
			t.Errorf("round-trip failed for %q: got %q", in, sb.String())
		}
	}
}

func TestLexInvalidBytesBecomeErrorTokens(t *testing.T) {
	toks, rep := collect(t, "let x = @")
	last := toks[len(toks)-2]
	if last.Kind != token.Invalid {
		t.Fatalf("expected Invalid token for '@', got %v", last.Kind)
	}
	if rep.errorCount() != 1 {
		t.Fatalf("error count = %d, want 1", rep.errorCount())
	}
}

func TestLexEmptyInput(t *testing.T) {
	toks, rep := collect(t, "")
	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Fatalf("empty input must yield exactly EOF, got %v", kinds(toks))
	}
	if rep.errorCount() != 0 {
		t.Fatalf("empty input must not error")
	}
}

func TestLexNumbers(t *testing.T) {
	toks, _ := collect(t, "1 23 4.5 0.25")
	want := []token.Kind{token.IntLit, token.IntLit, token.FloatLit, token.FloatLit, token.EOF}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

func TestLexUnterminatedString(t *testing.T) {
	toks, rep := collect(t, "let s = \"oops\nlet y = 1")
	if rep.errorCount() != 1 {
		t.Fatalf("error count = %d, want 1", rep.errorCount())
	}
	sawString := false
	for _, tok := range toks {
		if tok.Kind == token.StringLit {
			sawString = true
		}
	}
	if !sawString {
		t.Fatalf("unterminated string must still produce a StringLit token")
	}
}

func TestLexRangeLexing(t *testing.T) {
	fs := source.NewFileSet()
	input := "let a = 1\nlet b = 2\n"
	file := fs.Get(fs.AddVirtual("test.burn", []byte(input)))

	// Only the second declaration.
	lx := lexer.NewRange(file, 10, uint32(len(input)), lexer.Options{})
	first := lx.Next()
	if first.Kind != token.KwLet || first.Span.Start != 10 {
		t.Fatalf("range lexing must produce absolute spans, got %v at %v", first.Kind, first.Span)
	}
}

func TestLexOperators(t *testing.T) {
	cases := map[string]token.Kind{
		"->": token.Arrow,
		"==": token.EqEq,
		"!=": token.BangEq,
		"<=": token.LtEq,
		">=": token.GtEq,
		"&&": token.AndAnd,
		"||": token.OrOr,
		"|":  token.Pipe,
		"?":  token.Question,
	}
	for in, want := range cases {
		toks, _ := collect(t, in)
		if toks[0].Kind != want {
			t.Errorf("lex(%q) = %v, want %v", in, toks[0].Kind, want)
		}
	}
}
