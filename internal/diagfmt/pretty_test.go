package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"burn/internal/diag"
	"burn/internal/source"
)

func fixture() (*source.FileSet, []diag.Diagnostic) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.brn", []byte("fn main() {\n\tlet x = missing\n}\n"))

	span := source.Span{File: id, Start: 21, End: 28} // "missing"
	return fs, []diag.Diagnostic{{
		Severity: diag.SevError,
		Code:     diag.BindUnresolvedName,
		Stage:    diag.StageBinder,
		Message:  "cannot find 'missing' in this scope",
		Primary:  span,
		Notes:    []diag.Note{{Span: span, Msg: "declared nowhere"}},
	}}
}

func TestPrettyPlain(t *testing.T) {
	fs, diags := fixture()

	var sb strings.Builder
	Pretty(&sb, diags, fs, PrettyOpts{ShowNotes: true})
	out := sb.String()

	for _, want := range []string{
		"demo.brn:2:10: ERROR [BND3001]: cannot find 'missing' in this scope",
		"let x = missing",
		"^~~~~~",
		"note: declared nowhere",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("color escapes present without Color option")
	}
}

func TestPrettyBasenameAndWidth(t *testing.T) {
	fs := source.NewFileSet()
	long := "let verylongname = " + strings.Repeat("1 + ", 30) + "1"
	id := fs.AddVirtual("dir/sub/wide.brn", []byte(long+"\n"))

	var sb strings.Builder
	Pretty(&sb, []diag.Diagnostic{{
		Severity: diag.SevWarning,
		Code:     diag.TypeMismatch,
		Message:  "demo",
		Primary:  source.Span{File: id, Start: 4, End: 16},
	}}, fs, PrettyOpts{PathMode: PathModeBasename, Width: 40})
	out := sb.String()

	if !strings.Contains(out, "wide.brn:1:5: WARNING [TYP4001]: demo") {
		t.Fatalf("header wrong:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 44 {
			t.Errorf("line wider than requested: %q", line)
		}
	}
}

func TestJSON(t *testing.T) {
	fs, diags := fixture()

	var sb strings.Builder
	if err := JSON(&sb, diags, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, entries = %d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Code != "BND3001" || d.Severity != "ERROR" || d.Stage != "binder" {
		t.Errorf("entry = %+v", d)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 10 {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "declared nowhere" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestJSONMaxKeepsTotalCount(t *testing.T) {
	fs, diags := fixture()
	diags = append(diags, diags[0], diags[0])

	var sb strings.Builder
	if err := JSON(&sb, diags, fs, JSONOpts{Max: 2}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.Diagnostics) != 2 || out.Count != 3 {
		t.Fatalf("entries = %d count = %d, want 2 and 3", len(out.Diagnostics), out.Count)
	}
}
