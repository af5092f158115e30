package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"burn/internal/diag"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestCheckDir(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"clean.brn":      "fn main() { let x = 1 }\n",
		"broken.brn":     "fn main() { let x = missing }\n",
		"sub/nested.brn": "fn helper(v: Int) -> Int { return v }\n",
		"ignored.txt":    "not a source file",
	})

	_, results, err := CheckDir(context.Background(), dir, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results: %+v", len(results), results)
	}

	// Sorted path order, independent of worker scheduling.
	wantOrder := []string{"broken.brn", "clean.brn", filepath.Join("sub", "nested.brn")}
	for i, want := range wantOrder {
		if results[i].Path != filepath.Join(dir, want) {
			t.Errorf("result %d path = %q, want suffix %q", i, results[i].Path, want)
		}
	}

	if len(results[0].Diags) != 1 || results[0].Diags[0].Code != diag.BindUnresolvedName {
		t.Errorf("broken.brn diagnostics = %+v", results[0].Diags)
	}
	if len(results[1].Diags) != 0 || len(results[2].Diags) != 0 {
		t.Errorf("clean files carry diagnostics: %+v", results[1:])
	}
	if ErrorCount(results) != 1 {
		t.Errorf("ErrorCount = %d, want 1", ErrorCount(results))
	}
}

func TestCheckDirEmpty(t *testing.T) {
	_, results, err := CheckDir(context.Background(), t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("results = %+v", results)
	}
}

func TestCheckDirCancelled(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.brn": "fn a() { }\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := CheckDir(ctx, dir, Options{}); err == nil {
		t.Fatal("cancelled check should report the context error")
	}
}

func TestCheckDirUsesCache(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"broken.brn": "fn main() { let x = missing }\n",
	})
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	opts := Options{Cache: cache}

	_, cold, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("cold CheckDir: %v", err)
	}
	if cold[0].Cached {
		t.Fatal("first run should not hit the cache")
	}

	_, warm, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("warm CheckDir: %v", err)
	}
	if !warm[0].Cached {
		t.Fatal("second run should hit the cache")
	}
	if got, want := renderAll(warm[0].Diags), renderAll(cold[0].Diags); got != want {
		t.Errorf("cached diagnostics diverge:\ncold %s\nwarm %s", want, got)
	}

	// Changed content misses the cache again.
	if err := os.WriteFile(filepath.Join(dir, "broken.brn"), []byte("fn main() { }\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	_, after, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("CheckDir after rewrite: %v", err)
	}
	if after[0].Cached || len(after[0].Diags) != 0 {
		t.Errorf("after rewrite: %+v", after[0])
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	key := Digest{1, 2, 3}
	in := &CachedFile{
		Schema: diskCacheSchemaVersion,
		Path:   "x.brn",
		Diags: []CachedDiag{{
			Severity: uint8(diag.SevError),
			Code:     uint16(diag.TypeMismatch),
			Start:    3,
			End:      9,
			Message:  "boom",
			Notes:    []CachedNote{{Start: 1, End: 2, Message: "here"}},
		}},
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out CachedFile
	hit, err := cache.Get(key, &out)
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	restored := out.diagnostics(7)
	if len(restored) != 1 {
		t.Fatalf("restored %d diagnostics", len(restored))
	}
	d := restored[0]
	if d.Code != diag.TypeMismatch || d.Primary.File != 7 || d.Primary.Start != 3 || d.Message != "boom" {
		t.Errorf("restored = %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Msg != "here" {
		t.Errorf("notes = %+v", d.Notes)
	}

	if hit, _ := cache.Get(Digest{9, 9}, &out); hit {
		t.Error("unknown key should miss")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if hit, _ := cache.Get(key, &out); hit {
		t.Error("key survived DropAll")
	}
}

func renderAll(diags []diag.Diagnostic) string {
	out := ""
	for _, d := range diags {
		out += d.Code.ID() + d.Message + ";"
	}
	return out
}
