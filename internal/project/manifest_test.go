package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "burn.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"
root = "src"

[check]
max_diagnostics = 50
jobs = 4
strict = true
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Name != "demo" || m.Root != "src" {
		t.Errorf("package = %q root %q", m.Name, m.Root)
	}
	if m.MaxDiagnostics != 50 || m.Jobs != 4 || !m.Strict {
		t.Errorf("check section = %+v", m)
	}
	if m.SourceRoot() != filepath.Join(dir, "src") {
		t.Errorf("SourceRoot = %q", m.SourceRoot())
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[package]\nname = \"demo\"\n")

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Root != "." || m.MaxDiagnostics != 0 || m.Jobs != 0 || m.Strict {
		t.Errorf("defaults wrong: %+v", m)
	}
	if m.SourceRoot() != dir {
		t.Errorf("SourceRoot = %q, want %q", m.SourceRoot(), dir)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		content string
		want    error
	}{
		{"no package section", "[check]\njobs = 1\n", ErrPackageSectionMissing},
		{"empty name", "[package]\nname = \"  \"\n", ErrPackageNameMissing},
		{"bad name", "[package]\nname = \"1bad\"\n", ErrPackageNameInvalid},
	}
	for _, tc := range cases {
		path := writeManifest(t, dir, tc.content)
		if _, err := Load(path); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}

	if _, err := Load(filepath.Join(dir, "nope.toml")); err == nil {
		t.Error("loading a missing file should fail")
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, ok, err := Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover: ok=%v err=%v", ok, err)
	}
	if m.Name != "demo" || m.Dir != root {
		t.Errorf("manifest = %+v", m)
	}
}

func TestDiscoverNotFound(t *testing.T) {
	_, ok, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if ok {
		t.Error("found a manifest in an empty temp dir")
	}
}

func TestIsValidPackageName(t *testing.T) {
	valid := []string{"a", "_x", "demo", "pkg_2"}
	invalid := []string{"", "1a", "a-b", "пакет", "a b"}
	for _, name := range valid {
		if !IsValidPackageName(name) {
			t.Errorf("%q should be valid", name)
		}
	}
	for _, name := range invalid {
		if IsValidPackageName(name) {
			t.Errorf("%q should be invalid", name)
		}
	}
}
