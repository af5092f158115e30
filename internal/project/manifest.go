// Package project locates and loads burn.toml, the project manifest.
// The manifest names the package, points at its source root and carries
// the defaults the analyzer and CLI start from.
package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
)

var (
	// ErrPackageSectionMissing indicates that [package] is missing in a manifest.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing or empty.
	ErrPackageNameMissing = errors.New("missing [package].name")
	// ErrPackageNameInvalid indicates that [package].name is not an identifier.
	ErrPackageNameInvalid = errors.New("invalid [package].name")
)

// Manifest is one loaded burn.toml.
type Manifest struct {
	// Path of the manifest file itself.
	Path string
	// Dir containing the manifest; relative paths resolve against it.
	Dir string

	Name string // package name, a valid identifier
	Root string // source root directory, relative to Dir, default "."

	// Check tunables, all optional.
	MaxDiagnostics int  // cap per analysis stage, 0 keeps all
	Jobs           int  // parallel workers for directory checks, 0 picks automatically
	Strict         bool // treat warnings as failures
}

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
		Root string `toml:"root"`
	} `toml:"package"`
	Check struct {
		MaxDiagnostics int  `toml:"max_diagnostics"`
		Jobs           int  `toml:"jobs"`
		Strict         bool `toml:"strict"`
	} `toml:"check"`
}

// Load parses a burn.toml file.
func Load(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}

	name := strings.TrimSpace(cfg.Package.Name)
	if name == "" {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if !IsValidPackageName(name) {
		return Manifest{}, fmt.Errorf("%s: %w: %q", path, ErrPackageNameInvalid, name)
	}

	root := strings.TrimSpace(cfg.Package.Root)
	if root == "" {
		root = "."
	}

	return Manifest{
		Path:           path,
		Dir:            filepath.Dir(path),
		Name:           name,
		Root:           root,
		MaxDiagnostics: cfg.Check.MaxDiagnostics,
		Jobs:           cfg.Check.Jobs,
		Strict:         cfg.Check.Strict,
	}, nil
}

// Discover walks up from startDir, loads the nearest burn.toml and
// reports whether one was found.
func Discover(startDir string) (Manifest, bool, error) {
	path, ok, err := FindBurnToml(startDir)
	if err != nil || !ok {
		return Manifest{}, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return Manifest{}, true, err
	}
	return m, true, nil
}

// SourceRoot resolves the manifest's source root to an absolute-ish path
// rooted at the manifest directory.
func (m Manifest) SourceRoot() string {
	if filepath.IsAbs(m.Root) {
		return m.Root
	}
	return filepath.Join(m.Dir, m.Root)
}

// IsValidPackageName reports whether name is an ASCII identifier.
func IsValidPackageName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
