package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"burn/internal/diag"
	"burn/internal/source"
)

// Digest keys the cache: the SHA-256 of a file's content.
type Digest = [32]byte

// Schema version, increment when CachedFile changes shape.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-file analysis results keyed by content hash, so
// repeated checks of unchanged files skip the pipeline entirely.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedFile is the serialized payload for one analyzed file.
type CachedFile struct {
	Schema uint16
	Path   string
	Diags  []CachedDiag
}

// CachedDiag flattens one diagnostic for serialization. File identity is
// dropped: spans are rebound to the loading session's FileID on read.
type CachedDiag struct {
	Severity uint8
	Code     uint16
	Stage    uint8
	Start    uint32
	End      uint32
	Message  string
	Notes    []CachedNote
}

// CachedNote is one serialized secondary note.
type CachedNote struct {
	Start   uint32
	End     uint32
	Message string
}

// OpenDiskCache initializes a disk cache at the standard user cache
// location for the given application name.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt initializes a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	// A "files" subdirectory keeps the root listable and cleanable.
	return filepath.Join(c.dir, "files", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and atomically writes a payload.
func (c *DiskCache) Put(key Digest, payload *CachedFile) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. Missing entries and schema mismatches report a
// plain miss, not an error.
func (c *DiskCache) Get(key Digest, out *CachedFile) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// cacheFile converts live diagnostics into the serialized payload.
func cacheFile(path string, diags []diag.Diagnostic) *CachedFile {
	payload := &CachedFile{
		Schema: diskCacheSchemaVersion,
		Path:   path,
		Diags:  make([]CachedDiag, 0, len(diags)),
	}
	for _, d := range diags {
		entry := CachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Stage:    uint8(d.Stage),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			entry.Notes = append(entry.Notes, CachedNote{
				Start:   n.Span.Start,
				End:     n.Span.End,
				Message: n.Msg,
			})
		}
		payload.Diags = append(payload.Diags, entry)
	}
	return payload
}

// diagnostics restores the payload as live diagnostics bound to the
// session's FileID.
func (p *CachedFile) diagnostics(file source.FileID) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(p.Diags))
	for _, d := range p.Diags {
		entry := diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Stage:    diag.Stage(d.Stage),
			Message:  d.Message,
			Primary:  source.Span{File: file, Start: d.Start, End: d.End},
		}
		for _, n := range d.Notes {
			entry.Notes = append(entry.Notes, diag.Note{
				Span: source.Span{File: file, Start: n.Start, End: n.End},
				Msg:  n.Message,
			})
		}
		out = append(out, entry)
	}
	return out
}
