// Package store owns the open documents of an analysis session. Each
// document carries a monotonically versioned, immutable snapshot of its
// text plus the full analysis derived from it. Edits build the next
// snapshot, incrementally when provably safe, and publish it atomically,
// so readers never observe a half-updated version.
package store

import (
	"fmt"
	"sync"
	"sync/atomic"

	"burn/internal/diag"
	"burn/internal/query"
	"burn/internal/source"
)

// Options configure a Store.
type Options struct {
	// MaxDiagnostics caps how many diagnostics each analysis stage keeps
	// per version. Zero keeps them all.
	MaxDiagnostics int
}

// Store is a thread-safe collection of open documents keyed by path.
type Store struct {
	mu       sync.RWMutex
	docs     map[string]*document
	nextFile source.FileID
	opts     Options
}

// document is one open buffer. The mutex serializes writers (Open after
// re-open, ApplyEdit, Close); readers go through the atomic pointer and
// never block on analysis.
type document struct {
	mu      sync.Mutex
	id      source.FileID
	path    string
	strings *source.Interner
	snap    atomic.Pointer[Snapshot]
}

// New creates an empty store.
func New(opts Options) *Store {
	return &Store{docs: make(map[string]*document), opts: opts}
}

// Open registers a document with the given content and analyzes it.
// Opening an already-open path replaces the content wholesale and bumps
// the version. Returns the published version.
func (s *Store) Open(path string, content []byte) uint64 {
	s.mu.Lock()
	doc, ok := s.docs[path]
	if !ok {
		s.nextFile++
		doc = &document{
			id:      s.nextFile,
			path:    path,
			strings: source.NewInterner(),
		}
		s.docs[path] = doc
	}
	s.mu.Unlock()

	doc.mu.Lock()
	defer doc.mu.Unlock()

	version := uint64(1)
	if prev := doc.snap.Load(); prev != nil {
		version = prev.Version + 1
	}
	file := source.NewFile(doc.id, path, content, source.FileVirtual)
	doc.snap.Store(doc.analyzeFull(file, version, s.opts.MaxDiagnostics))
	return version
}

// ApplyEdit splices the edits into the current text, reanalyzes and
// publishes the next version. Edits must be ascending, non-overlapping
// byte ranges against the current version; a rejected batch leaves the
// document untouched. Returns the new version.
func (s *Store) ApplyEdit(path string, edits []Edit) (version uint64, err error) {
	doc, ok := s.lookup(path)
	if !ok {
		return 0, fmt.Errorf("%s: %w", path, ErrNotOpen)
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()

	prev := doc.snap.Load()
	if prev == nil {
		return 0, fmt.Errorf("%s: %w", path, ErrNotOpen)
	}
	if err := validateEdits(edits, prev.Size()); err != nil {
		return 0, err
	}

	// A panicking analysis pass must not take the session down or leave
	// a corrupt version behind; the previous snapshot stays published.
	defer func() {
		if r := recover(); r != nil {
			version, err = 0, fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	file := source.NewFile(doc.id, doc.path, applyEdits(prev.Text(), edits), source.FileVirtual)
	next := prev.Version + 1

	if len(edits) == 1 {
		if snap, ok := doc.tryIncremental(prev, file, edits[0], next, s.opts.MaxDiagnostics); ok {
			doc.snap.Store(snap)
			return next, nil
		}
	}
	doc.snap.Store(doc.analyzeFull(file, next, s.opts.MaxDiagnostics))
	return next, nil
}

// Close forgets the document. Snapshots already handed out stay valid.
func (s *Store) Close(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[path]; !ok {
		return fmt.Errorf("%s: %w", path, ErrNotOpen)
	}
	delete(s.docs, path)
	return nil
}

// Snapshot returns the current version of the document.
func (s *Store) Snapshot(path string) (*Snapshot, error) {
	doc, ok := s.lookup(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNotOpen)
	}
	snap := doc.snap.Load()
	if snap == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNotOpen)
	}
	return snap, nil
}

// Diagnostics returns the current version number and its diagnostics,
// sorted by span and deduplicated across stages.
func (s *Store) Diagnostics(path string) (uint64, []diag.Diagnostic, error) {
	snap, err := s.Snapshot(path)
	if err != nil {
		return 0, nil, err
	}
	return snap.Version, snap.Diags, nil
}

// Completion returns the identifiers and keywords valid at the offset.
func (s *Store) Completion(path string, off uint32) ([]query.CompletionItem, error) {
	snap, err := s.at(path, off)
	if err != nil {
		return nil, err
	}
	return snap.Model.Completion(off), nil
}

// Hover describes the name at the offset, if any.
func (s *Store) Hover(path string, off uint32) (query.Hover, bool, error) {
	snap, err := s.at(path, off)
	if err != nil {
		return query.Hover{}, false, err
	}
	h, ok := snap.Model.Hover(off)
	return h, ok, nil
}

// Definition resolves the name at the offset to its declaration span.
func (s *Store) Definition(path string, off uint32) (source.Span, bool, error) {
	snap, err := s.at(path, off)
	if err != nil {
		return source.Span{}, false, err
	}
	sp, ok := snap.Model.Definition(off)
	return sp, ok, nil
}

// Outline returns the document symbol tree of the current version.
func (s *Store) Outline(path string) ([]query.OutlineItem, error) {
	snap, err := s.Snapshot(path)
	if err != nil {
		return nil, err
	}
	return snap.Model.Outline(), nil
}

func (s *Store) lookup(path string) (*document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[path]
	return doc, ok
}

// at resolves a position query: the document must be open and the offset
// inside the current text (the end-of-file position included).
func (s *Store) at(path string, off uint32) (*Snapshot, error) {
	snap, err := s.Snapshot(path)
	if err != nil {
		return nil, err
	}
	if off > snap.Size() {
		return nil, fmt.Errorf("%s: offset %d, document has %d bytes: %w", path, off, snap.Size(), ErrOutOfBounds)
	}
	return snap, nil
}
