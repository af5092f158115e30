package source

import (
	"crypto/sha256"
)

// NewFile builds an immutable File from already-normalized content.
// The caller chooses the ID; the document store reuses one ID across
// versions of the same document so spans stay comparable.
func NewFile(id FileID, path string, content []byte, flags FileFlags) *File {
	return &File{
		ID:      id,
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
}
