package ast

// Arena is flat append-only storage for one node category. Indices are
// 1-based so the zero value of every ID type means "none"; back-references
// between nodes are IDs into arenas, never pointers, which keeps whole-tree
// replacement a cheap swap.
type Arena[T any] struct {
	data []T
}

// NewArena allocates an arena with capacity capHint (zero is allowed).
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate appends a value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return uint32(len(a.data))
}

// Get returns a pointer into the arena, or nil for index 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || index > uint32(len(a.data)) {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing storage read-only.
func (a *Arena[T]) Slice() []T {
	return a.data
}

// Clone copies the arena's top-level storage. Slices held by the elements
// still share backing arrays; callers that mutate nested slices must copy
// them as well.
func (a *Arena[T]) Clone() *Arena[T] {
	data := make([]T, len(a.data))
	copy(data, a.data)
	return &Arena[T]{data: data}
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
