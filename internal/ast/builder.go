package ast

import (
	"burn/internal/source"
)

// Hints suggest arena capacities for one document.
type Hints struct {
	Items, Stmts, Exprs, Types uint
}

// DefaultHints sizes arenas for a typical editor buffer.
func DefaultHints() Hints {
	return Hints{Items: 32, Stmts: 128, Exprs: 256, Types: 32}
}

// Builder owns the arenas for one document's syntax trees. All node
// references are arena indices, so publishing a new tree version is a swap
// of ID ranges, never a pointer graph rewrite.
type Builder struct {
	Files    *Arena[File]
	Items    *Arena[Item]
	Stmts    *Arena[Stmt]
	Exprs    *Arena[Expr]
	Types    *Arena[TypeSyn]
	Contexts *Arena[ContextSpan]

	StringsInterner *source.Interner
}

// NewBuilder constructs a builder. If strings is nil a fresh interner is
// allocated.
func NewBuilder(h Hints, strings *source.Interner) *Builder {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Files:           NewArena[File](1),
		Items:           NewArena[Item](h.Items),
		Stmts:           NewArena[Stmt](h.Stmts),
		Exprs:           NewArena[Expr](h.Exprs),
		Types:           NewArena[TypeSyn](h.Types),
		Contexts:        NewArena[ContextSpan](h.Items),
		StringsInterner: strings,
	}
}

// NewFile allocates a root node.
func (b *Builder) NewFile(span source.Span) FileID {
	return FileID(b.Files.Allocate(File{Span: span}))
}

// PushItem appends a top-level item to the file's item list.
func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(uint32(file))
	f.Items = append(f.Items, item)
}

func (b *Builder) NewItem(it Item) ItemID {
	return ItemID(b.Items.Allocate(it))
}

func (b *Builder) NewStmt(st Stmt) StmtID {
	return StmtID(b.Stmts.Allocate(st))
}

func (b *Builder) NewExpr(ex Expr) ExprID {
	return ExprID(b.Exprs.Allocate(ex))
}

func (b *Builder) NewType(ts TypeSyn) TypeID {
	return TypeID(b.Types.Allocate(ts))
}

// RecordContext tags a source region with its grammar context.
func (b *Builder) RecordContext(span source.Span, ctx GrammarContext) {
	b.Contexts.Allocate(ContextSpan{Span: span, Ctx: ctx})
}

// Accessors return nil for the zero ID.

func (b *Builder) File(id FileID) *File       { return b.Files.Get(uint32(id)) }
func (b *Builder) Item(id ItemID) *Item       { return b.Items.Get(uint32(id)) }
func (b *Builder) Stmt(id StmtID) *Stmt       { return b.Stmts.Get(uint32(id)) }
func (b *Builder) Expr(id ExprID) *Expr       { return b.Exprs.Get(uint32(id)) }
func (b *Builder) Type(id TypeID) *TypeSyn    { return b.Types.Get(uint32(id)) }
func (b *Builder) Lookup(id source.StringID) string {
	return b.StringsInterner.MustLookup(id)
}

// Clone produces an independent builder sharing only the string interner.
// Nested slices inside items, statements and expressions are copied too,
// so span shifts on the clone never leak into a published tree.
func (b *Builder) Clone() *Builder {
	nb := &Builder{
		Files:           b.Files.Clone(),
		Items:           b.Items.Clone(),
		Stmts:           b.Stmts.Clone(),
		Exprs:           b.Exprs.Clone(),
		Types:           b.Types.Clone(),
		Contexts:        b.Contexts.Clone(),
		StringsInterner: b.StringsInterner,
	}
	for i, f := range nb.Files.Slice() {
		nb.Files.Slice()[i].Items = cloneSlice(f.Items)
	}
	items := nb.Items.Slice()
	for i := range items {
		items[i].Params = cloneSlice(items[i].Params)
		items[i].Fields = cloneSlice(items[i].Fields)
		items[i].Methods = cloneSlice(items[i].Methods)
	}
	stmts := nb.Stmts.Slice()
	for i := range stmts {
		stmts[i].Stmts = cloneSlice(stmts[i].Stmts)
	}
	exprs := nb.Exprs.Slice()
	for i := range exprs {
		exprs[i].Args = cloneSlice(exprs[i].Args)
	}
	typeSyns := nb.Types.Slice()
	for i := range typeSyns {
		typeSyns[i].Params = cloneSlice(typeSyns[i].Params)
	}
	return nb
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// Marks capture the arena high-water marks at one instant. The incremental
// store records marks around each top-level item so it can later address
// exactly the nodes that item allocated.
type Marks struct {
	Items, Stmts, Exprs, Types, Ctxs uint32
}

// Mark snapshots the current arena lengths.
func (b *Builder) Mark() Marks {
	return Marks{
		Items: b.Items.Len(),
		Stmts: b.Stmts.Len(),
		Exprs: b.Exprs.Len(),
		Types: b.Types.Len(),
		Ctxs:  b.Contexts.Len(),
	}
}

// ShiftSpans moves every span of the nodes allocated between from and to
// by delta bytes. Used when splicing retained items after an edit.
func (b *Builder) ShiftSpans(from, to Marks, delta int64) {
	if delta == 0 {
		return
	}
	for id := from.Items + 1; id <= to.Items; id++ {
		it := b.Items.Get(id)
		it.Span = it.Span.Shift(delta)
		it.NameSpan = it.NameSpan.Shift(delta)
		for i := range it.Params {
			it.Params[i].Span = it.Params[i].Span.Shift(delta)
			it.Params[i].NameSpan = it.Params[i].NameSpan.Shift(delta)
		}
		for i := range it.Fields {
			it.Fields[i].Span = it.Fields[i].Span.Shift(delta)
			it.Fields[i].NameSpan = it.Fields[i].NameSpan.Shift(delta)
		}
	}
	for id := from.Stmts + 1; id <= to.Stmts; id++ {
		st := b.Stmts.Get(id)
		st.Span = st.Span.Shift(delta)
		st.NameSpan = st.NameSpan.Shift(delta)
	}
	for id := from.Exprs + 1; id <= to.Exprs; id++ {
		ex := b.Exprs.Get(id)
		ex.Span = ex.Span.Shift(delta)
		ex.NameSpan = ex.NameSpan.Shift(delta)
	}
	for id := from.Types + 1; id <= to.Types; id++ {
		ts := b.Types.Get(id)
		ts.Span = ts.Span.Shift(delta)
		ts.NameSpan = ts.NameSpan.Shift(delta)
	}
	for id := from.Ctxs + 1; id <= to.Ctxs; id++ {
		cs := b.Contexts.Get(id)
		cs.Span = cs.Span.Shift(delta)
	}
}

// ContextsInRange collects the context spans recorded between two marks.
func (b *Builder) ContextsInRange(from, to Marks) []ContextSpan {
	out := make([]ContextSpan, 0, to.Ctxs-from.Ctxs)
	for id := from.Ctxs + 1; id <= to.Ctxs; id++ {
		out = append(out, *b.Contexts.Get(id))
	}
	return out
}

// ContextAt returns the innermost recorded grammar context containing the
// offset, defaulting to top level.
func ContextAt(entries []ContextSpan, off uint32) GrammarContext {
	best := CtxTopLevel
	bestLen := ^uint32(0)
	for _, e := range entries {
		if !e.Span.Contains(off) {
			continue
		}
		if l := e.Span.Len(); l <= bestLen {
			best = e.Ctx
			bestLen = l
		}
	}
	return best
}
