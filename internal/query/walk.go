package query

import (
	"burn/internal/ast"
	"burn/internal/source"
)

type hitKind uint8

const (
	hitNone     hitKind = iota
	hitItemName         // the declaring name of an item
	hitParam            // a parameter name in a function header
	hitField            // a field name in a struct body
	hitIdent            // an identifier reference expression
	hitProperty         // the member name of a property access
	hitStmtName         // the declaring name of a var/for statement
)

// nameHit is a named node found under the cursor: either a reference
// (identifier or property access) or a declaring name.
type nameHit struct {
	kind hitKind
	span source.Span
	name source.StringID

	expr ast.ExprID // hitIdent, hitProperty
	item ast.ItemID // hitItemName, hitParam, hitField
	stmt ast.StmtID // hitStmtName
}

// nameAt finds the smallest named node whose span contains the offset.
// Only nodes reachable from the root participate; stale arena entries
// left behind by incremental reparses are never visited.
func (s *Snapshot) nameAt(off uint32) (nameHit, bool) {
	w := nameWalker{snap: s, off: off}
	for _, id := range s.items() {
		w.item(id)
	}
	return w.best, w.best.kind != hitNone
}

type nameWalker struct {
	snap *Snapshot
	off  uint32
	best nameHit
}

func (w *nameWalker) consider(h nameHit) {
	if !h.span.Contains(w.off) || h.span.Empty() {
		return
	}
	if w.best.kind == hitNone || h.span.Len() <= w.best.span.Len() {
		w.best = h
	}
}

func (w *nameWalker) item(id ast.ItemID) {
	it := w.snap.Arenas.Item(id)
	if it == nil || !it.Span.Contains(w.off) {
		return
	}
	w.consider(nameHit{kind: hitItemName, span: it.NameSpan, name: it.Name, item: id})
	for _, p := range it.Params {
		w.consider(nameHit{kind: hitParam, span: p.NameSpan, name: p.Name, item: id})
	}
	for _, f := range it.Fields {
		w.consider(nameHit{kind: hitField, span: f.NameSpan, name: f.Name, item: id})
	}
	for _, m := range it.Methods {
		w.item(m)
	}
	if it.Body.IsValid() {
		w.stmt(it.Body)
	}
	if it.Init.IsValid() {
		w.expr(it.Init)
	}
}

func (w *nameWalker) stmt(id ast.StmtID) {
	st := w.snap.Arenas.Stmt(id)
	if st == nil || !st.Span.Contains(w.off) {
		return
	}
	if st.Kind == ast.StmtVar || st.Kind == ast.StmtFor {
		w.consider(nameHit{kind: hitStmtName, span: st.NameSpan, name: st.Name, stmt: id})
	}
	for _, sID := range st.Stmts {
		w.stmt(sID)
	}
	for _, eID := range []ast.ExprID{st.Init, st.Expr, st.Cond} {
		if eID.IsValid() {
			w.expr(eID)
		}
	}
	for _, sID := range []ast.StmtID{st.Then, st.Else} {
		if sID.IsValid() {
			w.stmt(sID)
		}
	}
}

func (w *nameWalker) expr(id ast.ExprID) {
	ex := w.snap.Arenas.Expr(id)
	if ex == nil || !ex.Span.Contains(w.off) {
		return
	}
	switch ex.Kind {
	case ast.ExprIdent:
		w.consider(nameHit{kind: hitIdent, span: ex.Span, name: ex.Name, expr: id})
	case ast.ExprProperty:
		w.consider(nameHit{kind: hitProperty, span: ex.NameSpan, name: ex.Name, expr: id})
	}
	for _, sub := range []ast.ExprID{ex.Left, ex.Right} {
		if sub.IsValid() {
			w.expr(sub)
		}
	}
	for _, arg := range ex.Args {
		w.expr(arg)
	}
}
