package sema

import (
	"burn/internal/ast"
	"burn/internal/diag"
	"burn/internal/source"
	"burn/internal/symbols"
	"burn/internal/types"
)

// Options configure a semantic pass over one file.
type Options struct {
	Reporter diag.Reporter
	Table    *symbols.Table
}

// Result stores the artefacts produced by the checker. ExprTypes maps
// every visited expression to its interned type, including the invalid
// placeholder where inference failed.
type Result struct {
	ExprTypes map[ast.ExprID]types.TypeID
}

// TypeOf returns the inferred type of an expression.
func (r *Result) TypeOf(id ast.ExprID) types.TypeID {
	return r.ExprTypes[id]
}

// Check runs type inference and checking over the resolved file. It never
// stops at the first problem: expressions that cannot be typed receive
// the invalid placeholder, which is compatible with everything, so one
// error does not cascade into follow-up diagnostics.
func Check(arenas *ast.Builder, file ast.FileID, opts Options) Result {
	res := Result{
		ExprTypes: make(map[ast.ExprID]types.TypeID),
	}
	f := arenas.File(file)
	if f == nil || opts.Table == nil {
		return res
	}

	c := checker{
		arenas:   arenas,
		tab:      opts.Table,
		tin:      opts.Table.Types,
		reporter: opts.Reporter,
		result:   &res,
	}
	c.builtins = c.tin.Builtins()
	c.checkItems(f.Items)
	return res
}

type checker struct {
	arenas   *ast.Builder
	tab      *symbols.Table
	tin      *types.Interner
	reporter diag.Reporter
	result   *Result
	builtins types.Builtins

	// result type of the function currently being checked
	fnResult types.TypeID
}

func (c *checker) checkItems(items []ast.ItemID) {
	for _, id := range items {
		it := c.arenas.Item(id)
		if it == nil {
			continue
		}
		switch it.Kind {
		case ast.ItemVar:
			c.checkVarItem(id, it)
		case ast.ItemFn:
			c.checkFn(id, it)
		case ast.ItemStruct:
			for _, mID := range it.Methods {
				if m := c.arenas.Item(mID); m != nil && m.Kind == ast.ItemFn {
					c.checkFn(mID, m)
				}
			}
		}
	}
}

func (c *checker) checkVarItem(id ast.ItemID, it *ast.Item) {
	declared := types.NoTypeID
	if sym := c.tab.Symbols.Get(c.tab.ItemSyms[id]); sym != nil {
		declared = sym.Type
	}

	inferred := types.NoTypeID
	if it.Init.IsValid() {
		inferred = c.checkExpr(it.Init)
	}
	final := c.reconcileDecl(declared, inferred, it)

	if sym := c.tab.Symbols.Get(c.tab.ItemSyms[id]); sym != nil {
		sym.Type = final
	}
}

// reconcileDecl combines a declared annotation with an inferred
// initializer type and reports the mismatch when both are known.
func (c *checker) reconcileDecl(declared, inferred types.TypeID, it *ast.Item) types.TypeID {
	if c.tin.IsInvalid(declared) {
		return inferred
	}
	if it.Init.IsValid() && !c.tin.IsInvalid(inferred) && !c.assignable(declared, inferred) {
		c.report(diag.TypeMismatch, c.arenas.Expr(it.Init).Span,
			"cannot initialize '"+c.formatType(declared)+"' with a value of type '"+c.formatType(inferred)+"'")
	}
	return declared
}

func (c *checker) checkFn(id ast.ItemID, it *ast.Item) {
	prev := c.fnResult
	c.fnResult = c.builtins.Unit
	if sym := c.tab.Symbols.Get(c.tab.ItemSyms[id]); sym != nil {
		if sig, ok := c.tin.FnInfo(sym.Type); ok {
			c.fnResult = sig.Result
		}
	}
	if it.Body.IsValid() {
		c.checkStmt(it.Body)
	}
	c.fnResult = prev
}

// assignable reports whether a value of type src can be stored where dst
// is expected. The invalid placeholder is compatible in both directions.
func (c *checker) assignable(dst, src types.TypeID) bool {
	if c.tin.IsInvalid(dst) || c.tin.IsInvalid(src) {
		return true
	}
	if dst == src {
		return true
	}
	dt, ok := c.tin.Lookup(dst)
	if !ok {
		return true
	}
	switch dt.Kind {
	case types.KindOptional:
		// T? accepts T and null.
		if src == c.builtins.Null {
			return true
		}
		return c.assignable(dt.Elem, src)
	case types.KindUnion:
		if c.tin.UnionHas(dst, src) {
			return true
		}
	}
	return false
}

func (c *checker) formatType(id types.TypeID) string {
	return c.tin.Format(id, c.tab.Strings)
}

func (c *checker) report(code diag.Code, sp source.Span, msg string) {
	diag.Report(c.reporter, code, diag.SevError, sp, msg)
}
