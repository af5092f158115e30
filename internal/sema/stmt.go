package sema

import (
	"burn/internal/ast"
	"burn/internal/diag"
	"burn/internal/types"
)

func (c *checker) checkStmt(id ast.StmtID) {
	st := c.arenas.Stmt(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case ast.StmtVar:
		c.checkVarStmt(id, st)
	case ast.StmtReturn:
		c.checkReturn(st)
	case ast.StmtIf:
		c.checkCondition(st.Cond)
		c.checkStmt(st.Then)
		if st.Else.IsValid() {
			c.checkStmt(st.Else)
		}
	case ast.StmtWhile:
		c.checkCondition(st.Cond)
		c.checkStmt(st.Then)
	case ast.StmtFor:
		c.checkFor(id, st)
	case ast.StmtBlock:
		for _, sID := range st.Stmts {
			c.checkStmt(sID)
		}
	case ast.StmtExpr:
		if st.Expr.IsValid() {
			c.checkExpr(st.Expr)
		}
	}
}

func (c *checker) checkVarStmt(id ast.StmtID, st *ast.Stmt) {
	declared := types.NoTypeID
	if sym := c.tab.Symbols.Get(c.tab.StmtSyms[id]); sym != nil {
		declared = sym.Type
	}

	inferred := types.NoTypeID
	if st.Init.IsValid() {
		inferred = c.checkExpr(st.Init)
	}

	final := declared
	if c.tin.IsInvalid(declared) {
		final = inferred
	} else if st.Init.IsValid() && !c.tin.IsInvalid(inferred) && !c.assignable(declared, inferred) {
		c.report(diag.TypeMismatch, c.arenas.Expr(st.Init).Span,
			"cannot initialize '"+c.formatType(declared)+"' with a value of type '"+c.formatType(inferred)+"'")
	}

	if sym := c.tab.Symbols.Get(c.tab.StmtSyms[id]); sym != nil {
		sym.Type = final
	}
}

func (c *checker) checkReturn(st *ast.Stmt) {
	if !st.Expr.IsValid() {
		if !c.tin.IsInvalid(c.fnResult) && c.fnResult != c.builtins.Unit {
			c.report(diag.TypeMismatch, st.Span,
				"this function returns '"+c.formatType(c.fnResult)+"', not Unit")
		}
		return
	}
	got := c.checkExpr(st.Expr)
	if c.tin.IsInvalid(got) || c.tin.IsInvalid(c.fnResult) {
		return
	}
	if !c.assignable(c.fnResult, got) {
		c.report(diag.TypeMismatch, c.arenas.Expr(st.Expr).Span,
			"cannot return '"+c.formatType(got)+"' from a function returning '"+c.formatType(c.fnResult)+"'")
	}
}

func (c *checker) checkCondition(cond ast.ExprID) {
	if !cond.IsValid() {
		return
	}
	got := c.checkExpr(cond)
	if c.tin.IsInvalid(got) || got == c.builtins.Bool {
		return
	}
	c.report(diag.TypeCondNotBool, c.arenas.Expr(cond).Span,
		"condition must be 'Bool', found '"+c.formatType(got)+"'")
}

func (c *checker) checkFor(id ast.StmtID, st *ast.Stmt) {
	elem := types.NoTypeID
	if st.Expr.IsValid() {
		iter := c.checkExpr(st.Expr)
		if !c.tin.IsInvalid(iter) {
			if tt, ok := c.tin.Lookup(iter); ok && tt.Kind == types.KindArray {
				elem = tt.Elem
			} else if iter == c.builtins.String {
				elem = c.builtins.String
			} else {
				c.report(diag.TypeNotIterable, c.arenas.Expr(st.Expr).Span,
					"'"+c.formatType(iter)+"' is not iterable")
			}
		}
	}
	if sym := c.tab.Symbols.Get(c.tab.StmtSyms[id]); sym != nil {
		sym.Type = elem
	}
	if st.Then.IsValid() {
		c.checkStmt(st.Then)
	}
}
