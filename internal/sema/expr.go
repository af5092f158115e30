package sema

import (
	"strconv"

	"burn/internal/ast"
	"burn/internal/diag"
	"burn/internal/symbols"
	"burn/internal/token"
	"burn/internal/types"
)

// checkExpr infers the expression type bottom-up, memoising the result.
func (c *checker) checkExpr(id ast.ExprID) types.TypeID {
	if t, ok := c.result.ExprTypes[id]; ok {
		return t
	}
	t := c.inferExpr(id)
	c.result.ExprTypes[id] = t
	return t
}

func (c *checker) inferExpr(id ast.ExprID) types.TypeID {
	ex := c.arenas.Expr(id)
	if ex == nil {
		return types.NoTypeID
	}
	switch ex.Kind {
	case ast.ExprIntLit:
		return c.builtins.Int
	case ast.ExprFloatLit:
		return c.builtins.Float
	case ast.ExprStringLit:
		return c.builtins.String
	case ast.ExprBoolLit:
		return c.builtins.Bool
	case ast.ExprNullLit:
		return c.builtins.Null
	case ast.ExprIdent:
		if sym := c.tab.Symbols.Get(c.tab.Refs[id]); sym != nil {
			return sym.Type
		}
		return types.NoTypeID
	case ast.ExprParen:
		return c.checkExpr(ex.Left)
	case ast.ExprUnary:
		return c.inferUnary(ex)
	case ast.ExprBinary:
		return c.inferBinary(ex)
	case ast.ExprAssign:
		return c.inferAssign(ex)
	case ast.ExprCall:
		return c.inferCall(ex)
	case ast.ExprProperty:
		return c.inferProperty(ex)
	case ast.ExprIndex:
		return c.inferIndex(ex)
	case ast.ExprArrayLit:
		return c.inferArrayLit(ex)
	default:
		return types.NoTypeID
	}
}

func (c *checker) inferUnary(ex *ast.Expr) types.TypeID {
	operand := c.checkExpr(ex.Left)
	if c.tin.IsInvalid(operand) {
		return types.NoTypeID
	}
	switch ex.Op {
	case token.Minus:
		if operand == c.builtins.Int || operand == c.builtins.Float {
			return operand
		}
	case token.Bang:
		if operand == c.builtins.Bool {
			return operand
		}
	}
	c.report(diag.TypeBadOperand, ex.Span,
		"operator '"+ex.Op.String()+"' cannot be applied to '"+c.formatType(operand)+"'")
	return types.NoTypeID
}

func (c *checker) inferBinary(ex *ast.Expr) types.TypeID {
	left := c.checkExpr(ex.Left)
	right := c.checkExpr(ex.Right)
	if c.tin.IsInvalid(left) || c.tin.IsInvalid(right) {
		return types.NoTypeID
	}

	switch ex.Op {
	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent:
		if left == right && (left == c.builtins.Int || left == c.builtins.Float) {
			return left
		}
		if ex.Op == token.Plus && left == c.builtins.String && right == c.builtins.String {
			return c.builtins.String
		}
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		if left == right && (left == c.builtins.Int || left == c.builtins.Float || left == c.builtins.String) {
			return c.builtins.Bool
		}
	case token.EqEq, token.BangEq:
		if left == right || c.assignable(left, right) || c.assignable(right, left) {
			return c.builtins.Bool
		}
	case token.AndAnd, token.OrOr:
		if left == c.builtins.Bool && right == c.builtins.Bool {
			return c.builtins.Bool
		}
	}
	c.report(diag.TypeBadOperand, ex.Span,
		"operator '"+ex.Op.String()+"' cannot be applied to '"+c.formatType(left)+"' and '"+c.formatType(right)+"'")
	return types.NoTypeID
}

func (c *checker) inferAssign(ex *ast.Expr) types.TypeID {
	target := c.checkExpr(ex.Left)
	value := c.checkExpr(ex.Right)

	c.checkAssignTarget(ex.Left)
	if c.tin.IsInvalid(target) || c.tin.IsInvalid(value) {
		return target
	}
	if !c.assignable(target, value) {
		c.report(diag.TypeMismatch, c.arenas.Expr(ex.Right).Span,
			"cannot assign '"+c.formatType(value)+"' to '"+c.formatType(target)+"'")
	}
	return target
}

// checkAssignTarget rejects assignments to immutable bindings and to
// things that are not storage locations at all.
func (c *checker) checkAssignTarget(id ast.ExprID) {
	ex := c.arenas.Expr(id)
	if ex == nil {
		return
	}
	switch ex.Kind {
	case ast.ExprIdent:
		sym := c.tab.Symbols.Get(c.tab.Refs[id])
		if sym == nil {
			return
		}
		if sym.Kind == symbols.SymbolFunction || sym.Kind == symbols.SymbolType || sym.Kind == symbols.SymbolImport {
			c.report(diag.TypeAssignImmutable, ex.Span,
				"cannot assign to "+sym.Kind.String()+" '"+c.arenas.Lookup(ex.Name)+"'")
			return
		}
		if !sym.Mutable() {
			c.report(diag.TypeAssignImmutable, ex.Span,
				"cannot assign to immutable binding '"+c.arenas.Lookup(ex.Name)+"'")
		}
	case ast.ExprIndex, ast.ExprProperty:
		// Element and member stores mutate the container; the binding the
		// container came from is not reassigned.
	case ast.ExprParen:
		c.checkAssignTarget(ex.Left)
	default:
		c.report(diag.TypeAssignImmutable, ex.Span, "this expression is not assignable")
	}
}

func (c *checker) inferCall(ex *ast.Expr) types.TypeID {
	callee := c.checkExpr(ex.Left)
	args := make([]types.TypeID, len(ex.Args))
	for i, arg := range ex.Args {
		args[i] = c.checkExpr(arg)
	}
	if c.tin.IsInvalid(callee) {
		return types.NoTypeID
	}

	info, ok := c.tin.FnInfo(callee)
	if !ok {
		c.report(diag.TypeNotCallable, c.arenas.Expr(ex.Left).Span,
			"'"+c.formatType(callee)+"' is not callable")
		return types.NoTypeID
	}
	if len(args) != len(info.Params) {
		c.report(diag.TypeArity, ex.Span,
			"this call expects "+countOf(len(info.Params), "argument")+", found "+strconv.Itoa(len(args)))
		return info.Result
	}
	for i, arg := range args {
		if c.tin.IsInvalid(arg) || c.tin.IsInvalid(info.Params[i]) {
			continue
		}
		if !c.assignable(info.Params[i], arg) {
			c.report(diag.TypeArgMismatch, c.arenas.Expr(ex.Args[i]).Span,
				"argument "+strconv.Itoa(i+1)+" must be '"+c.formatType(info.Params[i])+"', found '"+c.formatType(arg)+"'")
		}
	}
	return info.Result
}

func (c *checker) inferProperty(ex *ast.Expr) types.TypeID {
	base := c.checkExpr(ex.Left)
	if c.tin.IsInvalid(base) {
		return types.NoTypeID
	}

	if tt, ok := c.tin.Lookup(base); ok && tt.Kind == types.KindStruct {
		if mt, _, found := c.tin.StructMember(base, ex.Name); found {
			return mt
		}
	}
	if mt, ok := c.builtinMemberType(base, c.arenas.Lookup(ex.Name)); ok {
		return mt
	}
	c.report(diag.TypeBadOperand, ex.NameSpan,
		"'"+c.formatType(base)+"' has no member '"+c.arenas.Lookup(ex.Name)+"'")
	return types.NoTypeID
}

func (c *checker) inferIndex(ex *ast.Expr) types.TypeID {
	base := c.checkExpr(ex.Left)
	index := c.checkExpr(ex.Right)

	if !c.tin.IsInvalid(index) && index != c.builtins.Int {
		c.report(diag.TypeMismatch, c.arenas.Expr(ex.Right).Span,
			"index must be 'Int', found '"+c.formatType(index)+"'")
	}
	if c.tin.IsInvalid(base) {
		return types.NoTypeID
	}
	if tt, ok := c.tin.Lookup(base); ok && tt.Kind == types.KindArray {
		return tt.Elem
	}
	if base == c.builtins.String {
		return c.builtins.String
	}
	c.report(diag.TypeNotIndexable, c.arenas.Expr(ex.Left).Span,
		"'"+c.formatType(base)+"' cannot be indexed")
	return types.NoTypeID
}

func (c *checker) inferArrayLit(ex *ast.Expr) types.TypeID {
	if len(ex.Args) == 0 {
		return c.tin.Array(types.NoTypeID)
	}
	elem := c.checkExpr(ex.Args[0])
	for _, el := range ex.Args[1:] {
		got := c.checkExpr(el)
		if c.tin.IsInvalid(elem) {
			elem = got
			continue
		}
		if !c.tin.IsInvalid(got) && !c.assignable(elem, got) {
			c.report(diag.TypeMismatch, c.arenas.Expr(el).Span,
				"array element must be '"+c.formatType(elem)+"', found '"+c.formatType(got)+"'")
		}
	}
	return c.tin.Array(elem)
}

func countOf(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
