package symbols

import (
	"burn/internal/ast"
	"burn/internal/diag"
	"burn/internal/source"
	"burn/internal/types"
)

// Result of resolving one file.
type Result struct {
	Module ScopeID
}

// Resolver binds every name in one file to a symbol. Top-level
// declarations are hoisted, so order between items never matters; inside
// blocks a name is visible only after its declaration.
type Resolver struct {
	arenas   *ast.Builder
	tab      *Table
	reporter diag.Reporter
	module   ScopeID
}

// Resolve builds the scope tree for the file, declares every symbol and
// records references in the table. Resolution is total: unresolved names
// produce diagnostics plus missing map entries, never a failure.
func Resolve(arenas *ast.Builder, file ast.FileID, tab *Table, reporter diag.Reporter) Result {
	f := arenas.File(file)
	r := &Resolver{
		arenas:   arenas,
		tab:      tab,
		reporter: reporter,
	}
	r.module = tab.NewScope(ScopeModule, tab.Builtin, f.Span)

	r.declareStructs(f.Items)
	r.declareItems(f.Items)
	r.resolveBodies(f.Items)
	return Result{Module: r.module}
}

// declareStructs introduces every struct name first so field annotations
// can reference structs declared later in the file.
func (r *Resolver) declareStructs(items []ast.ItemID) {
	for _, id := range items {
		it := r.arenas.Item(id)
		if it == nil || it.Kind != ast.ItemStruct {
			continue
		}
		typeID := r.tab.Types.RegisterStruct(it.Name, it.NameSpan)
		r.declare(r.module, Symbol{
			Name: it.Name,
			Kind: SymbolType,
			Span: it.NameSpan,
			Decl: SymbolDecl{Item: id},
			Type: typeID,
		}, it.NameSpan)
	}
}

// declareItems hoists the remaining top-level declarations and resolves
// every struct's member signatures.
func (r *Resolver) declareItems(items []ast.ItemID) {
	for _, id := range items {
		it := r.arenas.Item(id)
		if it == nil {
			continue
		}
		switch it.Kind {
		case ast.ItemImport:
			r.declare(r.module, Symbol{
				Name: it.Name,
				Kind: SymbolImport,
				Span: it.NameSpan,
				Decl: SymbolDecl{Item: id},
			}, it.NameSpan)
		case ast.ItemFn:
			r.declare(r.module, Symbol{
				Name: it.Name,
				Kind: SymbolFunction,
				Span: it.NameSpan,
				Decl: SymbolDecl{Item: id},
				Type: r.fnType(it),
			}, it.NameSpan)
		case ast.ItemVar:
			flags := SymbolFlags(0)
			if it.Mutable {
				flags |= SymbolFlagMutable
			}
			r.declare(r.module, Symbol{
				Name:  it.Name,
				Kind:  SymbolVar,
				Span:  it.NameSpan,
				Flags: flags,
				Decl:  SymbolDecl{Item: id},
				Type:  r.annotation(it.Type),
			}, it.NameSpan)
		case ast.ItemStruct:
			r.resolveStructMembers(id, it)
		}
	}
}

func (r *Resolver) resolveStructMembers(id ast.ItemID, it *ast.Item) {
	symID := r.tab.LookupIn(r.module, it.Name)
	sym := r.tab.Symbols.Get(symID)
	if sym == nil || sym.Decl.Item != id {
		// A later struct with the same name won; this declaration only
		// contributes diagnostics for its own annotations.
		for _, f := range it.Fields {
			r.annotation(f.Type)
		}
		return
	}

	fields := make([]types.StructField, 0, len(it.Fields))
	for _, f := range it.Fields {
		fields = append(fields, types.StructField{
			Name: f.Name,
			Type: r.annotation(f.Type),
			Span: f.NameSpan,
		})
	}
	r.tab.Types.SetStructFields(sym.Type, fields)

	methods := make([]types.StructMethod, 0, len(it.Methods))
	for _, mID := range it.Methods {
		m := r.arenas.Item(mID)
		if m == nil || m.Kind != ast.ItemFn {
			continue
		}
		sig := r.fnType(m)
		methods = append(methods, types.StructMethod{
			Name: m.Name,
			Type: sig,
			Span: m.NameSpan,
		})
		// Methods live in the struct's member table rather than a scope,
		// but they still get a symbol so queries and the checker can find
		// the signature behind the item.
		mSym := r.tab.Symbols.New(Symbol{
			Name: m.Name,
			Kind: SymbolMethod,
			Span: m.NameSpan,
			Decl: SymbolDecl{Item: mID},
			Type: sig,
		})
		r.tab.ItemSyms[mID] = mSym
	}
	r.tab.Types.SetStructMethods(sym.Type, methods)
}

// fnType builds the interned signature from the annotations as written.
// Missing parameter annotations become the invalid placeholder; a missing
// result annotation means Unit.
func (r *Resolver) fnType(it *ast.Item) types.TypeID {
	params := make([]types.TypeID, 0, len(it.Params))
	for _, p := range it.Params {
		params = append(params, r.annotation(p.Type))
	}
	result := r.tab.Types.Builtins().Unit
	if it.Result.IsValid() {
		result = r.annotation(it.Result)
	}
	return r.tab.Types.Fn(params, result)
}

// resolveBodies walks initializers and function bodies.
func (r *Resolver) resolveBodies(items []ast.ItemID) {
	for _, id := range items {
		it := r.arenas.Item(id)
		if it == nil {
			continue
		}
		switch it.Kind {
		case ast.ItemVar:
			if it.Init.IsValid() {
				r.resolveExpr(r.module, it.Init)
			}
		case ast.ItemFn:
			r.resolveFn(it)
		case ast.ItemStruct:
			for _, mID := range it.Methods {
				if m := r.arenas.Item(mID); m != nil && m.Kind == ast.ItemFn {
					r.resolveFn(m)
				}
			}
		}
	}
}

func (r *Resolver) resolveFn(it *ast.Item) {
	scope := r.tab.NewScope(ScopeFunction, r.module, it.Span)
	for _, p := range it.Params {
		r.declare(scope, Symbol{
			Name:  p.Name,
			Kind:  SymbolParam,
			Span:  p.NameSpan,
			Flags: SymbolFlagMutable,
			Type:  r.annotation(p.Type),
		}, p.NameSpan)
	}
	if it.Body.IsValid() {
		r.resolveBlockInto(scope, it.Body)
	}
}

// resolveBlockInto resolves the statements of a block statement directly
// in the given scope, without allocating another one. Function bodies use
// this so parameters and top-of-body locals share a scope.
func (r *Resolver) resolveBlockInto(scope ScopeID, blockID ast.StmtID) {
	block := r.arenas.Stmt(blockID)
	if block == nil {
		return
	}
	for _, sID := range block.Stmts {
		r.resolveStmt(scope, sID)
	}
}

func (r *Resolver) resolveStmt(scope ScopeID, id ast.StmtID) {
	st := r.arenas.Stmt(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case ast.StmtVar:
		// The initializer sees the surrounding bindings, not the new one.
		if st.Init.IsValid() {
			r.resolveExpr(scope, st.Init)
		}
		flags := SymbolFlags(0)
		if st.Mutable {
			flags |= SymbolFlagMutable
		}
		r.declare(scope, Symbol{
			Name:  st.Name,
			Kind:  SymbolVar,
			Span:  st.NameSpan,
			Flags: flags,
			Decl:  SymbolDecl{Stmt: id},
			Type:  r.annotation(st.Type),
		}, st.NameSpan)
	case ast.StmtReturn:
		if st.Expr.IsValid() {
			r.resolveExpr(scope, st.Expr)
		}
	case ast.StmtIf:
		r.resolveExpr(scope, st.Cond)
		r.resolveNestedBlock(scope, st.Then)
		if st.Else.IsValid() {
			els := r.arenas.Stmt(st.Else)
			if els != nil && els.Kind == ast.StmtIf {
				r.resolveStmt(scope, st.Else)
			} else {
				r.resolveNestedBlock(scope, st.Else)
			}
		}
	case ast.StmtWhile:
		r.resolveExpr(scope, st.Cond)
		r.resolveNestedBlock(scope, st.Then)
	case ast.StmtFor:
		if st.Expr.IsValid() {
			r.resolveExpr(scope, st.Expr)
		}
		body := r.arenas.Stmt(st.Then)
		span := st.Span
		if body != nil {
			span = body.Span
		}
		loop := r.tab.NewScope(ScopeBlock, scope, span)
		r.declare(loop, Symbol{
			Name:  st.Name,
			Kind:  SymbolVar,
			Span:  st.NameSpan,
			Flags: SymbolFlagMutable,
			Decl:  SymbolDecl{Stmt: id},
		}, st.NameSpan)
		if st.Then.IsValid() {
			r.resolveBlockInto(loop, st.Then)
		}
	case ast.StmtBlock:
		inner := r.tab.NewScope(ScopeBlock, scope, st.Span)
		for _, sID := range st.Stmts {
			r.resolveStmt(inner, sID)
		}
	case ast.StmtExpr:
		if st.Expr.IsValid() {
			r.resolveExpr(scope, st.Expr)
		}
	}
}

// resolveNestedBlock allocates a child scope for an if/while branch.
func (r *Resolver) resolveNestedBlock(scope ScopeID, blockID ast.StmtID) {
	if !blockID.IsValid() {
		return
	}
	block := r.arenas.Stmt(blockID)
	if block == nil {
		return
	}
	inner := r.tab.NewScope(ScopeBlock, scope, block.Span)
	r.resolveBlockInto(inner, blockID)
}

func (r *Resolver) resolveExpr(scope ScopeID, id ast.ExprID) {
	ex := r.arenas.Expr(id)
	if ex == nil {
		return
	}
	switch ex.Kind {
	case ast.ExprIdent:
		sym := r.tab.Resolve(scope, ex.Name)
		if !sym.IsValid() {
			r.report(diag.BindUnresolvedName, ex.Span,
				"cannot find '"+r.arenas.Lookup(ex.Name)+"' in this scope")
			return
		}
		r.tab.Refs[id] = sym
	case ast.ExprUnary, ast.ExprParen:
		r.resolveExpr(scope, ex.Left)
	case ast.ExprBinary, ast.ExprAssign, ast.ExprIndex:
		r.resolveExpr(scope, ex.Left)
		r.resolveExpr(scope, ex.Right)
	case ast.ExprCall:
		r.resolveExpr(scope, ex.Left)
		for _, arg := range ex.Args {
			r.resolveExpr(scope, arg)
		}
	case ast.ExprProperty:
		// The member name binds against the base type, not the scope
		// chain; the checker resolves it.
		r.resolveExpr(scope, ex.Left)
	case ast.ExprArrayLit:
		for _, el := range ex.Args {
			r.resolveExpr(scope, el)
		}
	}
}

// annotation resolves a written type into an interned semantic type.
// Unknown names report a diagnostic and yield the invalid placeholder.
func (r *Resolver) annotation(id ast.TypeID) types.TypeID {
	if !id.IsValid() {
		return types.NoTypeID
	}
	ts := r.arenas.Type(id)
	if ts == nil {
		return types.NoTypeID
	}
	switch ts.Kind {
	case ast.TypeSynNamed:
		symID := r.tab.Resolve(r.module, ts.Name)
		sym := r.tab.Symbols.Get(symID)
		if sym == nil || sym.Kind != SymbolType {
			r.report(diag.BindUnknownType, ts.NameSpan,
				"unknown type '"+r.arenas.Lookup(ts.Name)+"'")
			return types.NoTypeID
		}
		r.tab.TypeRefs[id] = symID
		return sym.Type
	case ast.TypeSynArray:
		return r.tab.Types.Array(r.annotation(ts.Elem))
	case ast.TypeSynOptional:
		return r.tab.Types.Optional(r.annotation(ts.Elem))
	case ast.TypeSynFn:
		params := make([]types.TypeID, 0, len(ts.Params))
		for _, p := range ts.Params {
			params = append(params, r.annotation(p))
		}
		result := r.tab.Types.Builtins().Unit
		if ts.Result.IsValid() {
			result = r.annotation(ts.Result)
		}
		return r.tab.Types.Fn(params, result)
	case ast.TypeSynUnion:
		members := make([]types.TypeID, 0, len(ts.Params))
		for _, m := range ts.Params {
			members = append(members, r.annotation(m))
		}
		return r.tab.Types.Union(members)
	default:
		return types.NoTypeID
	}
}

// declare wraps Table.Declare with the redeclaration diagnostic.
func (r *Resolver) declare(scope ScopeID, sym Symbol, at source.Span) SymbolID {
	if sym.Name == source.NoStringID {
		// Recovered declarations without a name still occupy the arena so
		// back-pointers stay valid, but they are not findable.
		id := r.tab.Symbols.New(sym)
		return id
	}
	id, prev := r.tab.Declare(scope, sym)
	if prev.IsValid() {
		prevSym := r.tab.Symbols.Get(prev)
		d := diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.BindRedeclared,
			Stage:    diag.StageBinder,
			Message:  "'" + r.arenas.Lookup(sym.Name) + "' is declared more than once in this scope",
			Primary:  at,
		}
		if prevSym != nil {
			d = d.WithNote(prevSym.Span, "previous declaration is here")
		}
		if r.reporter != nil {
			r.reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
		}
	}
	return id
}

func (r *Resolver) report(code diag.Code, sp source.Span, msg string) {
	diag.Report(r.reporter, code, diag.SevError, sp, msg)
}
