package query

import (
	"sort"

	"burn/internal/ast"
	"burn/internal/sema"
	"burn/internal/source"
	"burn/internal/symbols"
)

// CompletionKind classifies one completion entry.
type CompletionKind uint8

const (
	CompleteKeyword CompletionKind = iota
	CompleteVariable
	CompleteParameter
	CompleteFunction
	CompleteType
	CompleteImport
)

func (k CompletionKind) String() string {
	switch k {
	case CompleteKeyword:
		return "keyword"
	case CompleteVariable:
		return "variable"
	case CompleteParameter:
		return "parameter"
	case CompleteFunction:
		return "function"
	case CompleteType:
		return "type"
	case CompleteImport:
		return "import"
	default:
		return "unknown"
	}
}

// CompletionItem is one proposed name.
type CompletionItem struct {
	Name string
	Kind CompletionKind
}

// keyword sets per grammar context, recorded by the parser per region so
// lookup here is a plain table access instead of tree-shape sniffing.
var contextKeywords = map[ast.GrammarContext][]string{
	ast.CtxTopLevel:   {"const", "fn", "import", "let", "struct", "var"},
	ast.CtxStructBody: {"fn"},
	ast.CtxBlock:      {"const", "else", "false", "for", "if", "let", "null", "return", "true", "var", "while"},
	ast.CtxExpr:       {"false", "null", "true"},
	ast.CtxType:       {"fn"},
}

// Completion lists every symbol visible from the innermost scope at the
// offset (shadowed names appear once) plus the keywords legal in the
// grammar context the parser recorded for that region. On the member name
// of a property access it lists the members of the base type instead. The
// result is sorted by name and deterministic.
func (s *Snapshot) Completion(off uint32) []CompletionItem {
	if hit, ok := s.nameAt(off); ok && hit.kind == hitProperty {
		return s.memberCompletions(hit)
	}

	scope := s.Table.ScopeAt(s.Module, off)
	if !scope.IsValid() {
		scope = s.Module
	}

	seen := make(map[string]bool)
	var out []CompletionItem
	for _, symID := range s.Table.Visible(scope) {
		sym := s.Table.Symbols.Get(symID)
		if sym == nil || sym.Name == source.NoStringID {
			continue
		}
		name, ok := s.Table.Strings.Lookup(sym.Name)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, CompletionItem{Name: name, Kind: completionKind(sym.Kind)})
	}

	ctx := ast.ContextAt(s.Contexts, off)
	for _, kw := range contextKeywords[ctx] {
		if !seen[kw] {
			seen[kw] = true
			out = append(out, CompletionItem{Name: kw, Kind: CompleteKeyword})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// memberCompletions lists the fields and methods of the property access
// base: struct members from the type table, builtin members for String
// and arrays.
func (s *Snapshot) memberCompletions(hit nameHit) []CompletionItem {
	prop := s.Arenas.Expr(hit.expr)
	if prop == nil {
		return nil
	}
	base, ok := s.ExprTypes[prop.Left]
	if !ok || s.Table.Types.IsInvalid(base) {
		return nil
	}

	var out []CompletionItem
	if info, ok := s.Table.Types.StructInfo(base); ok {
		for _, f := range info.Fields {
			if name, ok := s.Table.Strings.Lookup(f.Name); ok {
				out = append(out, CompletionItem{Name: name, Kind: CompleteVariable})
			}
		}
		for _, m := range info.Methods {
			if name, ok := s.Table.Strings.Lookup(m.Name); ok {
				out = append(out, CompletionItem{Name: name, Kind: CompleteFunction})
			}
		}
	}
	for _, m := range sema.BuiltinMembers(s.Table.Types, base) {
		kind := CompleteVariable
		if m.Fn {
			kind = CompleteFunction
		}
		out = append(out, CompletionItem{Name: m.Name, Kind: kind})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func completionKind(k symbols.SymbolKind) CompletionKind {
	switch k {
	case symbols.SymbolFunction, symbols.SymbolMethod:
		return CompleteFunction
	case symbols.SymbolParam:
		return CompleteParameter
	case symbols.SymbolType:
		return CompleteType
	case symbols.SymbolImport:
		return CompleteImport
	default:
		return CompleteVariable
	}
}
