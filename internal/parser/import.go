package parser

import (
	"burn/internal/ast"
	"burn/internal/token"
)

// parseImportItem parses `import Name [;]`.
func (p *Parser) parseImportItem() (ast.ItemID, bool) {
	kw := p.advance() // import
	span := kw.Span

	name, nameSpan, ok := p.parseIdent("expected module name after 'import'")
	if ok {
		span = span.Cover(nameSpan)
	}
	if p.at(token.Semicolon) {
		span = span.Cover(p.advance().Span)
	}

	return p.arenas.NewItem(ast.Item{
		Kind:     ast.ItemImport,
		Span:     span,
		Name:     name,
		NameSpan: nameSpan,
	}), true
}
