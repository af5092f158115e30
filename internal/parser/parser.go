package parser

import (
	"slices"

	"burn/internal/ast"
	"burn/internal/diag"
	"burn/internal/lexer"
	"burn/internal/source"
	"burn/internal/token"
)

// Options configure one parse.
type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is exhausted.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// ItemRecord couples a parsed top-level item with the arena ranges its
// subtree occupies. The incremental store uses the ranges to shift spans
// of retained items after an edit.
type ItemRecord struct {
	Item ast.ItemID
	From ast.Marks
	To   ast.Marks
}

// Result of parsing one file.
type Result struct {
	File    ast.FileID
	Records []ItemRecord
}

// Parser holds the state for parsing one file. Parsing is total: any
// input, including binary garbage, yields exactly one root node covering
// the whole input, with Error items where recovery skipped tokens.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	lastSpan source.Span
}

// ParseFile parses the lexer's whole range into the builder.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(lx.EmptySpan()),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	records := p.parseItems()
	for _, rec := range records {
		p.arenas.PushItem(p.file, rec.Item)
	}
	return Result{File: p.file, Records: records}
}

// ParseItems parses a token range into a sequence of top-level items
// without allocating a file node. Used by the incremental store to reparse
// a single region.
func ParseItems(lx *lexer.Lexer, arenas *ast.Builder, opts Options) []ItemRecord {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	return p.parseItems()
}

func (p *Parser) parseItems() []ItemRecord {
	var records []ItemRecord
	for !p.at(token.EOF) {
		from := p.arenas.Mark()
		itemID, ok := p.parseItem()
		if !ok {
			itemID = p.errorItem()
		}
		records = append(records, ItemRecord{
			Item: itemID,
			From: from,
			To:   p.arenas.Mark(),
		})
	}
	if p.file.IsValid() {
		// The root covers every input byte, leading trivia included, even
		// when no item was parsed at all.
		f := p.arenas.File(p.file)
		src := p.lx.File()
		f.Span = source.Span{File: src.ID, End: src.Size()}
	}
	return records
}

// parseItem dispatches on the first token of a top-level construct.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwImport:
		return p.parseImportItem()
	case token.KwLet, token.KwVar, token.KwConst:
		return p.parseVarItem()
	case token.KwFn:
		return p.parseFnItem()
	case token.KwStruct:
		return p.parseStructItem()
	default:
		p.report(diag.SynUnexpectedTopLevel, diag.SevError, p.lx.Peek().Span,
			"unexpected top-level construct")
		return ast.NoItemID, false
	}
}

// errorItem consumes tokens up to the next top-level starter (or EOF) and
// wraps them in an Error item so the tree still covers the skipped region.
func (p *Parser) errorItem() ast.ItemID {
	start := p.lx.Peek().Span
	span := start
	for !p.at(token.EOF) && !isTopLevelStarter(p.lx.Peek().Kind) {
		tok := p.advance()
		span = span.Cover(tok.Span)
		if tok.Kind == token.Semicolon {
			break
		}
	}
	return p.arenas.NewItem(ast.Item{Kind: ast.ItemError, Span: span})
}

// isTopLevelStarter reports whether k begins a top-level declaration.
func isTopLevelStarter(k token.Kind) bool {
	switch k {
	case token.KwImport, token.KwLet, token.KwVar, token.KwConst, token.KwFn, token.KwStruct:
		return true
	default:
		return false
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}
