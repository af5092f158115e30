package store

import (
	"burn/internal/ast"
	"burn/internal/diag"
	"burn/internal/lexer"
	"burn/internal/parser"
	"burn/internal/query"
	"burn/internal/sema"
	"burn/internal/source"
	"burn/internal/symbols"
	"burn/internal/types"
)

// analyzeFull lexes, parses, binds and checks the file from scratch.
func (d *document) analyzeFull(file *source.File, version uint64, maxDiags int) *Snapshot {
	lexBag := diag.NewBag(maxDiags)
	parseBag := diag.NewBag(maxDiags)

	arenas := ast.NewBuilder(ast.DefaultHints(), d.strings)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: lexBag}})
	res := parser.ParseFile(lx, arenas, parser.Options{Reporter: diag.BagReporter{Bag: parseBag}})

	return d.finish(file, version, maxDiags, arenas, res.File, res.Records, lexBag, parseBag)
}

// finish runs the semantic passes over an already-parsed tree and builds
// the snapshot. Incremental and full analysis converge here, which is what
// keeps the two paths observably equivalent.
func (d *document) finish(
	file *source.File,
	version uint64,
	maxDiags int,
	arenas *ast.Builder,
	root ast.FileID,
	records []parser.ItemRecord,
	lexBag, parseBag *diag.Bag,
) *Snapshot {
	bindBag := diag.NewBag(maxDiags)
	checkBag := diag.NewBag(maxDiags)

	tab := symbols.NewTable(symbols.Hints{}, d.strings, types.NewInterner())
	bound := symbols.Resolve(arenas, root, tab, diag.BagReporter{Bag: bindBag})
	checked := sema.Check(arenas, root, sema.Options{
		Reporter: diag.BagReporter{Bag: checkBag},
		Table:    tab,
	})

	// Live grammar contexts come from the item records, so context spans
	// allocated by items replaced in an earlier incremental splice never
	// leak into completion.
	var contexts []ast.ContextSpan
	for _, rec := range records {
		contexts = append(contexts, arenas.ContextsInRange(rec.From, rec.To)...)
	}

	return &Snapshot{
		Version: version,
		Model: &query.Snapshot{
			File:      file,
			Arenas:    arenas,
			Root:      root,
			Table:     tab,
			Module:    bound.Module,
			ExprTypes: checked.ExprTypes,
			Contexts:  contexts,
		},
		Diags:      diag.Aggregate(lexBag, parseBag, bindBag, checkBag),
		records:    records,
		syntaxErrs: lexBag.Len() + parseBag.Len(),
	}
}
