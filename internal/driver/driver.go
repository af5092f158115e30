// Package driver runs batch analysis outside the editor loop: it walks a
// directory of .brn files, analyzes them in parallel and optionally skips
// files whose content hash is already in the disk cache.
package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

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

// Options tune one directory check.
type Options struct {
	// MaxDiagnostics caps the diagnostics kept per analysis stage per
	// file. Zero keeps all.
	MaxDiagnostics int
	// Jobs is the number of parallel workers. Zero or negative picks
	// GOMAXPROCS.
	Jobs int
	// Cache, when non-nil, is consulted by content hash before analysis
	// and updated after it.
	Cache *DiskCache
}

// FileResult is the outcome for one file, in sorted path order.
type FileResult struct {
	Path   string
	FileID source.FileID
	Diags  []diag.Diagnostic
	Cached bool  // diagnostics came from the disk cache
	Err    error // I/O failure; analysis did not run
}

// listBurnFiles returns the sorted list of all *.brn files under dir.
func listBurnFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".brn") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir analyzes every .brn file under dir in parallel. Results come
// back in sorted path order regardless of scheduling. The error return
// covers directory walking and cancellation; per-file problems live in
// the results.
func CheckDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := listBurnFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// The file set is not safe for concurrent mutation, so all loads
	// happen up front.
	results := make([]FileResult, len(files))
	for i, path := range files {
		results[i] = FileResult{Path: path}
		id, err := fileSet.Load(path)
		if err != nil {
			results[i].Err = err
			continue
		}
		results[i].FileID = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range results {
		if results[i].Err != nil {
			continue
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := &results[i]
			file := fileSet.Get(res.FileID)

			if opts.Cache != nil {
				var payload CachedFile
				if hit, err := opts.Cache.Get(file.Hash, &payload); err == nil && hit {
					res.Diags = payload.diagnostics(res.FileID)
					res.Cached = true
					return nil
				}
			}

			res.Diags = analyzeFile(file, opts.MaxDiagnostics)
			if opts.Cache != nil {
				// Cache misses are best effort; analysis already succeeded.
				_ = opts.Cache.Put(file.Hash, cacheFile(res.Path, res.Diags))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// analyzeFile runs the full pipeline over one file and returns the
// aggregated diagnostics.
func analyzeFile(file *source.File, maxDiags int) []diag.Diagnostic {
	_, diags := Analyze(file, maxDiags)
	return diags
}

// Analyze runs the full pipeline over one file and returns the semantic
// model alongside the aggregated diagnostics.
func Analyze(file *source.File, maxDiags int) (*query.Snapshot, []diag.Diagnostic) {
	lexBag := diag.NewBag(maxDiags)
	parseBag := diag.NewBag(maxDiags)
	bindBag := diag.NewBag(maxDiags)
	checkBag := diag.NewBag(maxDiags)

	strs := source.NewInterner()
	arenas := ast.NewBuilder(ast.DefaultHints(), strs)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: lexBag}})
	res := parser.ParseFile(lx, arenas, parser.Options{Reporter: diag.BagReporter{Bag: parseBag}})

	tab := symbols.NewTable(symbols.Hints{}, strs, types.NewInterner())
	bound := symbols.Resolve(arenas, res.File, tab, diag.BagReporter{Bag: bindBag})
	checked := sema.Check(arenas, res.File, sema.Options{
		Reporter: diag.BagReporter{Bag: checkBag},
		Table:    tab,
	})

	var contexts []ast.ContextSpan
	for _, rec := range res.Records {
		contexts = append(contexts, arenas.ContextsInRange(rec.From, rec.To)...)
	}
	model := &query.Snapshot{
		File:      file,
		Arenas:    arenas,
		Root:      res.File,
		Table:     tab,
		Module:    bound.Module,
		ExprTypes: checked.ExprTypes,
		Contexts:  contexts,
	}
	return model, diag.Aggregate(lexBag, parseBag, bindBag, checkBag)
}

// ErrorCount tallies the error-severity diagnostics across results.
func ErrorCount(results []FileResult) int {
	count := 0
	for _, res := range results {
		if res.Err != nil {
			count++
			continue
		}
		for _, d := range res.Diags {
			if d.Severity >= diag.SevError {
				count++
			}
		}
	}
	return count
}
