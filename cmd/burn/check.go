package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"burn/internal/diag"
	"burn/internal/diagfmt"
	"burn/internal/driver"
	"burn/internal/project"
	"burn/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [dir]",
	Short: "Analyze every .brn file under a directory",
	Long: `Check runs the full analysis pipeline (lexing, parsing, binding,
type checking) over a directory tree. Without an argument it starts from
the project root found via burn.toml, or the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "parallel workers (0 = number of CPUs)")
	checkCmd.Flags().Bool("no-cache", false, "skip the analysis disk cache")
	checkCmd.Flags().Bool("strict", false, "fail on warnings too")
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts := driver.Options{MaxDiagnostics: maxDiagnostics(cmd)}
	strict, _ := cmd.Flags().GetBool("strict")
	opts.Jobs, _ = cmd.Flags().GetInt("jobs")

	dir := ""
	if len(args) == 1 {
		dir = args[0]
	}
	if strings.HasSuffix(dir, ".brn") {
		return checkFile(cmd, dir, opts.MaxDiagnostics, strict)
	}
	if manifest, ok, err := project.Discover(dir); err != nil {
		return err
	} else if ok {
		if dir == "" {
			dir = manifest.SourceRoot()
		}
		if manifest.MaxDiagnostics > 0 {
			opts.MaxDiagnostics = manifest.MaxDiagnostics
		}
		if opts.Jobs == 0 {
			opts.Jobs = manifest.Jobs
		}
		strict = strict || manifest.Strict
	}
	if dir == "" {
		dir = "."
	}

	if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
		cache, err := driver.OpenDiskCache("burn")
		if err == nil {
			opts.Cache = cache
		}
		// A cache that fails to open just means a cold run.
	}

	fileSet, results, err := driver.CheckDir(cmd.Context(), dir, opts)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
			continue
		}
		switch format {
		case "pretty":
			diagfmt.Pretty(os.Stderr, res.Diags, fileSet, diagfmt.PrettyOpts{
				Color:     useColor(cmd, os.Stderr),
				ShowNotes: true,
			})
		case "json":
			if err := diagfmt.JSON(os.Stdout, res.Diags, fileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
			}); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	}

	bad := driver.ErrorCount(results)
	if strict {
		for _, res := range results {
			for _, d := range res.Diags {
				if d.Severity < diag.SevError {
					bad++
				}
			}
		}
	}
	if bad > 0 {
		return fmt.Errorf("check found %d problem(s)", bad)
	}
	fmt.Fprintf(os.Stdout, "checked %d file(s), no problems\n", len(results))
	return nil
}

// checkFile analyzes a single source file.
func checkFile(cmd *cobra.Command, path string, maxDiags int, strict bool) error {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}

	_, diags := driver.Analyze(fileSet.Get(id), maxDiags)
	diagfmt.Pretty(os.Stderr, diags, fileSet, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowNotes: true,
	})

	bad := 0
	for _, d := range diags {
		if d.Severity >= diag.SevError || strict {
			bad++
		}
	}
	if bad > 0 {
		return fmt.Errorf("check found %d problem(s)", bad)
	}
	fmt.Fprintln(os.Stdout, "no problems")
	return nil
}
