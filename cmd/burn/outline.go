package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"burn/internal/diagfmt"
	"burn/internal/driver"
	"burn/internal/query"
	"burn/internal/source"
)

var outlineCmd = &cobra.Command{
	Use:   "outline [flags] file.brn",
	Short: "Print the declaration outline of a burn source file",
	Long: `Outline lists the declarations of one source file as an indented
tree: functions, variables, structs with their fields and methods. Broken
declarations still appear as long as their name was parsed.`,
	Args: cobra.ExactArgs(1),
	RunE: runOutline,
}

func runOutline(cmd *cobra.Command, args []string) error {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}
	file := fileSet.Get(id)

	model, diags := driver.Analyze(file, maxDiagnostics(cmd))
	printOutline(file, model.Outline(), 0)

	if len(diags) > 0 {
		diagfmt.Pretty(os.Stderr, diags, fileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		})
	}
	return nil
}

func printOutline(file *source.File, items []query.OutlineItem, depth int) {
	for _, it := range items {
		lc := file.LineCol(it.NameSpan.Start)
		fmt.Fprintf(os.Stdout, "%s%s %s\t%d:%d\n",
			strings.Repeat("  ", depth), it.Kind, it.Name, lc.Line, lc.Col)
		printOutline(file, it.Children, depth+1)
	}
}
