package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"burn/internal/diag"
	"burn/internal/diagfmt"
	"burn/internal/lexer"
	"burn/internal/source"
	"burn/internal/token"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] file.brn",
	Short: "Tokenize a burn source file",
	Long:  `Tokens prints the token stream of one source file, one token per line`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().Bool("trivia", false, "include attached comments and whitespace counts")
}

func runTokens(cmd *cobra.Command, args []string) error {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}
	file := fileSet.Get(id)

	bag := diag.NewBag(maxDiagnostics(cmd))
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	showTrivia, _ := cmd.Flags().GetBool("trivia")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for {
		tok := lx.Next()
		lc := file.LineCol(tok.Span.Start)
		fmt.Fprintf(w, "%d:%d\t%s\t%q", lc.Line, lc.Col, tok.Kind, tok.Text)
		if showTrivia && len(tok.Leading) > 0 {
			fmt.Fprintf(w, "\t+%d trivia", len(tok.Leading))
		}
		fmt.Fprintln(w)
		if tok.Kind == token.EOF {
			break
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if bag.Len() > 0 {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag.Items(), fileSet, diagfmt.PrettyOpts{
			Color: useColor(cmd, os.Stderr),
		})
	}
	return nil
}
