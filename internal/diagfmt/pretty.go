package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"burn/internal/diag"
	"burn/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	posColor  = color.New(color.Bold)
	noteColor = color.New(color.FgBlue)
)

// Pretty renders diagnostics in a human-readable form, one block per
// diagnostic:
//
//	<path>:<line>:<col>: <SEVERITY> [<CODE>]: <message>
//	  <source line>
//	  ^~~~ underline of the primary span
//
// followed by notes when ShowNotes is set. Diagnostics are expected to be
// sorted already; this function only formats.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range diags {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		paint(opts.Color, posColor, location(d.Primary, fs, opts.PathMode)),
		paint(opts.Color, severityColor(d.Severity), d.Severity.String()),
		"["+d.Code.ID()+"]",
		d.Message)
	underline(w, d.Primary, fs, opts, severityColor(d.Severity))

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprintf(w, "  %s: %s\n",
			paint(opts.Color, noteColor, "note"),
			n.Msg)
		if n.Span.End > 0 || n.Span.Start > 0 {
			underline(w, n.Span, fs, opts, noteColor)
		}
	}
}

// underline prints the source line the span starts on with a caret marker
// under the spanned bytes. Spans reaching past the line underline to the
// line end.
func underline(w io.Writer, sp source.Span, fs *source.FileSet, opts PrettyOpts, c *color.Color) {
	f := fs.Get(sp.File)
	if f == nil || sp.Start > f.Size() {
		return
	}

	lc := f.LineCol(sp.Start)
	line := lineContent(f, sp.Start)
	col := int(lc.Col) - 1
	if col > len(line) {
		col = len(line)
	}

	spanLen := int(sp.End - sp.Start)
	if spanLen < 1 {
		spanLen = 1
	}
	if rest := len(line) - col; spanLen > rest {
		spanLen = max(rest, 1)
	}

	display := strings.ReplaceAll(line, "\t", " ")
	if opts.Width > 4 && runewidth.StringWidth(display) > opts.Width-4 {
		display = runewidth.Truncate(display, opts.Width-4, "...")
	}

	fmt.Fprintf(w, "  %s\n", display)
	marker := "^" + strings.Repeat("~", spanLen-1)
	if opts.Width > 4 && col+spanLen > opts.Width-4 {
		marker = runewidth.Truncate(marker, max(opts.Width-4-col, 1), "")
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", min(col, runewidth.StringWidth(display))), paint(opts.Color, c, marker))
}

// lineContent returns the text of the line containing off, without the
// trailing newline.
func lineContent(f *source.File, off uint32) string {
	start := off
	for start > 0 && f.Content[start-1] != '\n' {
		start--
	}
	end := off
	for end < f.Size() && f.Content[end] != '\n' {
		end++
	}
	return string(f.Content[start:end])
}

func location(sp source.Span, fs *source.FileSet, mode PathMode) string {
	f := fs.Get(sp.File)
	if f == nil {
		return fmt.Sprintf("<unknown>:@%d", sp.Start)
	}
	lc := f.LineCol(sp.Start)
	path := f.Path
	if mode == PathModeBasename {
		path = filepath.Base(path)
	}
	return fmt.Sprintf("%s:%d:%d", path, lc.Line, lc.Col)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func paint(enabled bool, c *color.Color, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}
