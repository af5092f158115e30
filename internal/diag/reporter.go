package diag

import "burn/internal/source"

// Reporter is the minimal contract analysis phases use to emit diagnostics.
// Implementations: BagReporter (collects into a Bag), DedupReporter (fan-in
// filter), nil-safe no-op when omitted.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// Report is a nil-tolerant convenience wrapper around Reporter.Report.
func Report(r Reporter, code Code, sev Severity, primary source.Span, msg string) {
	if r == nil {
		return
	}
	r.Report(code, sev, primary, msg, nil)
}

// BagReporter writes incoming diagnostics into a Bag, stamping the stage
// derived from the diagnostic code.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev,
		Code:     code,
		Stage:    code.Stage(),
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}
