package diag

// Stage records which analysis phase produced a diagnostic. It is kept for
// aggregation order and testing; user-facing output does not show it.
type Stage uint8

const (
	StageLexer Stage = iota
	StageParser
	StageBinder
	StageChecker
)

func (s Stage) String() string {
	switch s {
	case StageLexer:
		return "lexer"
	case StageParser:
		return "parser"
	case StageBinder:
		return "binder"
	case StageChecker:
		return "checker"
	}
	return "unknown"
}
