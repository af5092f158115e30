package diag

// Severity ranks how serious a diagnostic is. The numeric order matters:
// aggregation sorts higher severities first when spans tie, so SevError
// must stay the largest value.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
