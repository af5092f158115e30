package token

import "burn/internal/source"

// TriviaKind classifies whitespace and comments attached to tokens.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

// Trivia is a non-semantic source fragment kept so leaf concatenation
// reproduces the input exactly.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
