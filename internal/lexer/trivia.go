package lexer

import (
	"burn/internal/token"
)

// collectLeadingTrivia gathers whitespace, newlines and comments that
// precede the next significant token into lx.hold.
//   - runs of spaces/tabs coalesce into one TriviaSpace
//   - runs of newlines coalesce into one TriviaNewline
//   - // ... up to the newline -> TriviaLineComment
//   - /* ... */ -> TriviaBlockComment (unterminated runs to the limit)
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\r' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		}

		if b == '/' {
			if lx.scanCommentIntoHold() {
				continue
			}
		}

		break
	}
}

// scanCommentIntoHold consumes // or /* comments. Returns false when the
// slash begins an operator instead.
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	_, next, ok := lx.cursor.Peek2()
	if !ok || (next != '/' && next != '*') {
		return false
	}
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '/' or '*'

	if next == '/' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.pushTrivia(token.TriviaLineComment, start)
		return true
	}

	// block comment; unterminated ones simply run to the limit
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '*' {
			if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				break
			}
		}
		lx.cursor.Bump()
	}
	lx.pushTrivia(token.TriviaBlockComment, start)
	return true
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}
