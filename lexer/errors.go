package lexer

import (
	"fmt"

	"github.com/anehta-lang/anehta/token"
)

// ErrorKind classifies a lexical error.
type ErrorKind byte

const (
	// UnexpectedCharacter means a character matched no lexical rule.
	UnexpectedCharacter ErrorKind = iota
	// UnterminatedString means the end of the line or of the input was
	// reached inside a string literal.
	UnterminatedString
	// MalformedNumber means a number literal contained more than one
	// decimal point.
	MalformedNumber
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "unexpected character"
	case UnterminatedString:
		return "unterminated string"
	case MalformedNumber:
		return "malformed number"
	}
	return "unknown"
}

// LexError is a lexical error at the position of the first character of the
// offending lexeme. The lexer performs no recovery of its own: once a
// LexError has been returned, every further call to Next returns the same
// error. Resynchronization, if any, is the caller's policy.
type LexError struct {
	Kind ErrorKind
	Pos  *token.Position
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
}
