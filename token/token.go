package token

import "fmt"

// Token is the smallest part in which the code can be divided and still makes
// sense on its own.
type Token struct {
	Type  Type
	Value string
	*Position
}

func (t *Token) String() string {
	return fmt.Sprintf("%s(%q) at %s", t.Type, t.Value, t.Position)
}

// Pos is a byte offset inside a source file.
type Pos int

const NoPos Pos = 0

// Position represents the position of the token in a file. Line and Column
// are 1-based and point at the first character of the token's lexeme.
type Position struct {
	Source string
	Offset Pos
	Line   int
	Column int
}

func (p *Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Source, p.Line, p.Column)
}

// Type is the lexical category of a token. The set is closed: the lexer maps
// every valid span of source to exactly one of these or fails.
type Type uint

const (
	// Literals

	// Number is an integer or floating point number literal.
	Number Type = iota
	// StringLit is a quoted string literal.
	StringLit
	// True is the boolean literal "true".
	True
	// False is the boolean literal "false".
	False
	// Word is an identifier.
	Word

	// Arithmetic operators

	// Add is "+".
	Add
	// Sub is "-".
	Sub
	// Mul is "*".
	Mul
	// Div is "/".
	Div
	// Power is "^".
	Power
	// Mod is "%".
	Mod
	// Rand is the random number operator "~".
	Rand
	// AddSelf is the increment operator "++".
	AddSelf
	// SubSelf is the decrement operator "--".
	SubSelf

	// Compound assignment

	// CompositeAdd is "+=".
	CompositeAdd
	// CompositeSub is "-=".
	CompositeSub
	// CompositeMul is "*=".
	CompositeMul
	// CompositeDiv is "/=".
	CompositeDiv

	// Comparison

	// Gt is ">".
	Gt
	// Lt is "<".
	Lt
	// GtEq is ">=".
	GtEq
	// LtEq is "<=".
	LtEq
	// Eq is "==".
	Eq
	// NotEq is "!=".
	NotEq

	// Logical

	// Not is "!".
	Not
	// Also is the logical and "&&".
	Also
	// Perhaps is the logical or "||".
	Perhaps

	// Bitwise, reserved for future use

	// And is "&".
	And
	// Or is "|".
	Or

	// Assignment and types

	// Assignment is "=".
	Assignment
	// FatArrow is "=>".
	FatArrow
	// Casting is the type operator "->".
	Casting
	// Dot is ".".
	Dot

	// Delimiters

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Semicolon

	// Keywords

	Func
	Var
	If
	Else
	ElseIf
	For
	Break
	Continue
	Return
	Switch
	Case
	New
	Timer

	// Special

	// Newline is a statement separator: "\n", "\r" or "\r\n".
	Newline
	// Eof is the end of the input.
	Eof
)

var typeNames = [...]string{
	Number:       "Number",
	StringLit:    "String",
	True:         "True",
	False:        "False",
	Word:         "Word",
	Add:          "Add",
	Sub:          "Sub",
	Mul:          "Mul",
	Div:          "Div",
	Power:        "Power",
	Mod:          "Mod",
	Rand:         "Rand",
	AddSelf:      "AddSelf",
	SubSelf:      "SubSelf",
	CompositeAdd: "CompositeAdd",
	CompositeSub: "CompositeSub",
	CompositeMul: "CompositeMul",
	CompositeDiv: "CompositeDiv",
	Gt:           "Gt",
	Lt:           "Lt",
	GtEq:         "GtEq",
	LtEq:         "LtEq",
	Eq:           "Eq",
	NotEq:        "NotEq",
	Not:          "Not",
	Also:         "Also",
	Perhaps:      "Perhaps",
	And:          "And",
	Or:           "Or",
	Assignment:   "Assignment",
	FatArrow:     "FatArrow",
	Casting:      "Casting",
	Dot:          "Dot",
	LParen:       "LParen",
	RParen:       "RParen",
	LBrace:       "LBrace",
	RBrace:       "RBrace",
	LBracket:     "LBracket",
	RBracket:     "RBracket",
	Comma:        "Comma",
	Colon:        "Colon",
	Semicolon:    "Semicolon",
	Func:         "Func",
	Var:          "Var",
	If:           "If",
	Else:         "Else",
	ElseIf:       "ElseIf",
	For:          "For",
	Break:        "Break",
	Continue:     "Continue",
	Return:       "Return",
	Switch:       "Switch",
	Case:         "Case",
	New:          "New",
	Timer:        "Timer",
	Newline:      "Newline",
	Eof:          "Eof",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint(t))
}
