package lexer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/anehta-lang/anehta/token"
)

type stateFunc func(*Lexer) (stateFunc, error)

const (
	newLine        = '\n'
	carriageReturn = '\r'

	quote      = '"'
	backslash  = '\\'
	underscore = '_'
	plus       = '+'
	dash       = '-'
	star       = '*'
	slash      = '/'
	bang       = '!'
	eq         = '='
	gt         = '>'
	lt         = '<'
	amp        = '&'
	pipe       = '|'

	numDigits = "0123456789"
)

// Lexer is in charge of extracting tokens from a source.
type Lexer struct {
	source  string
	reader  *bufio.Reader
	state   stateFunc
	pos     int
	start   int
	width   int
	line    int
	linePos int
	word    []rune
	pending []*token.Token
	err     *LexError
	eof     *token.Token
}

// New creates a new lexer for the input.
func New(source string, input io.Reader) *Lexer {
	return &Lexer{
		source: source,
		reader: bufio.NewReader(input),
		state:  lexToken,
		line:   1,
	}
}

// Next returns the next token in the input. Whitespace and comments are
// skipped, newlines are not: they are statement separators and produce their
// own token. After the input has been exhausted every call returns the same
// Eof token, and after a lexical error every call returns the same error.
func (l *Lexer) Next() (*token.Token, error) {
	for {
		if len(l.pending) > 0 {
			t := l.pending[0]
			l.pending = l.pending[1:]
			return t, nil
		}

		if l.err != nil {
			return nil, l.err
		}

		if l.state == nil {
			return l.eof, nil
		}

		var err error
		l.state, err = l.state(l)
		if err == io.EOF {
			l.ignore()
			l.emitEOF()
			l.state = nil
		} else if err != nil {
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				return nil, err
			}
			l.err = lexErr
			l.state = nil
		}
	}
}

// Tokenize scans the whole input and returns all of its tokens, ending with
// exactly one Eof token, or the first lexical error encountered.
func Tokenize(source string, input io.Reader) ([]*token.Token, error) {
	l := New(source, input)

	var tokens []*token.Token
	for {
		t, err := l.Next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, t)
		if t.Type == token.Eof {
			return tokens, nil
		}
	}
}

// next returns the next rune in the input or io.EOF if none are left.
func (l *Lexer) next() (r rune, err error) {
	r, l.width, err = l.reader.ReadRune()
	if err != nil {
		return 0, err
	}

	l.pos += l.width
	l.linePos++
	l.word = append(l.word, r)
	return r, nil
}

// backup steps back to the latest consumed rune.
func (l *Lexer) backup() error {
	l.pos -= l.width
	l.linePos--

	if len(l.word) > 0 {
		l.word = l.word[:len(l.word)-1]
	}

	return l.reader.UnreadRune()
}

func (l *Lexer) peekWord() string {
	return string(l.word)
}

// emit hands the pending word over as a token of the given type.
func (l *Lexer) emit(t token.Type) {
	l.pending = append(l.pending, &token.Token{
		Type:  t,
		Value: l.peekWord(),
		Position: &token.Position{
			Source: l.source,
			Offset: token.Pos(l.start),
			Line:   l.line,
			Column: l.linePos - len(l.word) + 1,
		},
	})
	l.word = nil
	l.start = l.pos
}

// emitWord emits the scanned word as its keyword token if it is a reserved
// word, or as a plain Word otherwise.
func (l *Lexer) emitWord() {
	if t, ok := keywords[l.peekWord()]; ok {
		l.emit(t)
	} else {
		l.emit(token.Word)
	}
}

// emitEOF emits the Eof token just past the last character. The token is
// remembered so further calls to Next keep returning it.
func (l *Lexer) emitEOF() {
	l.eof = &token.Token{
		Type: token.Eof,
		Position: &token.Position{
			Source: l.source,
			Offset: token.Pos(l.pos),
			Line:   l.line,
			Column: l.linePos + 1,
		},
	}
	l.pending = append(l.pending, l.eof)
}

// ignore skips over the pending input before this point.
func (l *Lexer) ignore() {
	l.start = l.pos
	l.word = nil
}

// accept consumes a rune if it's from the valid set and reports whether it
// was accepted. The end of the input is never accepted.
func (l *Lexer) accept(valid string) (bool, error) {
	r, err := l.next()
	if err == io.EOF {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	if strings.IndexRune(valid, r) >= 0 {
		return true, nil
	}

	return false, l.backup()
}

// acceptRun consumes a run of runes from the valid set given.
func (l *Lexer) acceptRun(valid string) error {
	for {
		ok, err := l.accept(valid)
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}
	}
}

// pair emits two if the rune that follows is second, and one otherwise.
// Every two-character operator requires exactly its second character: on any
// other rune nothing further is consumed, so the next lexeme starts fresh.
func (l *Lexer) pair(second rune, two, one token.Type) error {
	ok, err := l.accept(string(second))
	if err != nil {
		return err
	}

	if ok {
		l.emit(two)
	} else {
		l.emit(one)
	}
	return nil
}

// newLine increments the line and sets the new line start.
func (l *Lexer) newLine() {
	l.line++
	l.linePos = 0
}

// fail returns a lexical error located at the start of the pending word.
func (l *Lexer) fail(kind ErrorKind, format string, args ...interface{}) error {
	return &LexError{
		Kind: kind,
		Pos: &token.Position{
			Source: l.source,
			Offset: token.Pos(l.start),
			Line:   l.line,
			Column: l.linePos - len(l.word) + 1,
		},
		Msg: fmt.Sprintf(format, args...),
	}
}

// scanNumber scans a run of digits with at most one decimal point and
// reports whether the literal is well formed. A second decimal point glued
// to the literal makes it ambiguous and is rejected.
func (l *Lexer) scanNumber() (bool, error) {
	if err := l.acceptRun(numDigits); err != nil {
		return false, err
	}

	ok, err := l.accept(".")
	if err != nil {
		return false, err
	}

	if ok {
		if err := l.acceptRun(numDigits); err != nil {
			return false, err
		}
	}

	again, err := l.accept(".")
	if err != nil {
		return false, err
	}

	return !again, nil
}

// lexToken scans the start of the next lexeme and dispatches to the state
// that knows how to finish it. Two-character operators are always checked
// before their one-character prefix.
func lexToken(l *Lexer) (stateFunc, error) {
	r, err := l.next()
	if err != nil {
		return nil, err
	}

	switch {
	case r == newLine:
		l.emit(token.Newline)
		l.newLine()
		return lexToken, nil
	case r == carriageReturn:
		// \r\n counts as a single newline
		if _, err := l.accept("\n"); err != nil {
			return nil, err
		}
		l.emit(token.Newline)
		l.newLine()
		return lexToken, nil
	case isSpace(r):
		return lexSpaces, nil
	case r == quote:
		return lexString, nil
	case isNumeric(r):
		return lexNumber, nil
	case isWordStart(r):
		return lexWord, nil
	case r == plus:
		return lexPlus, nil
	case r == dash:
		return lexMinus, nil
	case r == slash:
		return lexSlash, nil
	case r == eq:
		return lexEq, nil
	case r == star:
		return lexToken, l.pair('=', token.CompositeMul, token.Mul)
	case r == bang:
		return lexToken, l.pair('=', token.NotEq, token.Not)
	case r == gt:
		return lexToken, l.pair('=', token.GtEq, token.Gt)
	case r == lt:
		return lexToken, l.pair('=', token.LtEq, token.Lt)
	case r == amp:
		return lexToken, l.pair('&', token.Also, token.And)
	case r == pipe:
		return lexToken, l.pair('|', token.Perhaps, token.Or)
	default:
		if t, ok := singleTokens[r]; ok {
			l.emit(t)
			return lexToken, nil
		}
		return nil, l.fail(UnexpectedCharacter, "invalid syntax: %q", l.peekWord())
	}
}

// lexPlus scans "++", "+=" or "+". The "+" is already consumed.
func lexPlus(l *Lexer) (stateFunc, error) {
	ok, err := l.accept("+")
	if err != nil {
		return nil, err
	}

	if ok {
		l.emit(token.AddSelf)
		return lexToken, nil
	}

	return lexToken, l.pair('=', token.CompositeAdd, token.Add)
}

// lexMinus scans "--", "-=", "->" or "-". The "-" is already consumed.
func lexMinus(l *Lexer) (stateFunc, error) {
	ok, err := l.accept("-")
	if err != nil {
		return nil, err
	}

	if ok {
		l.emit(token.SubSelf)
		return lexToken, nil
	}

	ok, err = l.accept(">")
	if err != nil {
		return nil, err
	}

	if ok {
		l.emit(token.Casting)
		return lexToken, nil
	}

	return lexToken, l.pair('=', token.CompositeSub, token.Sub)
}

// lexEq scans "==", "=>" or "=". The "=" is already consumed.
func lexEq(l *Lexer) (stateFunc, error) {
	ok, err := l.accept("=")
	if err != nil {
		return nil, err
	}

	if ok {
		l.emit(token.Eq)
		return lexToken, nil
	}

	return lexToken, l.pair('>', token.FatArrow, token.Assignment)
}

// lexSlash scans "//" comments, "/=" or "/". The "/" is already consumed.
func lexSlash(l *Lexer) (stateFunc, error) {
	ok, err := l.accept("/")
	if err != nil {
		return nil, err
	}

	if ok {
		return lexComment, nil
	}

	return lexToken, l.pair('=', token.CompositeDiv, token.Div)
}

// lexComment scans a line comment. The "//" is already consumed. The newline
// ending the comment is left for the next lexeme, so comments never swallow
// the statement separator.
func lexComment(l *Lexer) (stateFunc, error) {
	for {
		r, err := l.next()
		if err == io.EOF {
			l.ignore()
			return nil, io.EOF
		}

		if err != nil {
			return nil, err
		}

		if isEOL(r) {
			if err := l.backup(); err != nil {
				return nil, err
			}

			l.ignore()
			return lexToken, nil
		}
	}
}

// lexSpaces scans a run of spaces and tabs, which are never emitted.
func lexSpaces(l *Lexer) (stateFunc, error) {
	for {
		r, err := l.next()
		if err == io.EOF {
			l.ignore()
			return nil, io.EOF
		}

		if err != nil {
			return nil, err
		}

		if !isSpace(r) {
			if err := l.backup(); err != nil {
				return nil, err
			}

			l.ignore()
			return lexToken, nil
		}
	}
}

// lexNumber scans a number. The first digit is already consumed.
func lexNumber(l *Lexer) (stateFunc, error) {
	ok, err := l.scanNumber()
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, l.fail(MalformedNumber, "bad number syntax: %q", l.peekWord())
	}

	l.emit(token.Number)
	return lexToken, nil
}

// lexString scans a quoted string. The first quote is already consumed. A
// backslash escapes the character after it; a raw newline ends the line
// before the string is closed and is an error.
func lexString(l *Lexer) (stateFunc, error) {
	for {
		r, err := l.next()
		if err == io.EOF {
			return nil, l.fail(UnterminatedString, "quoted string not closed properly: %q", l.peekWord())
		}

		if err != nil {
			return nil, err
		}

		switch {
		case r == quote:
			l.emit(token.StringLit)
			return lexToken, nil
		case isEOL(r):
			return nil, l.fail(UnterminatedString, "quoted string not closed properly: %q", l.peekWord())
		case r == backslash:
			rn, err := l.next()
			if err == io.EOF {
				return nil, l.fail(UnterminatedString, "quoted string not closed properly: %q", l.peekWord())
			}

			if err != nil {
				return nil, err
			}

			if isEOL(rn) {
				return nil, l.fail(UnterminatedString, "quoted string not closed properly: %q", l.peekWord())
			}
		}
	}
}

// lexWord scans an identifier or keyword. The first character is already
// consumed.
func lexWord(l *Lexer) (stateFunc, error) {
	for {
		r, err := l.next()
		if err == io.EOF {
			l.emitWord()
			return nil, io.EOF
		}

		if err != nil {
			return nil, err
		}

		if !isAllowedInWord(r) {
			if err := l.backup(); err != nil {
				return nil, err
			}

			l.emitWord()
			return lexToken, nil
		}
	}
}

// isSpace reports if the rune is a space or a tab.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// isEOL reports if the rune is an end of line character.
func isEOL(r rune) bool {
	return r == '\r' || r == '\n'
}

// isNumeric reports if the rune is a digit.
func isNumeric(r rune) bool {
	return r >= '0' && r <= '9'
}

// isWordStart reports if the rune can start an identifier.
func isWordStart(r rune) bool {
	return unicode.IsLetter(r) || r == underscore
}

// isAllowedInWord reports if the rune is allowed in an identifier.
func isAllowedInWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == underscore
}

var singleTokens = map[rune]token.Type{
	'^': token.Power,
	'%': token.Mod,
	'~': token.Rand,
	'.': token.Dot,
	',': token.Comma,
	':': token.Colon,
	';': token.Semicolon,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
}

var keywords = map[string]token.Type{
	"func":     token.Func,
	"var":      token.Var,
	"if":       token.If,
	"else":     token.Else,
	"elseif":   token.ElseIf,
	"for":      token.For,
	"break":    token.Break,
	"continue": token.Continue,
	"return":   token.Return,
	"switch":   token.Switch,
	"case":     token.Case,
	"new":      token.New,
	"timer":    token.Timer,
	"true":     token.True,
	"false":    token.False,
}
