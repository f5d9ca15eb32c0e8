package report

import (
	"github.com/anehta-lang/anehta/lexer"
	"github.com/anehta-lang/anehta/source"
	"github.com/anehta-lang/anehta/token"
	"github.com/fatih/color"
)

type ReportType byte

const (
	OtherError ReportType = iota
	LexicalError
	Info
	Warning
)

func (t ReportType) String() string {
	switch t {
	case LexicalError:
		return "lexical error"
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return "error"
	}
}

func (t ReportType) Color() func(string, ...interface{}) string {
	switch t {
	case Info:
		return color.CyanString
	case Warning:
		return color.YellowString
	default:
		return color.RedString
	}
}

type Report interface {
	Type() ReportType
	Message() string
	Pos() token.Pos
	Region() *Region
}

type BaseReport struct {
	typ    ReportType
	pos    token.Pos
	msg    string
	region *Region
}

func NewBaseReport(typ ReportType, pos token.Pos, msg string, region *Region) BaseReport {
	return BaseReport{typ, pos, msg, region}
}

func (r BaseReport) Type() ReportType { return r.typ }
func (r BaseReport) Message() string  { return r.msg }
func (r BaseReport) Pos() token.Pos   { return r.pos }
func (r BaseReport) Region() *Region  { return r.region }

// Region is a range of byte offsets in a source file.
type Region struct {
	Start token.Pos
	End   token.Pos
}

// Diagnostic is a report resolved against its source file, ready to be shown
// to the user.
type Diagnostic struct {
	Type    ReportType
	Message string
	Pos     source.LinePos
	Region  *source.Snippet
}

// NewLexError converts the structured error returned by the lexer into a
// report pointing at the offending lexeme.
func NewLexError(err *lexer.LexError) Report {
	return NewBaseReport(
		LexicalError,
		err.Pos.Offset,
		err.Msg,
		&Region{err.Pos.Offset, err.Pos.Offset + 1},
	)
}
