package lexer

import (
	"strings"
	"testing"

	"github.com/anehta-lang/anehta/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexNumber(t *testing.T) {
	testLex(t, "24", []expectedToken{
		{"24", token.Number},
	})

	testLex(t, "24.56", []expectedToken{
		{"24.56", token.Number},
	})

	// a trailing decimal point still belongs to the literal
	testLex(t, "3.", []expectedToken{
		{"3.", token.Number},
	})

	// the literal ends at the first character that is not a digit or a dot
	testLex(t, "12a4", []expectedToken{
		{"12", token.Number},
		{"a4", token.Word},
	})
}

func TestLexNumberMalformed(t *testing.T) {
	testLexError(t, "3.14.5", MalformedNumber, 1, 1)
	testLexError(t, "1..5", MalformedNumber, 1, 1)
	testLexError(t, "x = 1.2.3", MalformedNumber, 1, 5)
}

func TestLexString(t *testing.T) {
	testLex(t, `"hello"`, []expectedToken{
		{`"hello"`, token.StringLit},
	})

	// escapes are kept raw, the value is the literal lexeme
	testLex(t, `"a\"b" "c\\"`, []expectedToken{
		{`"a\"b"`, token.StringLit},
		{`"c\\"`, token.StringLit},
	})

	testLex(t, `""`, []expectedToken{
		{`""`, token.StringLit},
	})
}

func TestLexStringUnterminated(t *testing.T) {
	// at eof, with the error on the opening quote
	testLexError(t, `"unterminated`, UnterminatedString, 1, 1)
	testLexError(t, `x = "oops`, UnterminatedString, 1, 5)

	// string literals are single line
	testLexError(t, "\"first\nsecond\"", UnterminatedString, 1, 1)

	// a backslash cannot escape the end of the line or of the input
	testLexError(t, `"half\`, UnterminatedString, 1, 1)
	testLexError(t, "\"half\\\n\"", UnterminatedString, 1, 1)
}

func TestLexWord(t *testing.T) {
	testLex(t, "foo _bar myVar123 héllo", []expectedToken{
		{"foo", token.Word},
		{"_bar", token.Word},
		{"myVar123", token.Word},
		{"héllo", token.Word},
	})
}

func TestLexKeywords(t *testing.T) {
	testLex(t, "func var if else elseif for break continue return switch case new timer true false", []expectedToken{
		{"func", token.Func},
		{"var", token.Var},
		{"if", token.If},
		{"else", token.Else},
		{"elseif", token.ElseIf},
		{"for", token.For},
		{"break", token.Break},
		{"continue", token.Continue},
		{"return", token.Return},
		{"switch", token.Switch},
		{"case", token.Case},
		{"new", token.New},
		{"timer", token.Timer},
		{"true", token.True},
		{"false", token.False},
	})

	// keywords are matched case sensitively and on the whole word only
	testLex(t, "format True iff", []expectedToken{
		{"format", token.Word},
		{"True", token.Word},
		{"iff", token.Word},
	})
}

func TestLexSingleCharOperators(t *testing.T) {
	testLex(t, "+ - * / ^ % ~ ! > < = & | . , : ; ( ) { } [ ]", []expectedToken{
		{"+", token.Add},
		{"-", token.Sub},
		{"*", token.Mul},
		{"/", token.Div},
		{"^", token.Power},
		{"%", token.Mod},
		{"~", token.Rand},
		{"!", token.Not},
		{">", token.Gt},
		{"<", token.Lt},
		{"=", token.Assignment},
		{"&", token.And},
		{"|", token.Or},
		{".", token.Dot},
		{",", token.Comma},
		{":", token.Colon},
		{";", token.Semicolon},
		{"(", token.LParen},
		{")", token.RParen},
		{"{", token.LBrace},
		{"}", token.RBrace},
		{"[", token.LBracket},
		{"]", token.RBracket},
	})
}

func TestLexDoubleCharOperators(t *testing.T) {
	testLex(t, "++ -- += -= *= /= -> => >= <= == != && ||", []expectedToken{
		{"++", token.AddSelf},
		{"--", token.SubSelf},
		{"+=", token.CompositeAdd},
		{"-=", token.CompositeSub},
		{"*=", token.CompositeMul},
		{"/=", token.CompositeDiv},
		{"->", token.Casting},
		{"=>", token.FatArrow},
		{">=", token.GtEq},
		{"<=", token.LtEq},
		{"==", token.Eq},
		{"!=", token.NotEq},
		{"&&", token.Also},
		{"||", token.Perhaps},
	})
}

// Feeding the first character of every two-character operator followed by a
// non-matching one must yield the one-character token and a fresh token
// starting at the very next character.
func TestLexOperatorPrefixes(t *testing.T) {
	cases := []struct {
		input string
		typ   token.Type
	}{
		{"+x", token.Add},
		{"-x", token.Sub},
		{"*x", token.Mul},
		{"/x", token.Div},
		{"=x", token.Assignment},
		{">x", token.Gt},
		{"<x", token.Lt},
		{"!x", token.Not},
		{"&x", token.And},
		{"|x", token.Or},
	}

	for _, c := range cases {
		testLex(t, c.input, []expectedToken{
			{c.input[:1], c.typ},
			{"x", token.Word},
		})

		tokens := lexAll(t, c.input)
		require.Len(t, tokens, 3, "input %q", c.input)
		assert.Equal(t, 1, tokens[0].Column, "input %q", c.input)
		assert.Equal(t, 2, tokens[1].Column, "input %q", c.input)
	}
}

func TestLexNewline(t *testing.T) {
	testLex(t, "a\nb", []expectedToken{
		{"a", token.Word},
		{"\n", token.Newline},
		{"b", token.Word},
	})

	// \r\n is a single newline, never two
	testLex(t, "x\r\ny\rz", []expectedToken{
		{"x", token.Word},
		{"\r\n", token.Newline},
		{"y", token.Word},
		{"\r", token.Newline},
		{"z", token.Word},
	})
}

func TestLexComment(t *testing.T) {
	// line comments are skipped, but the newline ending them is not
	testLex(t, "a // the rest is ignored\nb", []expectedToken{
		{"a", token.Word},
		{"\n", token.Newline},
		{"b", token.Word},
	})

	testLex(t, "// only a comment", nil)

	// no space needed before the comment, and /= is still an operator
	testLex(t, "a/2 //half\nb /= 2", []expectedToken{
		{"a", token.Word},
		{"/", token.Div},
		{"2", token.Number},
		{"\n", token.Newline},
		{"b", token.Word},
		{"/=", token.CompositeDiv},
		{"2", token.Number},
	})
}

func TestLexUnexpectedCharacter(t *testing.T) {
	testLexError(t, "@", UnexpectedCharacter, 1, 1)
	testLexError(t, "a = €", UnexpectedCharacter, 1, 5)
	testLexError(t, "x\n?", UnexpectedCharacter, 2, 1)
}

func TestLexPositions(t *testing.T) {
	tokens := lexAll(t, "ab + c")
	require.Len(t, tokens, 4)

	assert.Equal(t, 1, tokens[0].Column)
	assert.Equal(t, 4, tokens[1].Column)
	assert.Equal(t, 6, tokens[2].Column)

	// eof sits just past the last character
	assert.Equal(t, token.Eof, tokens[3].Type)
	assert.Equal(t, 7, tokens[3].Column)

	for _, tk := range tokens {
		assert.Equal(t, 1, tk.Line)
		assert.Equal(t, "test", tk.Source)
	}
}

func TestLexPositionsMultiline(t *testing.T) {
	tokens := lexAll(t, "a\n  b\r\nc")
	require.Len(t, tokens, 6)

	cases := []struct {
		typ  token.Type
		line int
		col  int
	}{
		{token.Word, 1, 1},
		{token.Newline, 1, 2},
		{token.Word, 2, 3},
		{token.Newline, 2, 4},
		{token.Word, 3, 1},
		{token.Eof, 3, 2},
	}

	for i, c := range cases {
		assert.Equal(t, c.typ, tokens[i].Type, "type of token %d", i)
		assert.Equal(t, c.line, tokens[i].Line, "line of token %d", i)
		assert.Equal(t, c.col, tokens[i].Column, "column of token %d", i)
	}
}

func TestLexEmpty(t *testing.T) {
	tokens := lexAll(t, "")
	require.Len(t, tokens, 1)
	assert.Equal(t, token.Eof, tokens[0].Type)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Column)
}

func TestLexEofIdempotent(t *testing.T) {
	l := New("test", strings.NewReader("1"))

	tk, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.Number, tk.Type)

	eof, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.Eof, eof.Type)

	for i := 0; i < 3; i++ {
		again, err := l.Next()
		require.NoError(t, err)
		assert.Same(t, eof, again)
	}
}

func TestLexErrorSticky(t *testing.T) {
	l := New("test", strings.NewReader(`1 "x`))

	tk, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.Number, tk.Type)

	_, err = l.Next()
	require.Error(t, err)

	_, again := l.Next()
	assert.Same(t, err, again)
}

// Lexing terminates for any input in a number of steps bounded by its
// length: every call either consumes at least one character, returns Eof
// forever or fails.
func TestLexTerminates(t *testing.T) {
	inputs := []string{
		"",
		"}}{{))((",
		"€€€",
		"\"\"\"",
		"++++++++",
		"....",
		"1 2 3 4 5\n\n\n",
		"\\\\\\",
		strings.Repeat("~", 100),
	}

	for _, input := range inputs {
		l := New("test", strings.NewReader(input))
		for i := 0; i <= len(input)+1; i++ {
			tk, err := l.Next()
			if err != nil {
				break
			}
			if tk.Type == token.Eof {
				break
			}
			require.LessOrEqual(t, i, len(input), "input %q did not terminate", input)
		}
	}
}

func TestLexSum(t *testing.T) {
	testLex(t, "1 + 2", []expectedToken{
		{"1", token.Number},
		{"+", token.Add},
		{"2", token.Number},
	})
}

func TestLexCompositeAssign(t *testing.T) {
	testLex(t, "x += 1\n", []expectedToken{
		{"x", token.Word},
		{"+=", token.CompositeAdd},
		{"1", token.Number},
		{"\n", token.Newline},
	})
}

func TestLexIfStatement(t *testing.T) {
	testLex(t, "if (a == b) { return; }", []expectedToken{
		{"if", token.If},
		{"(", token.LParen},
		{"a", token.Word},
		{"==", token.Eq},
		{"b", token.Word},
		{")", token.RParen},
		{"{", token.LBrace},
		{"return", token.Return},
		{";", token.Semicolon},
		{"}", token.RBrace},
	})
}

const testVarDecl = `var first,second = fucker(1,2,3)`

func TestLexVarDecl(t *testing.T) {
	testLex(t, testVarDecl, []expectedToken{
		{"var", token.Var},
		{"first", token.Word},
		{",", token.Comma},
		{"second", token.Word},
		{"=", token.Assignment},
		{"fucker", token.Word},
		{"(", token.LParen},
		{"1", token.Number},
		{",", token.Comma},
		{"2", token.Number},
		{",", token.Comma},
		{"3", token.Number},
		{")", token.RParen},
	})
}

const testFuncDecl = `func attack(var base -> int) -> int,int{
	return 1,2
}`

func TestLexFuncDecl(t *testing.T) {
	testLex(t, testFuncDecl, []expectedToken{
		{"func", token.Func},
		{"attack", token.Word},
		{"(", token.LParen},
		{"var", token.Var},
		{"base", token.Word},
		{"->", token.Casting},
		{"int", token.Word},
		{")", token.RParen},
		{"->", token.Casting},
		{"int", token.Word},
		{",", token.Comma},
		{"int", token.Word},
		{"{", token.LBrace},
		{"\n", token.Newline},
		{"return", token.Return},
		{"1", token.Number},
		{",", token.Comma},
		{"2", token.Number},
		{"\n", token.Newline},
		{"}", token.RBrace},
	})
}

const testForLoop = `for (var i = 100;i<100;i++){`

func TestLexForLoop(t *testing.T) {
	testLex(t, testForLoop, []expectedToken{
		{"for", token.For},
		{"(", token.LParen},
		{"var", token.Var},
		{"i", token.Word},
		{"=", token.Assignment},
		{"100", token.Number},
		{";", token.Semicolon},
		{"i", token.Word},
		{"<", token.Lt},
		{"100", token.Number},
		{";", token.Semicolon},
		{"i", token.Word},
		{"++", token.AddSelf},
		{")", token.RParen},
		{"{", token.LBrace},
	})
}

const testExpression = `fuck = 100+2*3-4^5+0~100`

func TestLexExpression(t *testing.T) {
	testLex(t, testExpression, []expectedToken{
		{"fuck", token.Word},
		{"=", token.Assignment},
		{"100", token.Number},
		{"+", token.Add},
		{"2", token.Number},
		{"*", token.Mul},
		{"3", token.Number},
		{"-", token.Sub},
		{"4", token.Number},
		{"^", token.Power},
		{"5", token.Number},
		{"+", token.Add},
		{"0", token.Number},
		{"~", token.Rand},
		{"100", token.Number},
	})
}

const testBooleans = `(30+4>4+4+5&&fuck>3)||(30>2)`

func TestLexBooleans(t *testing.T) {
	testLex(t, testBooleans, []expectedToken{
		{"(", token.LParen},
		{"30", token.Number},
		{"+", token.Add},
		{"4", token.Number},
		{">", token.Gt},
		{"4", token.Number},
		{"+", token.Add},
		{"4", token.Number},
		{"+", token.Add},
		{"5", token.Number},
		{"&&", token.Also},
		{"fuck", token.Word},
		{">", token.Gt},
		{"3", token.Number},
		{")", token.RParen},
		{"||", token.Perhaps},
		{"(", token.LParen},
		{"30", token.Number},
		{">", token.Gt},
		{"2", token.Number},
		{")", token.RParen},
	})
}

const testProgram = `var health = 100
var name = "Anehta"

func attack(var base -> int, var bonus -> int) -> int {
	return base + bonus + 1 ~ 20
}

if (health > 80) {
	health = health - attack(10, 5)
} elseif (health > 30) {
	health -= 1
} else {
	health = 0
}

for (;;) {
	break
}
`

func TestTokenize(t *testing.T) {
	require := require.New(t)

	tokens, err := Tokenize("test", strings.NewReader(testProgram))
	require.NoError(err)

	require.NotEmpty(tokens)
	require.Equal(token.Eof, tokens[len(tokens)-1].Type)
	for _, tk := range tokens[:len(tokens)-1] {
		require.NotEqual(token.Eof, tk.Type)
	}

	var count = make(map[token.Type]int)
	for _, tk := range tokens {
		count[tk.Type]++
	}

	require.Equal(4, count[token.Var])
	require.Equal(1, count[token.Func])
	require.Equal(1, count[token.StringLit])
	require.Equal(1, count[token.ElseIf])
	require.Equal(1, count[token.Else])
	require.Equal(1, count[token.Rand])
	require.Equal(1, count[token.CompositeSub])
	require.Equal(2, count[token.Semicolon])
	require.Equal(3, count[token.Casting])
}

func TestTokenizeError(t *testing.T) {
	tokens, err := Tokenize("test", strings.NewReader("var x = \"oops"))
	require.Nil(t, tokens)

	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	require.Equal(t, UnterminatedString, lexErr.Kind)
}

// Token spans never decrease over a pass and no token overlaps the previous
// one.
func TestLexSpansOrdered(t *testing.T) {
	tokens := lexAll(t, testProgram)

	for i := 1; i < len(tokens); i++ {
		prev, cur := tokens[i-1], tokens[i]
		ordered := cur.Line > prev.Line ||
			(cur.Line == prev.Line && cur.Column >= prev.Column+len([]rune(prev.Value)))
		assert.True(t, ordered, "token %d %s overlaps %s", i, cur, prev)
	}
}

type expectedToken struct {
	value string
	typ   token.Type
}

func testLex(t *testing.T, input string, expected []expectedToken) {
	t.Helper()

	tokens := lexAll(t, input)

	require.Equal(t, token.Eof, tokens[len(tokens)-1].Type)
	tokens = tokens[:len(tokens)-1]

	require.Equal(t, len(expected), len(tokens), "input %q", input)
	for i := range tokens {
		assert.Equal(t, expected[i].typ, tokens[i].Type, "type of token %d in %q", i, input)
		assert.Equal(t, expected[i].value, tokens[i].Value, "value of token %d in %q", i, input)
	}
}

func testLexError(t *testing.T, input string, kind ErrorKind, line, col int) {
	t.Helper()

	l := New("test", strings.NewReader(input))
	for {
		tk, err := l.Next()
		if err != nil {
			var lexErr *LexError
			require.ErrorAs(t, err, &lexErr, "input %q", input)
			assert.Equal(t, kind, lexErr.Kind, "kind for input %q", input)
			assert.Equal(t, line, lexErr.Pos.Line, "line for input %q", input)
			assert.Equal(t, col, lexErr.Pos.Column, "column for input %q", input)
			return
		}

		require.NotEqual(t, token.Eof, tk.Type, "input %q did not fail", input)
	}
}

func lexAll(t *testing.T, input string) []*token.Token {
	t.Helper()

	l := New("test", strings.NewReader(input))

	var tokens []*token.Token
	for {
		tk, err := l.Next()
		require.NoError(t, err)

		tokens = append(tokens, tk)
		if tk.Type == token.Eof {
			return tokens
		}
	}
}
