package lexer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lexerTest struct {
	Name     string
	Program  string
	Expected []TokenKind
	Values   []string
}

var lexerTests = []lexerTest{
	{
		Name:     "Punctuation",
		Program:  "(){}[],.?:;",
		Expected: []TokenKind{LParen, RParen, LCurly, RCurly, LBracket, RBracket, Comma, Dot, Question, Colon, Semicolon, EOF},
	},
	{
		Name:     "Operators",
		Program:  "- -= -- + += ++ / /= * *= % %= ! != = == > >= < <=",
		Expected: []TokenKind{Minus, MinusAssign, MinusMinus, Plus, PlusAssign, PlusPlus, Divide, DivideAssign, Multiply, MultiplyAssign, Modulo, ModuloAssign, Not, NotEqual, Assign, Equal, Greater, GreaterEqual, Less, LessEqual, EOF},
	},
	{
		Name:     "Keywords",
		Program:  "and break class continue else false fun for if nil or print return super this true var while",
		Expected: []TokenKind{And, Break, Class, Continue, Else, False, Fun, For, If, Nil, Or, Print, Return, Super, This, True, Var, While, EOF},
	},
	{
		Name:     "Identifiers",
		Program:  "foo _bar baz42 classy",
		Expected: []TokenKind{Identifier, Identifier, Identifier, Identifier, EOF},
		Values:   []string{"foo", "_bar", "baz42", "classy", "EOF"},
	},
	{
		Name:     "Numbers",
		Program:  "42 3.14 1e3 2.5E-2 7.",
		Expected: []TokenKind{Integer, Float, Float, Float, Integer, Dot, EOF},
		Values:   []string{"42", "3.14", "1e3", "2.5E-2", "7", ".", "EOF"},
	},
	{
		Name:     "Strings",
		Program:  `"hello" "a\nb" "say \"hi\"" ""`,
		Expected: []TokenKind{String, String, String, String, EOF},
		Values:   []string{"hello", "a\nb", `say "hi"`, "", "EOF"},
	},
	{
		Name:     "Comments",
		Program:  "a // line comment\n/* block /* nested */ still comment */ b",
		Expected: []TokenKind{Identifier, Identifier, EOF},
		Values:   []string{"a", "b", "EOF"},
	},
}

func TestLexer(t *testing.T) {
	for _, test := range lexerTests {
		t.Run(test.Name, func(t *testing.T) {
			lexer := NewLexer(test.Program, "test")
			tokens, errs := lexer.Scan()
			require.Empty(t, errs)

			kinds := make([]TokenKind, 0, len(tokens))
			values := make([]string, 0, len(tokens))
			for _, token := range tokens {
				kinds = append(kinds, token.Kind)
				values = append(values, token.Value)
			}

			assert.Equal(t, test.Expected, kinds, fmt.Sprintf("tokens: %v", tokens))
			if test.Values != nil {
				assert.Equal(t, test.Values, values)
			}
		})
	}
}

func TestLexerLocations(t *testing.T) {
	lexer := NewLexer("var x\n  = 10;", "test")
	tokens, errs := lexer.Scan()
	require.Empty(t, errs)
	require.Len(t, tokens, 6)

	assert.Equal(t, uint(1), tokens[0].Span.Start.Line)
	assert.Equal(t, uint(1), tokens[0].Span.Start.Column)
	assert.Equal(t, uint(3), tokens[0].Span.End.Column)

	assert.Equal(t, uint(1), tokens[1].Span.Start.Line)
	assert.Equal(t, uint(5), tokens[1].Span.Start.Column)

	assert.Equal(t, uint(2), tokens[2].Span.Start.Line)
	assert.Equal(t, uint(3), tokens[2].Span.Start.Column)

	assert.Equal(t, uint(2), tokens[3].Span.Start.Line)
	assert.Equal(t, uint(5), tokens[3].Span.Start.Column)
	assert.Equal(t, uint(6), tokens[3].Span.End.Column)

	assert.Equal(t, "test", tokens[3].Span.Filename)
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		Name    string
		Program string
		Message string
	}{
		{Name: "UnrecognizedCharacter", Program: "var a = #;", Message: "Unrecognized character '#'"},
		{Name: "UnterminatedString", Program: `print "abc;`, Message: "Unterminated string"},
		{Name: "UnterminatedComment", Program: "/* /* */", Message: "Unterminated block comment"},
		{Name: "IntegerOverflow", Program: "99999999999999999999", Message: "Invalid number literal '99999999999999999999'"},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			lexer := NewLexer(test.Program, "test")
			tokens, errs := lexer.Scan()
			require.Len(t, errs, 1)
			assert.Equal(t, test.Message, errs[0].Message)
			assert.Equal(t, EOF, tokens[len(tokens)-1].Kind)
		})
	}
}

func TestLexerCollectsMultipleErrors(t *testing.T) {
	lexer := NewLexer("@ a $ b", "test")
	tokens, errs := lexer.Scan()
	assert.Len(t, errs, 2)
	assert.Len(t, tokens, 3)
}
