package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cfront-lang/cfront/internal/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexBasicProgram(t *testing.T) {
	tokens, err := Lex(`int x = 1 + 2;`)
	assert.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.KwInt, token.Identifier, token.Assign, token.IntLit,
		token.Plus, token.IntLit, token.Semicolon, token.EOF,
	}, kinds(tokens))
}

func TestLexSkipsCommentsAndPreprocessorLines(t *testing.T) {
	tokens, err := Lex("#include <stdio.h>\n// a comment\nint x; /* block\ncomment */ int y;")
	assert.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.KwInt, token.Identifier, token.Semicolon,
		token.KwInt, token.Identifier, token.Semicolon, token.EOF,
	}, kinds(tokens))
}

func TestLexMultiCharOperatorsGreedy(t *testing.T) {
	tokens, err := Lex("a <<= b; a << b; a < b;")
	assert.NoError(t, err)
	kindsOut := kinds(tokens)
	assert.Contains(t, kindsOut, token.ShlAssign)
	assert.Contains(t, kindsOut, token.Shl)
	assert.Contains(t, kindsOut, token.Lt)
}

func TestLexStringLiteralPreservesEscapes(t *testing.T) {
	tokens, err := Lex(`"a\nb"`)
	assert.NoError(t, err)
	assert.Equal(t, token.StringLit, tokens[0].Kind)
	assert.Equal(t, `a\nb`, tokens[0].Lexeme)
}

func TestLexCharLiteralInnerBytes(t *testing.T) {
	tokens, err := Lex(`'x'`)
	assert.NoError(t, err)
	assert.Equal(t, token.CharLit, tokens[0].Kind)
	assert.Equal(t, "x", tokens[0].Lexeme)

	tokens, err = Lex(`'\n'`)
	assert.NoError(t, err)
	assert.Equal(t, token.CharLit, tokens[0].Kind)
	assert.Equal(t, `\n`, tokens[0].Lexeme)
}

func TestLexUnterminatedStringReportsError(t *testing.T) {
	_, err := Lex(`"abc`)
	var lexErr *Error
	assert.ErrorAs(t, err, &lexErr)
	assert.Equal(t, UnterminatedString, lexErr.Kind)
}

func TestLexUnterminatedCharReportsError(t *testing.T) {
	_, err := Lex(`'a`)
	var lexErr *Error
	assert.ErrorAs(t, err, &lexErr)
	assert.Equal(t, UnterminatedChar, lexErr.Kind)
}

func TestLexInvalidTrailingCharacterOnNumber(t *testing.T) {
	_, err := Lex(`123abc;`)
	var lexErr *Error
	assert.ErrorAs(t, err, &lexErr)
	assert.Equal(t, UnexpectedCharacter, lexErr.Kind)
}

func TestLexFloatLiteral(t *testing.T) {
	tokens, err := Lex(`3.14;`)
	assert.NoError(t, err)
	assert.Equal(t, token.FloatLit, tokens[0].Kind)
	assert.Equal(t, "3.14", tokens[0].Lexeme)
}

func TestLexUnterminatedBlockCommentReachesEOFSilently(t *testing.T) {
	tokens, err := Lex("int x; /* never closed")
	assert.NoError(t, err)
	assert.Equal(t, []token.Kind{token.KwInt, token.Identifier, token.Semicolon, token.EOF}, kinds(tokens))
}

func TestLexTracksLineAndColumn(t *testing.T) {
	tokens, err := Lex("int x;\nint y;")
	assert.NoError(t, err)
	// the second "int" starts the second line.
	var secondInt token.Token
	count := 0
	for _, tok := range tokens {
		if tok.Kind == token.KwInt {
			count++
			if count == 2 {
				secondInt = tok
			}
		}
	}
	assert.Equal(t, 2, secondInt.Line)
	assert.Equal(t, 1, secondInt.Column)
}
