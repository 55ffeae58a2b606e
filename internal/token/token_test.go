package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "int", KwInt.String())
	assert.Equal(t, "(", LParen.String())
	assert.Equal(t, "UNKNOWN", Kind(-1).String())
}

func TestKeywordsCoversFortyFiveReservedWords(t *testing.T) {
	// 45 C-family reserved words, true/false/bool/nullptr among them (spec.md §6).
	assert.Len(t, Keywords, 45)
	for _, word := range []string{"int", "char", "float", "double", "bool", "void", "auto", "while", "for", "return"} {
		_, ok := Keywords[word]
		assert.Truef(t, ok, "expected %q to be a keyword", word)
	}
	_, ok := Keywords["string"]
	assert.False(t, ok, "\"string\" must not be a lexer keyword")
}

func TestOperatorsOrderedLongestFirst(t *testing.T) {
	for i := 1; i < len(Operators); i++ {
		assert.LessOrEqual(t, len(Operators[i].Lexeme), len(Operators[i-1].Lexeme))
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: Identifier, Lexeme: "x", Line: 7, Column: 3}
	assert.Equal(t, `IDENTIFIER("x")[7:3]`, tok.String())

	eof := Token{Kind: EOF, Line: 1, Column: 1}
	assert.Equal(t, "EOF[1:1]", eof.String())
}
