package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/retrobasic/lexer"
	"github.com/jcorbin/retrobasic/token"
)

func TestTokenizeBasics(t *testing.T) {
	toks, err := lexer.Tokenize(`10 LET X = 1 + 2.5 : PRINT X$, "hi"; A%(1)`)
	require.NoError(t, err)

	var kinds []token.Kind
	var texts []string
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
		texts = append(texts, tok.Text)
	}

	assert.Equal(t, []string{
		"10", "LET", "X", "=", "1", "+", "2.5", ":", "PRINT", "X$", ",", "hi", ";", "A%", "(", "1", ")", "",
	}, texts)
	assert.Equal(t, token.EOF, kinds[len(kinds)-1])
}

func TestTokenizeRemSwallowsLine(t *testing.T) {
	toks, err := lexer.Tokenize("10 REM this : is not ; tokenized\n20 END")
	require.NoError(t, err)
	require.True(t, len(toks) >= 3)
	assert.Equal(t, token.Keyword, toks[1].Kind)
	assert.Equal(t, "REM this : is not ; tokenized", toks[1].Text)
	assert.Equal(t, token.Newline, toks[2].Kind)
}

func TestTokenizeCaseInsensitiveKeywords(t *testing.T) {
	toks, err := lexer.Tokenize("print x")
	require.NoError(t, err)
	assert.Equal(t, token.Keyword, toks[0].Kind)
	assert.Equal(t, "PRINT", toks[0].Text)
	assert.Equal(t, token.Ident, toks[1].Kind)
	assert.Equal(t, "X", toks[1].Text)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := lexer.Tokenize(`PRINT "oops`)
	require.Error(t, err)
	var lerr *lexer.Error
	require.ErrorAs(t, err, &lerr)
}

func TestTokenizeRepeatedDecimalPointSplits(t *testing.T) {
	_, err := lexer.Tokenize("10 X = 1.2.3")
	// The number scan stops at the second "." after consuming "1.2"; the
	// trailing ".3" then lexes as a second number token, so a repeated
	// decimal point is not a lexical error.
	require.NoError(t, err)
}

func TestTokenizeOperators(t *testing.T) {
	toks, err := lexer.Tokenize("<= >= <> < > = + - * / ^")
	require.NoError(t, err)
	want := []string{"<=", ">=", "<>", "<", ">", "=", "+", "-", "*", "/", "^"}
	for i, w := range want {
		assert.Equal(t, w, toks[i].Text)
		assert.Equal(t, token.Operator, toks[i].Kind)
	}
}

func TestTokenizeInvalidCharacter(t *testing.T) {
	_, err := lexer.Tokenize("10 X = 1 @ 2")
	require.Error(t, err)
}
