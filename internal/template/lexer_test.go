package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestLexer_PlainText(t *testing.T) {
	input := "Hello world"
	tokens, err := NewLexer(input, "test.html").Tokenize()
	require.NoError(t, err)

	require.Len(t, tokens, 2) // TEXT + EOF
	assert.Equal(t, TokenText, tokens[0].Type)
	assert.Equal(t, input, tokens[0].Value)
	assert.Equal(t, TokenEOF, tokens[1].Type)
}

func TestLexer_Interpolation(t *testing.T) {
	tokens, err := NewLexer("Hi {{ user.name }}!", "").Tokenize()
	require.NoError(t, err)

	assert.Equal(t, []TokenType{TokenText, TokenInterpolation, TokenText, TokenEOF}, tokenTypes(tokens))
	assert.Equal(t, "user.name", tokens[1].Value)
	assert.Equal(t, 4, tokens[1].Pos.Column)
}

func TestLexer_NestedBraces(t *testing.T) {
	tokens, err := NewLexer("{{ {a: 1}.a }}{{b}}", "").Tokenize()
	require.NoError(t, err)

	assert.Equal(t, []TokenType{TokenInterpolation, TokenInterpolation, TokenEOF}, tokenTypes(tokens))
	assert.Equal(t, "{a: 1}.a", tokens[0].Value)
	assert.Equal(t, "b", tokens[1].Value)
}

func TestLexer_Blocks(t *testing.T) {
	input := "@if (x) {\n  yes\n} @else {\n  mail me@for.example\n}"
	tokens, err := NewLexer(input, "").Tokenize()
	require.NoError(t, err)

	var blocks []string
	for _, tok := range tokens {
		if tok.Type == TokenBlock {
			blocks = append(blocks, tok.Value)
		}
	}
	assert.Equal(t, []string{"if", "else"}, blocks, "an @ inside a word is text")
	assert.Equal(t, 3, tokens[2].Pos.Line)
}

func TestLexer_UnknownAtIsText(t *testing.T) {
	tokens, err := NewLexer("@Input() @let", "").Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []TokenType{TokenText, TokenEOF}, tokenTypes(tokens))
}

func TestLexer_UnclosedInterpolation(t *testing.T) {
	tokens, err := NewLexer("ok {{ a }} then {{ broken", "card.html").Tokenize()
	require.Error(t, err)

	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, Position{File: "card.html", Line: 1, Column: 17}, lexErr.Pos)
	assert.Contains(t, err.Error(), "card.html:1:17")
	assert.Equal(t, []TokenType{TokenText, TokenInterpolation, TokenText}, tokenTypes(tokens))
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "INTERPOLATION", TokenInterpolation.String())
	assert.Equal(t, "UNKNOWN", TokenType(99).String())
}
