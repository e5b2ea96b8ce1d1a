package colorize

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokens(t *testing.T, line string) []chroma.Token {
	t.Helper()
	it, err := HC08.Tokenise(nil, line)
	require.NoError(t, err)
	var out []chroma.Token
	for _, tok := range it.Tokens() {
		if tok.Type == chroma.Text {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func TestLexerListingLine(t *testing.T) {
	toks := tokens(t, "8000: B7 18          STA      <SCC1\n")
	require.Len(t, toks, 6)
	assert.Equal(t, chroma.Token{Type: chroma.NameLabel, Value: "8000"}, toks[0])
	assert.Equal(t, chroma.Token{Type: chroma.Punctuation, Value: ":"}, toks[1])
	assert.Equal(t, chroma.Token{Type: chroma.CommentSpecial, Value: "B7 18"}, toks[2])
	assert.Equal(t, chroma.Token{Type: chroma.Keyword, Value: "STA"}, toks[3])
	assert.Equal(t, chroma.Token{Type: chroma.Operator, Value: "<"}, toks[4])
	assert.Equal(t, chroma.Token{Type: chroma.NameVariable, Value: "SCC1"}, toks[5])
}

func TestLexerOperands(t *testing.T) {
	toks := tokens(t, "8000: 9E E6 05       LDA      $05,SP\n8003: 32             DB       $32\n")
	var types []chroma.TokenType
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []chroma.TokenType{
		chroma.NameLabel, chroma.Punctuation, chroma.CommentSpecial, chroma.Keyword,
		chroma.LiteralNumberHex, chroma.Punctuation, chroma.NameBuiltin,
		chroma.NameLabel, chroma.Punctuation, chroma.CommentSpecial, chroma.KeywordPseudo,
		chroma.LiteralNumberHex,
	}, types)
}

func TestLexerBareLines(t *testing.T) {
	toks := tokens(t, "LDA #$05\nSTA <SCC1\n8004: 81             RTS\nNOP\n")
	var types []chroma.TokenType
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []chroma.TokenType{
		chroma.Keyword, chroma.Operator, chroma.LiteralNumberHex,
		chroma.Keyword, chroma.Operator, chroma.NameVariable,
		chroma.NameLabel, chroma.Punctuation, chroma.CommentSpecial, chroma.Keyword,
		chroma.Keyword,
	}, types)
	assert.Equal(t, "NOP", toks[len(toks)-1].Value)
}

func TestListingNoColor(t *testing.T) {
	t.Setenv(NoColorEnv, "1")
	line := "8000: A6 05          LDA      #$05"
	out, err := Listing(line)
	require.NoError(t, err)
	assert.Equal(t, line, out)
	assert.False(t, Enabled())
}

func TestListingColorPreservesText(t *testing.T) {
	t.Setenv(NoColorEnv, "")
	code := "8000: A6 05          LDA      #$05\n8002: 81             RTS\n"
	out, err := Listing(code)
	require.NoError(t, err)
	assert.NotEqual(t, code, out)
	assert.Equal(t, code, StripANSI(out))
}
