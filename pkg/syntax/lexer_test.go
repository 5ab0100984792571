package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lex(t *testing.T, text string) []Token {
	t.Helper()
	toks, err := NewLexer(NewSource(text)).Tokens()
	require.NoError(t, err)
	return toks
}

func tokenTypes(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestLexerBasics(t *testing.T) {
	toks := lex(t, `if (a == 1) { return b; } else { c(); }`)
	require.Equal(t, []TokenType{
		IF, LPAREN, IDENT, EQ, NUMBER, RPAREN, LBRACE,
		RETURN, IDENT, SEMI, RBRACE, ELSE, LBRACE,
		IDENT, LPAREN, RPAREN, SEMI, RBRACE, EOF,
	}, tokenTypes(toks))
}

func TestLexerOperators(t *testing.T) {
	toks := lex(t, `! != = == <= < && || ? :`)
	require.Equal(t, []TokenType{
		BANG, NEQ, ASSIGN, EQ, LESSEQ, LESS, ANDAND, OROR, QUESTION, COLON, EOF,
	}, tokenTypes(toks))
}

func TestLexerOffsets(t *testing.T) {
	text := `foo  bar`
	toks := lex(t, text)
	require.Equal(t, 0, toks[0].Offset)
	require.Equal(t, 3, toks[0].End())
	require.Equal(t, 5, toks[1].Offset)
	require.Equal(t, 8, toks[1].End())
	require.Equal(t, len(text), toks[2].Offset) // EOF
}

func TestLexerStringsAndComments(t *testing.T) {
	t.Run("string literals keep quotes and escapes", func(t *testing.T) {
		toks := lex(t, `"a\"b" 'c'`)
		require.Equal(t, STRING, toks[0].Type)
		require.Equal(t, `"a\"b"`, toks[0].Lexeme)
		require.Equal(t, STRING, toks[1].Type)
		require.Equal(t, `'c'`, toks[1].Lexeme)
	})

	t.Run("comments are skipped", func(t *testing.T) {
		toks := lex(t, "a; // trailing\n/* block\ncomment */ b;")
		require.Equal(t, []TokenType{IDENT, SEMI, IDENT, SEMI, EOF}, tokenTypes(toks))
	})

	t.Run("unterminated string is an error", func(t *testing.T) {
		_, err := NewLexer(NewSource(`"open`)).Tokens()
		require.Error(t, err)
		require.Contains(t, err.Error(), "unterminated")
	})

	t.Run("unexpected character is an error", func(t *testing.T) {
		_, err := NewLexer(NewSource(`a # b`)).Tokens()
		require.Error(t, err)
	})
}

func TestLexerNumbers(t *testing.T) {
	t.Run("at most one fractional part", func(t *testing.T) {
		toks := lex(t, `1.2.3`)
		require.Equal(t, []TokenType{NUMBER, PERIOD, NUMBER, EOF}, tokenTypes(toks))
		require.Equal(t, "1.2", toks[0].Lexeme)
		require.Equal(t, "3", toks[2].Lexeme)
	})

	t.Run("trailing dot is not part of the literal", func(t *testing.T) {
		toks := lex(t, `7.`)
		require.Equal(t, []TokenType{NUMBER, PERIOD, EOF}, tokenTypes(toks))
		require.Equal(t, "7", toks[0].Lexeme)
	})
}

func TestLexerKeywords(t *testing.T) {
	toks := lex(t, `if else return function var let const true false null ifx`)
	require.Equal(t, []TokenType{
		IF, ELSE, RETURN, FUNCTION, VAR, LET, CONST, TRUE, FALSE, NULL, IDENT, EOF,
	}, tokenTypes(toks))
	require.Equal(t, "ifx", toks[10].Lexeme)
}
