package syntax

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Punctuation
	LPAREN   // "("
	RPAREN   // ")"
	LBRACE   // "{"
	RBRACE   // "}"
	SEMI     // ";"
	COMMA    // ","
	PERIOD   // "."
	QUESTION // "?"
	COLON    // ":"

	// Operators
	BANG    // "!"
	ASSIGN  // "="
	EQ      // "=="
	NEQ     // "!="
	LESS    // "<"
	LESSEQ  // "<="
	GREATER // ">"
	GREATEREQ
	ANDAND // "&&"
	OROR   // "||"
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT

	// Literals & identifiers
	IDENT
	NUMBER
	STRING

	// Keywords
	IF
	ELSE
	RETURN
	FUNCTION
	VAR
	LET
	CONST
	TRUE
	FALSE
	NULL
)

var keywords = map[string]TokenType{
	"if":       IF,
	"else":     ELSE,
	"return":   RETURN,
	"function": FUNCTION,
	"var":      VAR,
	"let":      LET,
	"const":    CONST,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
}

// Token is a lexical token with its raw text and byte offset.
type Token struct {
	Type   TokenType
	Lexeme string
	Offset int
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Lexeme)
}

// Lexer scans source text into tokens. Comments and whitespace are skipped.
type Lexer struct {
	src *Source
	pos int
}

// NewLexer creates a lexer over the given source.
func NewLexer(src *Source) *Lexer {
	return &Lexer{src: src}
}

// Tokens scans the whole input. The returned slice always ends with an EOF
// token positioned at the end of the text.
func (l *Lexer) Tokens() ([]Token, error) {
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) next() (Token, error) {
	l.skipSpaceAndComments()
	text := l.src.Text
	if l.pos >= len(text) {
		return Token{Type: EOF, Offset: len(text)}, nil
	}

	start := l.pos
	c := text[l.pos]

	switch {
	case isIdentStart(c):
		for l.pos < len(text) && isIdentPart(text[l.pos]) {
			l.pos++
		}
		lexeme := text[start:l.pos]
		if kw, ok := keywords[lexeme]; ok {
			return Token{Type: kw, Lexeme: lexeme, Offset: start}, nil
		}
		return Token{Type: IDENT, Lexeme: lexeme, Offset: start}, nil

	case isDigit(c):
		for l.pos < len(text) && isDigit(text[l.pos]) {
			l.pos++
		}
		// At most one fractional part; a second dot ends the literal.
		if l.pos+1 < len(text) && text[l.pos] == '.' && isDigit(text[l.pos+1]) {
			l.pos++
			for l.pos < len(text) && isDigit(text[l.pos]) {
				l.pos++
			}
		}
		return Token{Type: NUMBER, Lexeme: text[start:l.pos], Offset: start}, nil

	case c == '"' || c == '\'':
		quote := c
		l.pos++
		for l.pos < len(text) && text[l.pos] != quote {
			if text[l.pos] == '\\' && l.pos+1 < len(text) {
				l.pos++
			}
			l.pos++
		}
		if l.pos >= len(text) {
			pos := l.src.PositionAt(start)
			return Token{}, fmt.Errorf("%d:%d: unterminated string literal", pos.Line, pos.Column)
		}
		l.pos++ // closing quote
		return Token{Type: STRING, Lexeme: text[start:l.pos], Offset: start}, nil
	}

	// Two-character operators first.
	if l.pos+1 < len(text) {
		two := text[l.pos : l.pos+2]
		if tt, ok := twoCharOps[two]; ok {
			l.pos += 2
			return Token{Type: tt, Lexeme: two, Offset: start}, nil
		}
	}

	if tt, ok := oneCharOps[c]; ok {
		l.pos++
		return Token{Type: tt, Lexeme: string(c), Offset: start}, nil
	}

	pos := l.src.PositionAt(start)
	return Token{}, fmt.Errorf("%d:%d: unexpected character %q", pos.Line, pos.Column, c)
}

var twoCharOps = map[string]TokenType{
	"==": EQ,
	"!=": NEQ,
	"<=": LESSEQ,
	">=": GREATEREQ,
	"&&": ANDAND,
	"||": OROR,
}

var oneCharOps = map[byte]TokenType{
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	';': SEMI,
	',': COMMA,
	'.': PERIOD,
	'?': QUESTION,
	':': COLON,
	'!': BANG,
	'=': ASSIGN,
	'<': LESS,
	'>': GREATER,
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'%': PERCENT,
}

func (l *Lexer) skipSpaceAndComments() {
	text := l.src.Text
	for l.pos < len(text) {
		c := text[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.pos++
		case c == '/' && l.pos+1 < len(text) && text[l.pos+1] == '/':
			for l.pos < len(text) && text[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.pos+1 < len(text) && text[l.pos+1] == '*':
			l.pos += 2
			for l.pos+1 < len(text) && !(text[l.pos] == '*' && text[l.pos+1] == '/') {
				l.pos++
			}
			if l.pos+1 < len(text) {
				l.pos += 2
			} else {
				l.pos = len(text)
			}
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
