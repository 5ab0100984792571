package syntax

import (
	"fmt"

	"github.com/mamaar/condflat/pkg/types"
)

// Parse lexes and parses the given text into a fresh tree. The root file node
// always spans the entire buffer, so position resolution has a covering node
// for any in-range offset. Parent links are set before returning.
func Parse(text string) (*Node, *Source, error) {
	src := NewSource(text)
	toks, err := NewLexer(src).Tokens()
	if err != nil {
		return nil, nil, &types.RefactorError{
			Kind:    types.ParseError,
			Message: err.Error(),
			Cause:   err,
		}
	}
	p := &parser{src: src, toks: toks}
	file, err := p.parseFile()
	if err != nil {
		return nil, nil, err
	}
	setParents(file)
	return file, src, nil
}

type parser struct {
	src  *Source
	toks []Token
	pos  int
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) at(tt TokenType) bool {
	return p.toks[p.pos].Type == tt
}

func (p *parser) advance() Token {
	tok := p.toks[p.pos]
	if tok.Type != EOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(tt TokenType, what string) (Token, error) {
	if !p.at(tt) {
		return Token{}, p.errorf(p.peek(), "expected %s", what)
	}
	return p.advance(), nil
}

func (p *parser) errorf(tok Token, format string, args ...any) error {
	pos := p.src.PositionAt(tok.Offset)
	return &types.RefactorError{
		Kind:    types.ParseError,
		Message: fmt.Sprintf(format, args...),
		Line:    pos.Line,
		Column:  pos.Column,
	}
}

func (p *parser) parseFile() (*Node, error) {
	file := &Node{Kind: KindFile, Start: 0, End: len(p.src.Text)}
	for !p.at(EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		file.List = append(file.List, stmt)
	}
	return file, nil
}

func (p *parser) parseStatement() (*Node, error) {
	switch p.peek().Type {
	case LBRACE:
		return p.parseBlock()
	case IF:
		return p.parseIf()
	case RETURN:
		return p.parseReturn()
	case VAR, LET, CONST:
		return p.parseVarDecl()
	case FUNCTION:
		return p.parseFuncDecl()
	default:
		return p.parseExprStatement()
	}
}

func (p *parser) parseBlock() (*Node, error) {
	open, err := p.expect(LBRACE, "'{'")
	if err != nil {
		return nil, err
	}
	block := &Node{Kind: KindBlock, Start: open.Offset}
	for !p.at(RBRACE) && !p.at(EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.List = append(block.List, stmt)
	}
	closing, err := p.expect(RBRACE, "'}'")
	if err != nil {
		return nil, err
	}
	block.End = closing.End()
	return block, nil
}

func (p *parser) parseIf() (*Node, error) {
	kw, err := p.expect(IF, "'if'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN, "'(' after if"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, "')' after condition"); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	n := &Node{Kind: KindIf, Start: kw.Offset, End: then.End, Cond: cond, Then: then}
	if p.at(ELSE) {
		p.advance()
		// An else-if chain keeps the nested if-statement as the else branch,
		// so it stays distinguishable from a block-shaped else.
		elseBranch, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		n.Else = elseBranch
		n.End = elseBranch.End
	}
	return n, nil
}

func (p *parser) parseReturn() (*Node, error) {
	kw, err := p.expect(RETURN, "'return'")
	if err != nil {
		return nil, err
	}
	n := &Node{Kind: KindReturn, Start: kw.Offset}
	if !p.at(SEMI) {
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		n.X = value
	}
	semi, err := p.expect(SEMI, "';' after return")
	if err != nil {
		return nil, err
	}
	n.End = semi.End()
	return n, nil
}

func (p *parser) parseVarDecl() (*Node, error) {
	kw := p.advance()
	name, err := p.expect(IDENT, "variable name")
	if err != nil {
		return nil, err
	}
	n := &Node{Kind: KindVarDecl, Start: kw.Offset, Op: kw.Lexeme, Name: name.Lexeme}
	if p.at(ASSIGN) {
		p.advance()
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		n.X = init
	}
	semi, err := p.expect(SEMI, "';' after declaration")
	if err != nil {
		return nil, err
	}
	n.End = semi.End()
	return n, nil
}

func (p *parser) parseFuncDecl() (*Node, error) {
	kw, err := p.expect(FUNCTION, "'function'")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(IDENT, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN, "'(' after function name"); err != nil {
		return nil, err
	}
	n := &Node{Kind: KindFuncDecl, Start: kw.Offset, Name: name.Lexeme}
	for !p.at(RPAREN) {
		param, err := p.expect(IDENT, "parameter name")
		if err != nil {
			return nil, err
		}
		n.List = append(n.List, &Node{
			Kind:  KindIdent,
			Start: param.Offset,
			End:   param.End(),
			Name:  param.Lexeme,
		})
		if !p.at(COMMA) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(RPAREN, "')' after parameters"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n.Then = body
	n.End = body.End
	return n, nil
}

func (p *parser) parseExprStatement() (*Node, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	semi, err := p.expect(SEMI, "';' after expression")
	if err != nil {
		return nil, err
	}
	return &Node{Kind: KindExprStmt, Start: expr.Start, End: semi.End(), X: expr}, nil
}

// Expression parsing: right-associative assignment and ternary at the top,
// then left-associative binary levels in increasing precedence.

func (p *parser) parseExpr() (*Node, error) {
	return p.parseAssign()
}

func (p *parser) parseAssign() (*Node, error) {
	lhs, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if !p.at(ASSIGN) {
		return lhs, nil
	}
	p.advance()
	rhs, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	return &Node{Kind: KindAssign, Start: lhs.Start, End: rhs.End, Op: "=", X: lhs, Y: rhs}, nil
}

func (p *parser) parseTernary() (*Node, error) {
	cond, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if !p.at(QUESTION) {
		return cond, nil
	}
	p.advance()
	whenTrue, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "':' in conditional expression"); err != nil {
		return nil, err
	}
	whenFalse, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	return &Node{
		Kind:  KindCond,
		Start: cond.Start,
		End:   whenFalse.End,
		Cond:  cond,
		Then:  whenTrue,
		Else:  whenFalse,
	}, nil
}

// binaryLevels orders operators from loosest to tightest binding.
var binaryLevels = [][]TokenType{
	{OROR},
	{ANDAND},
	{EQ, NEQ},
	{LESS, LESSEQ, GREATER, GREATEREQ},
	{PLUS, MINUS},
	{STAR, SLASH, PERCENT},
}

func (p *parser) parseBinary(level int) (*Node, error) {
	if level >= len(binaryLevels) {
		return p.parseUnary()
	}
	lhs, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		matched := false
		for _, tt := range binaryLevels[level] {
			if p.at(tt) {
				op := p.advance()
				rhs, err := p.parseBinary(level + 1)
				if err != nil {
					return nil, err
				}
				lhs = &Node{
					Kind:  KindBinary,
					Start: lhs.Start,
					End:   rhs.End,
					Op:    op.Lexeme,
					X:     lhs,
					Y:     rhs,
				}
				matched = true
				break
			}
		}
		if !matched {
			return lhs, nil
		}
	}
}

func (p *parser) parseUnary() (*Node, error) {
	if p.at(BANG) || p.at(MINUS) {
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Node{
			Kind:  KindUnary,
			Start: op.Offset,
			End:   operand.End,
			Op:    op.Lexeme,
			X:     operand,
		}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (*Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(LPAREN):
			p.advance()
			call := &Node{Kind: KindCall, Start: expr.Start, X: expr}
			for !p.at(RPAREN) {
				arg, err := p.parseAssign()
				if err != nil {
					return nil, err
				}
				call.List = append(call.List, arg)
				if !p.at(COMMA) {
					break
				}
				p.advance()
			}
			closing, err := p.expect(RPAREN, "')' after arguments")
			if err != nil {
				return nil, err
			}
			call.End = closing.End()
			expr = call
		case p.at(PERIOD):
			p.advance()
			prop, err := p.expect(IDENT, "property name after '.'")
			if err != nil {
				return nil, err
			}
			expr = &Node{
				Kind:  KindMember,
				Start: expr.Start,
				End:   prop.End(),
				Name:  prop.Lexeme,
				X:     expr,
			}
		default:
			return expr, nil
		}
	}
}

func (p *parser) parsePrimary() (*Node, error) {
	tok := p.peek()
	switch tok.Type {
	case IDENT:
		p.advance()
		return &Node{Kind: KindIdent, Start: tok.Offset, End: tok.End(), Name: tok.Lexeme}, nil
	case NUMBER:
		p.advance()
		return &Node{Kind: KindNumberLit, Start: tok.Offset, End: tok.End(), Value: tok.Lexeme}, nil
	case STRING:
		p.advance()
		return &Node{Kind: KindStringLit, Start: tok.Offset, End: tok.End(), Value: tok.Lexeme}, nil
	case TRUE, FALSE:
		p.advance()
		return &Node{Kind: KindBoolLit, Start: tok.Offset, End: tok.End(), Value: tok.Lexeme}, nil
	case NULL:
		p.advance()
		return &Node{Kind: KindNullLit, Start: tok.Offset, End: tok.End(), Value: tok.Lexeme}, nil
	case LPAREN:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		closing, err := p.expect(RPAREN, "')'")
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindParen, Start: tok.Offset, End: closing.End(), X: inner}, nil
	case EOF:
		return nil, p.errorf(tok, "unexpected end of input")
	default:
		return nil, p.errorf(tok, "unexpected token %q", tok.Lexeme)
	}
}
