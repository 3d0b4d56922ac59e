// Package parser turns textual programs into term trees. The grammar is the
// parenthesized surface syntax: `(program 1.1.0 (lam x [(builtin
// addInteger) x (con integer 1)]))`. Parsing fails fast on the first
// syntax error and reports its source position.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/uplc/internal/lexer"
	"github.com/funvibe/uplc/internal/term"
	"github.com/funvibe/uplc/internal/token"
)

// maxNesting caps recursion so a pathological input cannot exhaust the
// stack before the error surfaces.
const maxNesting = 1 << 14

// minSumVersion is the first language version with constr/case.
var minSumVersion = term.Version{Major: 1, Minor: 1}

// ParseError is a syntax error with its source position.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse: line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Parse reads a complete `(program x.y.z term)` from src. Anything left
// over after the closing parenthesis is an error.
func Parse(src string) (*term.Program, error) {
	p := New(lexer.New(src))
	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	if !p.peekTokenIs(token.EOF) {
		return nil, p.peekErrorf("unexpected %s after program", describe(p.peekToken))
	}
	return prog, nil
}

// ParseTerm reads a bare term without a program header. The newest
// language version is assumed, so constr/case are available.
func ParseTerm(src string) (term.Term, error) {
	p := New(lexer.New(src))
	p.version = term.Latest
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if !p.peekTokenIs(token.EOF) {
		return nil, p.peekErrorf("unexpected %s after term", describe(p.peekToken))
	}
	return t, nil
}

type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	version term.Version // gates constr/case
	depth   int
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

// expectPeek advances onto the next token when it has the wanted type and
// errors in place otherwise.
func (p *Parser) expectPeek(t token.Type) error {
	if !p.peekTokenIs(t) {
		return p.peekErrorf("expected %s, found %s", describeType(t), describe(p.peekToken))
	}
	p.nextToken()
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.curToken.Line, Column: p.curToken.Column, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) peekErrorf(format string, args ...any) error {
	return &ParseError{Line: p.peekToken.Line, Column: p.peekToken.Column, Msg: fmt.Sprintf(format, args...)}
}

// parseProgram parses `(program x.y.z term)` and records the version for
// the constr/case gate. Returns with curToken on the closing parenthesis.
func (p *Parser) parseProgram() (*term.Program, error) {
	if !p.curTokenIs(token.LPAREN) {
		return nil, p.errorf("expected %s, found %s", describeType(token.LPAREN), describe(p.curToken))
	}
	if err := p.expectPeek(token.PROGRAM); err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.INT); err != nil {
		return nil, err
	}
	version, err := p.parseVersion()
	if err != nil {
		return nil, err
	}
	p.version = version

	p.nextToken() // move onto the body
	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.RPAREN); err != nil {
		return nil, err
	}
	return &term.Program{Version: version, Body: body}, nil
}

// parseVersion parses `INT . INT . INT` starting at the first component.
func (p *Parser) parseVersion() (term.Version, error) {
	var v term.Version
	var err error
	if v.Major, err = p.versionComponent(); err != nil {
		return v, err
	}
	if err := p.expectPeek(token.DOT); err != nil {
		return v, err
	}
	if err := p.expectPeek(token.INT); err != nil {
		return v, err
	}
	if v.Minor, err = p.versionComponent(); err != nil {
		return v, err
	}
	if err := p.expectPeek(token.DOT); err != nil {
		return v, err
	}
	if err := p.expectPeek(token.INT); err != nil {
		return v, err
	}
	if v.Patch, err = p.versionComponent(); err != nil {
		return v, err
	}
	return v, nil
}

func (p *Parser) versionComponent() (uint32, error) {
	n, err := strconv.ParseUint(p.curToken.Literal, 10, 32)
	if err != nil {
		return 0, p.errorf("malformed version component %q", p.curToken.Lexeme)
	}
	return uint32(n), nil
}

// parseTerm parses one term. It is called with curToken on the term's
// first token and returns with curToken on its last.
func (p *Parser) parseTerm() (term.Term, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxNesting {
		return nil, p.errorf("nesting exceeds %d levels", maxNesting)
	}

	switch p.curToken.Type {
	case token.IDENT:
		return &term.Var{Name: p.curToken.Literal}, nil
	case token.LPAREN:
		return p.parseParenTerm()
	case token.LBRACKET:
		return p.parseApplication()
	default:
		return nil, p.errorf("expected a term, found %s", describe(p.curToken))
	}
}

// parseParenTerm dispatches on the keyword after an opening parenthesis.
func (p *Parser) parseParenTerm() (term.Term, error) {
	p.nextToken() // consume '('

	switch p.curToken.Type {
	case token.LAM:
		if err := p.expectPeek(token.IDENT); err != nil {
			return nil, err
		}
		name := p.curToken.Literal
		p.nextToken() // move onto the body
		body, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(token.RPAREN); err != nil {
			return nil, err
		}
		return &term.LamAbs{Name: name, Body: body}, nil

	case token.DELAY:
		p.nextToken()
		body, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(token.RPAREN); err != nil {
			return nil, err
		}
		return &term.Delay{Body: body}, nil

	case token.FORCE:
		p.nextToken()
		body, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(token.RPAREN); err != nil {
			return nil, err
		}
		return &term.Force{Body: body}, nil

	case token.CON:
		p.nextToken() // move onto the type
		typ, err := p.parseConstType()
		if err != nil {
			return nil, err
		}
		p.nextToken() // move onto the value
		val, err := p.parseConstValue(typ)
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(token.RPAREN); err != nil {
			return nil, err
		}
		return &term.Const{Value: val}, nil

	case token.BUILTIN:
		if err := p.expectPeek(token.IDENT); err != nil {
			return nil, err
		}
		name := p.curToken.Literal
		if err := p.expectPeek(token.RPAREN); err != nil {
			return nil, err
		}
		return &term.Builtin{Name: name}, nil

	case token.ERROR:
		if err := p.expectPeek(token.RPAREN); err != nil {
			return nil, err
		}
		return &term.Error{}, nil

	case token.CONSTR:
		if !p.version.AtLeast(minSumVersion) {
			return nil, p.errorf("constr needs language version %s, program is %s", minSumVersion, p.version)
		}
		if err := p.expectPeek(token.INT); err != nil {
			return nil, err
		}
		tag, err := strconv.ParseUint(p.curToken.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf("constructor tag %s is out of range", p.curToken.Lexeme)
		}
		fields := []term.Term{}
		for !p.peekTokenIs(token.RPAREN) {
			if p.peekTokenIs(token.EOF) {
				return nil, p.peekErrorf("expected %s, found end of input", describeType(token.RPAREN))
			}
			p.nextToken()
			f, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		p.nextToken() // consume ')'
		return &term.Constr{Tag: tag, Fields: fields}, nil

	case token.CASE:
		if !p.version.AtLeast(minSumVersion) {
			return nil, p.errorf("case needs language version %s, program is %s", minSumVersion, p.version)
		}
		p.nextToken()
		scrut, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		branches := []term.Term{}
		for !p.peekTokenIs(token.RPAREN) {
			if p.peekTokenIs(token.EOF) {
				return nil, p.peekErrorf("expected %s, found end of input", describeType(token.RPAREN))
			}
			p.nextToken()
			b, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			branches = append(branches, b)
		}
		p.nextToken() // consume ')'
		return &term.Case{Scrut: scrut, Branches: branches}, nil

	default:
		return nil, p.errorf("expected lam, delay, force, con, builtin, error, constr or case, found %s", describe(p.curToken))
	}
}

// parseApplication parses `[f a b ...]`, folding the arguments to the
// left: [f a b] reads as [[f a] b].
func (p *Parser) parseApplication() (term.Term, error) {
	p.nextToken() // consume '['
	fn, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.peekTokenIs(token.RBRACKET) {
		return nil, p.peekErrorf("application needs at least one argument")
	}
	out := fn
	for !p.peekTokenIs(token.RBRACKET) {
		if p.peekTokenIs(token.EOF) {
			return nil, p.peekErrorf("expected %s, found end of input", describeType(token.RBRACKET))
		}
		p.nextToken()
		arg, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		out = &term.Apply{Fn: out, Arg: arg}
	}
	p.nextToken() // consume ']'
	return out, nil
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.ILLEGAL:
		if strings.HasPrefix(tok.Lexeme, `"`) {
			return "an unterminated string"
		}
		return fmt.Sprintf("illegal character %q", tok.Lexeme)
	default:
		return fmt.Sprintf("%q", tok.Lexeme)
	}
}

func describeType(t token.Type) string {
	switch t {
	case token.IDENT:
		return "a name"
	case token.INT:
		return "an integer"
	case token.BYTES:
		return "a bytestring literal"
	case token.PROGRAM:
		return `"program"`
	default:
		return fmt.Sprintf("%q", string(t))
	}
}
