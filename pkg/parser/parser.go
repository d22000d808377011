package parser

import (
	"errors"
	"fmt"

	"github.com/Brandon-Rozek/lispy/pkg/ast"
)

// ErrIncomplete marks input that ended inside an open expression. The REPL
// uses it to keep reading continuation lines.
var ErrIncomplete = errors.New("parser: incomplete expression")

// SyntaxError reports malformed source at a position.
type SyntaxError struct {
	Filename string
	Pos      Position
	Message  string
	err      error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Pos.Line, e.Pos.Column, e.Message)
}

func (e *SyntaxError) Unwrap() error { return e.err }

// IsIncomplete reports whether err came from input that stopped mid-expression.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrIncomplete)
}

// Parser turns lispy source into the generic tree the interpreter reads.
type Parser struct {
	filename string
	src      []byte
	pos      int
}

// New returns a parser for source; filename only labels errors.
func New(filename string, source []byte) *Parser {
	if filename == "" {
		filename = "<stdin>"
	}
	return &Parser{filename: filename, src: source}
}

// Parse parses every top-level expression in source into a root node.
func Parse(filename, source string) (*ast.Node, error) {
	return New(filename, []byte(source)).ParseProgram()
}

// ParseProgram consumes the whole input.
func (p *Parser) ParseProgram() (*ast.Node, error) {
	var exprs []*ast.Node
	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return ast.Root(exprs...), nil
}

func (p *Parser) parseExpr() (*ast.Node, error) {
	c := p.src[p.pos]
	switch {
	case c == '(':
		return p.parseList(ast.TagSExpr, '(', ')')
	case c == '{':
		return p.parseList(ast.TagQExpr, '{', '}')
	case c == ')' || c == '}':
		return nil, p.errorf(p.pos, nil, "unexpected '%c'", c)
	case isAtomChar(c):
		return p.parseAtom()
	default:
		return nil, p.errorf(p.pos, nil, "unexpected character '%c'", c)
	}
}

func (p *Parser) parseList(tag string, open, close byte) (*ast.Node, error) {
	start := p.pos
	p.pos++
	children := []*ast.Node{ast.Leaf(ast.TagChar, string(open))}
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf(start, ErrIncomplete, "unclosed '%c'", open)
		}
		c := p.src[p.pos]
		if c == close {
			p.pos++
			children = append(children, ast.Leaf(ast.TagChar, string(close)))
			return ast.Branch("expr|"+tag+"|>", children...), nil
		}
		if c == ')' || c == '}' {
			return nil, p.errorf(p.pos, nil, "expected '%c', found '%c'", close, c)
		}
		child, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
}

func (p *Parser) skipSpace() {
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == ';':
			for !p.eof() && p.src[p.pos] != '\n' {
				p.pos++
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *Parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *Parser) errorf(offset int, wrapped error, format string, args ...any) error {
	return &SyntaxError{
		Filename: p.filename,
		Pos:      positionAt(p.src, offset),
		Message:  fmt.Sprintf(format, args...),
		err:      wrapped,
	}
}
