package parser

import (
	"strings"

	"github.com/Brandon-Rozek/lispy/pkg/ast"
)

const symbolPunct = "_+-*/\\=<>!&%^|"

func isSymbolChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || isDigit(c) || strings.IndexByte(symbolPunct, c) >= 0
}

// isAtomChar also admits '.', which only appears inside double literals.
func isAtomChar(c byte) bool {
	return isSymbolChar(c) || c == '.'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parseAtom scans a maximal run of atom characters and classifies it as a
// long, a double or a symbol, in that order of preference.
func (p *Parser) parseAtom() (*ast.Node, error) {
	start := p.pos
	for !p.eof() && isAtomChar(p.src[p.pos]) {
		p.pos++
	}
	token := string(p.src[start:p.pos])

	if isLongLiteral(token) {
		return ast.Long(token), nil
	}
	if whole, frac, ok := splitDoubleLiteral(token); ok {
		return ast.Double(whole, frac), nil
	}
	if dot := strings.IndexByte(token, '.'); dot >= 0 {
		return nil, p.errorf(start+dot, nil, "unexpected character '.'")
	}
	return ast.Sym(token), nil
}

// isLongLiteral matches /-?[0-9]+/.
func isLongLiteral(token string) bool {
	digits := strings.TrimPrefix(token, "-")
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return false
		}
	}
	return true
}

// splitDoubleLiteral matches /-?[0-9]+/ '.' /[0-9]+/.
func splitDoubleLiteral(token string) (string, string, bool) {
	whole, frac, found := strings.Cut(token, ".")
	if !found || !isLongLiteral(whole) || frac == "" {
		return "", "", false
	}
	for i := 0; i < len(frac); i++ {
		if !isDigit(frac[i]) {
			return "", "", false
		}
	}
	return whole, frac, true
}
