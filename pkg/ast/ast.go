package ast

import "strings"

// Node is the generic parse tree handed to the interpreter. It mirrors the
// shape of an mpc AST: a '|'-separated tag, the leaf text, and ordered
// children. Branch nodes usually carry empty contents.
type Node struct {
	Tag      string
	Contents string
	Children []*Node
}

// Tag fragments produced by the grammar. The interpreter matches them as
// substrings, so "expr|long|regex" is a long literal.
const (
	TagRoot   = ">"
	TagLong   = "long"
	TagDouble = "double"
	TagSymbol = "symbol"
	TagSExpr  = "sexpr"
	TagQExpr  = "qexpr"
	TagChar   = "char"
	TagRegex  = "regex"
)

// HasTag reports whether the node's tag contains fragment.
func (n *Node) HasTag(fragment string) bool {
	return n != nil && strings.Contains(n.Tag, fragment)
}

// IsRoot reports whether n is the top-level program node.
func (n *Node) IsRoot() bool {
	return n != nil && n.Tag == TagRoot
}

// Text concatenates the contents of n and every descendant, depth first.
func (n *Node) Text() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	if n == nil {
		return
	}
	b.WriteString(n.Contents)
	for _, child := range n.Children {
		child.writeText(b)
	}
}

// String renders the tree in mpc's indented debug format.
func (n *Node) String() string {
	var b strings.Builder
	n.writeTree(&b, 0)
	return b.String()
}

func (n *Node) writeTree(b *strings.Builder, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Tag)
	if n.Contents != "" {
		b.WriteString(" '")
		b.WriteString(n.Contents)
		b.WriteByte('\'')
	}
	b.WriteByte('\n')
	for _, child := range n.Children {
		child.writeTree(b, depth+1)
	}
}
