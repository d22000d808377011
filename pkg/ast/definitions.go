package ast

// Builders producing the same tree shapes the grammar emits. Tests use them
// to hand-craft input without going through the text parser.

func Leaf(tag, contents string) *Node {
	return &Node{Tag: tag, Contents: contents}
}

func Branch(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// Root wraps expressions in the program node, bracketed by the empty regex
// boundaries mpc emits for /^/ and /$/.
func Root(exprs ...*Node) *Node {
	children := make([]*Node, 0, len(exprs)+2)
	children = append(children, Leaf(TagRegex, ""))
	children = append(children, exprs...)
	children = append(children, Leaf(TagRegex, ""))
	return Branch(TagRoot, children...)
}

func Long(text string) *Node {
	return Leaf("expr|long|regex", text)
}

// Double splits the literal the way the grammar does: integer part, the
// '.' character, fractional part.
func Double(whole, frac string) *Node {
	return Branch("expr|double|>",
		Leaf(TagRegex, whole),
		Leaf(TagChar, "."),
		Leaf(TagRegex, frac),
	)
}

func Sym(name string) *Node {
	return Leaf("expr|symbol|regex", name)
}

func SExpr(children ...*Node) *Node {
	return bracketed("expr|sexpr|>", "(", ")", children)
}

func QExpr(children ...*Node) *Node {
	return bracketed("expr|qexpr|>", "{", "}", children)
}

func bracketed(tag, open, close string, children []*Node) *Node {
	all := make([]*Node, 0, len(children)+2)
	all = append(all, Leaf(TagChar, open))
	all = append(all, children...)
	all = append(all, Leaf(TagChar, close))
	return Branch(tag, all...)
}
