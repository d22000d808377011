package interpreter

import (
	"strconv"

	"github.com/Brandon-Rozek/lispy/pkg/ast"
	"github.com/Brandon-Rozek/lispy/pkg/runtime"
)

// Read converts a parse tree into a runtime value. Malformed numbers and
// unrecognised nodes become Error values in place; Read never panics.
func Read(node *ast.Node) runtime.Value {
	if node == nil {
		return runtime.Errorf(runtime.UnreadableNode, "Cannot read empty node")
	}
	switch {
	case node.HasTag(ast.TagLong):
		return readLong(node)
	case node.HasTag(ast.TagDouble):
		return readDouble(node)
	case node.HasTag(ast.TagSymbol):
		name := node.Contents
		if name == "" {
			name = node.Text()
		}
		return runtime.Symbol(name)
	case node.IsRoot() || node.HasTag(ast.TagSExpr):
		out := runtime.SExpr()
		readInto(&out.List, node)
		return out
	case node.HasTag(ast.TagQExpr):
		out := runtime.QExpr()
		readInto(&out.List, node)
		return out
	}

	// Grammar wrappers that carry a single meaningful child.
	children := readableChildren(node)
	if len(children) == 1 {
		return Read(children[0])
	}
	return runtime.Errorf(runtime.UnreadableNode, "Cannot read node tagged '%s'", node.Tag)
}

func readInto(list *runtime.List, node *ast.Node) {
	for _, child := range readableChildren(node) {
		list.Add(Read(child))
	}
}

// readableChildren drops bracket tokens and regex boundary nodes.
func readableChildren(node *ast.Node) []*ast.Node {
	out := make([]*ast.Node, 0, len(node.Children))
	for _, child := range node.Children {
		if child == nil || child.Tag == ast.TagRegex {
			continue
		}
		switch child.Contents {
		case "(", ")", "{", "}":
			continue
		}
		out = append(out, child)
	}
	return out
}

func readLong(node *ast.Node) runtime.Value {
	text := node.Text()
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return runtime.Errorf(runtime.InvalidNumberLiteral, "Invalid number '%s'", text)
	}
	return runtime.Long(n)
}

func readDouble(node *ast.Node) runtime.Value {
	text := node.Text()
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return runtime.Errorf(runtime.InvalidNumberLiteral, "Invalid number '%s'", text)
	}
	return runtime.Double(f)
}
