package parser

// Position is a 1-based line/column location in the source.
type Position struct {
	Line   int
	Column int
}

func positionAt(src []byte, offset int) Position {
	if offset > len(src) {
		offset = len(src)
	}
	pos := Position{Line: 1, Column: 1}
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			pos.Line++
			pos.Column = 1
			continue
		}
		pos.Column++
	}
	return pos
}
