package types

// Position is a 0-based line and rune column within a buffer.
type Position struct {
	Line int
	Col  int // rune index
}

// Before reports whether p comes strictly before o.
func (p Position) Before(o Position) bool {
	return p.Line < o.Line || (p.Line == o.Line && p.Col < o.Col)
}

// Ordered returns a and b sorted so the first is not after the second.
func Ordered(a, b Position) (Position, Position) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}

// StyledRange marks rune columns [StartCol, EndCol) of a line with a theme style.
type StyledRange struct {
	StartCol  int
	EndCol    int
	StyleName string
}
