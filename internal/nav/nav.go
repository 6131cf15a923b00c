// Package nav holds the vocabulary shared by every navigator: directions and
// cursor positions. The navigators themselves live in the grid, keyboard and
// list subpackages.
package nav

// Direction is one of the four discrete moves produced by arrow keys or the
// analog adapter.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Vertical reports whether d moves between rows.
func (d Direction) Vertical() bool {
	return d == DirUp || d == DirDown
}

// Horizontal reports whether d moves within a row.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// Position is a (column, row) cursor.
type Position struct {
	Col int
	Row int
}

// Shape describes a ragged matrix by its row lengths.
type Shape interface {
	Rows() int
	RowLen(row int) int
}

// Valid reports whether p addresses an existing cell of s.
func Valid(s Shape, p Position) bool {
	if s == nil || p.Row < 0 || p.Row >= s.Rows() {
		return false
	}
	return p.Col >= 0 && p.Col < s.RowLen(p.Row)
}

// Wrap steps i by delta inside [0, n) and wraps past either end.
func Wrap(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	i = (i + delta) % n
	if i < 0 {
		i += n
	}
	return i
}

// Clamp bounds i to [lo, hi].
func Clamp(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}
