// Package grid implements cursor movement over rectangular or ragged
// matrices. Move is a pure transition function; Navigator wraps it with the
// position owned by one region.
package grid

import "github.com/talkpad/talkpad/internal/nav"

// Rows is a ragged layout described by its row lengths.
type Rows []int

func (r Rows) Rows() int { return len(r) }

func (r Rows) RowLen(row int) int {
	if row < 0 || row >= len(r) {
		return 0
	}
	return r[row]
}

// Labels is a ragged layout of cell labels.
type Labels [][]string

func (l Labels) Rows() int { return len(l) }

func (l Labels) RowLen(row int) int {
	if row < 0 || row >= len(l) {
		return 0
	}
	return len(l[row])
}

// Move computes the position reached from pos by one step in dir.
//
// Vertical moves wrap from the last row to the first (and back) and re-clamp
// the column to the new row's length. Horizontal moves wrap within the
// current row. An invalid starting position, an empty target row or an
// unknown direction leaves pos unchanged.
func Move(shape nav.Shape, pos nav.Position, dir nav.Direction) nav.Position {
	if !nav.Valid(shape, pos) {
		return pos
	}
	switch dir {
	case nav.DirUp, nav.DirDown:
		delta := 1
		if dir == nav.DirUp {
			delta = -1
		}
		row := nav.Wrap(pos.Row, delta, shape.Rows())
		n := shape.RowLen(row)
		if n <= 0 {
			return pos
		}
		return nav.Position{Col: nav.Clamp(pos.Col, 0, n-1), Row: row}
	case nav.DirLeft, nav.DirRight:
		delta := 1
		if dir == nav.DirLeft {
			delta = -1
		}
		return nav.Position{Col: nav.Wrap(pos.Col, delta, shape.RowLen(pos.Row)), Row: pos.Row}
	}
	return pos
}

// Navigator owns the cursor of one grid-shaped region.
type Navigator struct {
	shape nav.Shape
	pos   nav.Position
}

// New returns a navigator positioned at the origin.
func New(shape nav.Shape) *Navigator {
	return &Navigator{shape: shape}
}

// Shape returns the layout the navigator moves over.
func (n *Navigator) Shape() nav.Shape {
	return n.shape
}

// Position returns the current cursor.
func (n *Navigator) Position() nav.Position {
	return n.pos
}

// Move applies one step and reports whether the cursor changed.
func (n *Navigator) Move(dir nav.Direction) bool {
	next := Move(n.shape, n.pos, dir)
	if next == n.pos {
		return false
	}
	n.pos = next
	return true
}

// SetPosition jumps to p. Out-of-range positions are rejected.
func (n *Navigator) SetPosition(p nav.Position) bool {
	if !nav.Valid(n.shape, p) {
		return false
	}
	n.pos = p
	return true
}

// Reset returns the cursor to the origin.
func (n *Navigator) Reset() {
	n.pos = nav.Position{}
}

// IsFocused reports whether the cell at (col, row) holds the cursor.
func (n *Navigator) IsFocused(col, row int) bool {
	return n.pos.Col == col && n.pos.Row == row
}
