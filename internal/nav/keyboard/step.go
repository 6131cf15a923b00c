package keyboard

import (
	"github.com/talkpad/talkpad/internal/nav"
	"github.com/talkpad/talkpad/internal/nav/grid"
)

// State is the complete navigation state of a keyboard: the cursor and the
// position remembered from the last normal row the cursor left.
type State struct {
	Pos    nav.Position
	Memory nav.Position
}

// Step computes the state reached from s by one move in dir.
//
// Horizontal moves wrap within the row. Vertical moves wrap between the top
// row and the spacebar row and apply the row offsets before clamping, with
// these exceptions:
//   - entering the spacebar row lands on Space, or on the arrow-cluster key
//     beneath the source when leaving the extra ↑ key;
//   - leaving the spacebar row upwards returns to the remembered position.
//
// Memory is refreshed whenever the cursor leaves a non-spacebar row. Invalid
// input or a move into an empty row yields s unchanged.
func Step(l *Layout, s State, dir nav.Direction) State {
	if l == nil || !nav.Valid(l, s.Pos) {
		return s
	}
	if dir.Horizontal() {
		s.Pos = grid.Move(l, s.Pos, dir)
		return s
	}
	if !dir.Vertical() {
		return s
	}

	from := s.Pos
	space := l.SpaceRow()
	delta := 1
	if dir == nav.DirUp {
		delta = -1
	}
	target := nav.Wrap(from.Row, delta, l.Rows())

	var to nav.Position
	switch {
	case space >= 0 && from.Row == space && dir == nav.DirUp:
		to = s.Memory
		if !nav.Valid(l, to) {
			to = shift(l, from, target)
		}
	case space >= 0 && target == space && from.Row != space:
		to = nav.Position{Col: 0, Row: space}
		if col, ok := l.cluster[from.Col]; ok && from.Row == space-1 {
			to.Col = col
		}
	default:
		to = shift(l, from, target)
	}
	if !nav.Valid(l, to) {
		return s
	}

	next := State{Pos: to, Memory: s.Memory}
	if from.Row != space {
		next.Memory = from
	}
	return next
}

// shift moves from onto row target, compensating for the visual indent of
// both rows and clamping to the target row.
func shift(l *Layout, from nav.Position, target int) nav.Position {
	n := l.RowLen(target)
	if n <= 0 {
		return nav.Position{Col: -1, Row: target}
	}
	col := from.Col + l.offset(from.Row) - l.offset(target)
	return nav.Position{Col: nav.Clamp(col, 0, n-1), Row: target}
}
