package grid

import (
	"testing"

	"github.com/talkpad/talkpad/internal/nav"
)

func TestMoveRightFullCycleReturnsToStart(t *testing.T) {
	shape := Rows{12, 12, 13, 10, 1}
	for row := 0; row < shape.Rows(); row++ {
		for col := 0; col < shape.RowLen(row); col++ {
			start := nav.Position{Col: col, Row: row}
			pos := start
			for i := 0; i < shape.RowLen(row); i++ {
				pos = Move(shape, pos, nav.DirRight)
			}
			if pos != start {
				t.Fatalf("expected full cycle to return to %+v, got %+v", start, pos)
			}
		}
	}
}

func TestVerticalMoveClampsColumnOnRaggedRows(t *testing.T) {
	shape := Rows{5, 2, 7, 1, 3}
	dirs := []nav.Direction{nav.DirUp, nav.DirDown}
	for row := 0; row < shape.Rows(); row++ {
		for col := 0; col < shape.RowLen(row); col++ {
			for _, dir := range dirs {
				got := Move(shape, nav.Position{Col: col, Row: row}, dir)
				if got.Col >= shape.RowLen(got.Row) {
					t.Fatalf("moving %s from (%d,%d) landed out of bounds at %+v", dir, col, row, got)
				}
			}
		}
	}
}

func TestVerticalMoveWraps(t *testing.T) {
	shape := Rows{3, 3, 3}
	if got := Move(shape, nav.Position{Col: 1, Row: 0}, nav.DirUp); got != (nav.Position{Col: 1, Row: 2}) {
		t.Fatalf("expected wrap to bottom row, got %+v", got)
	}
	if got := Move(shape, nav.Position{Col: 1, Row: 2}, nav.DirDown); got != (nav.Position{Col: 1, Row: 0}) {
		t.Fatalf("expected wrap to top row, got %+v", got)
	}
}

func TestHorizontalMoveWrapsWithinRow(t *testing.T) {
	shape := Rows{4}
	if got := Move(shape, nav.Position{Col: 0, Row: 0}, nav.DirLeft); got.Col != 3 {
		t.Fatalf("expected wrap to column 3, got %+v", got)
	}
	if got := Move(shape, nav.Position{Col: 3, Row: 0}, nav.DirRight); got.Col != 0 {
		t.Fatalf("expected wrap to column 0, got %+v", got)
	}
}

func TestDegenerateLayouts(t *testing.T) {
	single := Rows{1, 4}
	p := nav.Position{Col: 0, Row: 0}
	if got := Move(single, p, nav.DirRight); got != p {
		t.Fatalf("expected single-cell row to keep cursor, got %+v", got)
	}
	oneRow := Rows{4}
	p = nav.Position{Col: 2, Row: 0}
	if got := Move(oneRow, p, nav.DirDown); got != p {
		t.Fatalf("expected single-row layout to keep cursor, got %+v", got)
	}
}

func TestMalformedLayoutFailsClosed(t *testing.T) {
	shape := Rows{3, 0, 3}
	start := nav.Position{Col: 1, Row: 0}
	if got := Move(shape, start, nav.DirDown); got != start {
		t.Fatalf("expected move into empty row to be ignored, got %+v", got)
	}
	bad := nav.Position{Col: 9, Row: 0}
	if got := Move(shape, bad, nav.DirLeft); got != bad {
		t.Fatalf("expected out-of-range start to be returned unchanged, got %+v", got)
	}
	if got := Move(Rows{}, nav.Position{}, nav.DirUp); got != (nav.Position{}) {
		t.Fatalf("expected empty layout to be a no-op, got %+v", got)
	}
}

func TestNavigatorSetPositionRejectsInvalid(t *testing.T) {
	n := New(Labels{{"a", "b"}, {"c"}})
	if n.SetPosition(nav.Position{Col: 1, Row: 1}) {
		t.Fatalf("expected invalid position to be rejected")
	}
	if !n.SetPosition(nav.Position{Col: 1, Row: 0}) {
		t.Fatalf("expected valid position to be accepted")
	}
	if !n.Move(nav.DirDown) {
		t.Fatalf("expected move down to change position")
	}
	if got := n.Position(); got != (nav.Position{Col: 0, Row: 1}) {
		t.Fatalf("expected clamp to (0,1), got %+v", got)
	}
	if !n.IsFocused(0, 1) || n.IsFocused(1, 0) {
		t.Fatalf("expected focus predicate to follow the cursor")
	}
}
