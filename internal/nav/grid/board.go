package grid

import (
	"github.com/talkpad/talkpad/internal/logging/events"
	"github.com/talkpad/talkpad/internal/nav"
)

// Tile is one symbol on the communication board.
type Tile struct {
	ID     string
	Label  string
	X, Y   int
	Empty  bool
	Action func()
}

// Board is a Cols x Rows matrix of optional tiles placed by explicit
// coordinates rather than dense packing.
type Board struct {
	cols  int
	rows  int
	cells [][]*Tile
}

// NewBoard places tiles on a cols x rows matrix. Tiles outside the matrix are
// dropped; when two tiles share a cell the later one wins.
func NewBoard(cols, rows int, tiles []Tile) *Board {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	b := &Board{cols: cols, rows: rows, cells: make([][]*Tile, rows)}
	for y := range b.cells {
		b.cells[y] = make([]*Tile, cols)
	}
	for i := range tiles {
		t := tiles[i]
		if t.X < 0 || t.Y < 0 || t.X >= cols || t.Y >= rows {
			continue
		}
		b.cells[t.Y][t.X] = &t
	}
	return b
}

func (b *Board) Rows() int { return b.rows }

func (b *Board) RowLen(row int) int {
	if row < 0 || row >= b.rows {
		return 0
	}
	return b.cols
}

// Cols returns the board width.
func (b *Board) Cols() int { return b.cols }

// At returns the tile at (x, y) or nil for a vacant or out-of-range cell.
func (b *Board) At(x, y int) *Tile {
	if y < 0 || y >= b.rows || x < 0 || x >= b.cols {
		return nil
	}
	return b.cells[y][x]
}

// BoardNavigator moves over a Board and keeps the single selected tile.
type BoardNavigator struct {
	*Navigator
	board    *Board
	selected string
}

// NewBoardNavigator starts at the origin with nothing selected.
func NewBoardNavigator(b *Board) *BoardNavigator {
	return &BoardNavigator{Navigator: New(b), board: b}
}

// Board returns the underlying board.
func (n *BoardNavigator) Board() *Board {
	return n.board
}

// Move steps the cursor and traces the new position.
func (n *BoardNavigator) Move(dir nav.Direction) bool {
	moved := n.Navigator.Move(dir)
	if moved {
		p := n.Position()
		events.Nav.GridCursor("board", p.Col, p.Row)
	}
	return moved
}

// Activate toggles the tile under the cursor. A vacant cell or an empty tile
// is ignored. Activating the selected tile deselects it; activating another
// tile selects it and runs its action once.
func (n *BoardNavigator) Activate() bool {
	p := n.Position()
	tile := n.board.At(p.Col, p.Row)
	if tile == nil || tile.Empty {
		return false
	}
	if n.selected == tile.ID {
		n.selected = ""
		events.Nav.TileToggle(tile.ID, false)
		return true
	}
	n.selected = tile.ID
	events.Nav.TileToggle(tile.ID, true)
	if tile.Action != nil {
		tile.Action()
	}
	return true
}

// Deselect clears the current selection.
func (n *BoardNavigator) Deselect() {
	n.selected = ""
}

// Selected returns the ID of the selected tile, or "".
func (n *BoardNavigator) Selected() string {
	return n.selected
}

// IsSelected reports whether the tile with id is selected.
func (n *BoardNavigator) IsSelected(id string) bool {
	return id != "" && n.selected == id
}
