package grid

const (
	DefaultBoardCols = 6
	DefaultBoardRows = 5
)

// DefaultTiles is the stock symbol set. Actions are bound by the host.
func DefaultTiles() []Tile {
	return []Tile{
		{ID: "1", Label: "SMS Tool", X: 0, Y: 0},
		{ID: "2", Label: "Yes", X: 1, Y: 0},
		{ID: "3", Label: "No", X: 2, Y: 0},
		{ID: "4", Label: "Happy", X: 0, Y: 1},
		{ID: "5", Label: "Sad", X: 1, Y: 1},
		{ID: "6", Label: "Stop", X: 2, Y: 1},
		{ID: "7", Label: "Bathroom", X: 0, Y: 2},
		{ID: "8", Label: "Hungry", X: 1, Y: 2, Empty: true},
		{ID: "9", Label: "Thirsty", X: 2, Y: 2},
		{ID: "10", Label: "Help", X: 0, Y: 3},
		{ID: "11", Label: "Important", X: 1, Y: 3},
		{ID: "12", Label: "More", X: 2, Y: 3},
	}
}

// BindActions returns a copy of tiles with fn bound to every non-empty tile.
func BindActions(tiles []Tile, fn func(Tile)) []Tile {
	out := make([]Tile, len(tiles))
	copy(out, tiles)
	for i := range out {
		if out[i].Empty || fn == nil {
			continue
		}
		t := out[i]
		out[i].Action = func() { fn(t) }
	}
	return out
}
