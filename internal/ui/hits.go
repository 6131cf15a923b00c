package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/talkpad/talkpad/internal/focus"
	"github.com/talkpad/talkpad/internal/nav"
)

// rect is an area of the screen in terminal cells.
type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

type hitKind int

const (
	hitRegion hitKind = iota
	hitTile
	hitItem
	hitKey
)

// hit is one clickable area of the last rendered frame. pos addresses a tile
// or key, index a list row.
type hit struct {
	kind    hitKind
	section focus.Section
	bounds  rect
	pos     nav.Position
	index   int
}

// hitMap records clickable areas while the view renders. Bounds are added
// relative to the current origin. Tiles, rows and keys take precedence over
// the region that frames them.
type hitMap struct {
	hits []hit
	x, y int
}

func (h *hitMap) reset() {
	h.hits = h.hits[:0]
	h.x, h.y = 0, 0
}

func (h *hitMap) origin(x, y int) {
	h.x, h.y = x, y
}

func (h *hitMap) add(e hit) {
	e.bounds.X += h.x
	e.bounds.Y += h.y
	h.hits = append(h.hits, e)
}

// region records a whole framed block rendered at the current origin.
func (h *hitMap) region(s focus.Section, block string) {
	h.add(hit{kind: hitRegion, section: s, bounds: rect{W: lipgloss.Width(block), H: lipgloss.Height(block)}})
}

func (h *hitMap) at(x, y int) (hit, bool) {
	var region *hit
	for i := len(h.hits) - 1; i >= 0; i-- {
		e := &h.hits[i]
		if !e.bounds.contains(x, y) {
			continue
		}
		if e.kind != hitRegion {
			return *e, true
		}
		if region == nil {
			region = e
		}
	}
	if region != nil {
		return *region, true
	}
	return hit{}, false
}

// frameOffset returns where content starts inside a block rendered with s.
func frameOffset(s lipgloss.Style) (int, int) {
	x := s.GetMarginLeft() + s.GetBorderLeftSize() + s.GetPaddingLeft()
	y := s.GetMarginTop() + s.GetBorderTopSize() + s.GetPaddingTop()
	return x, y
}
