package keyboard

import (
	"strings"

	"github.com/talkpad/talkpad/internal/nav"
)

// DefaultRows is the Norwegian on-screen layout. The last row is the
// spacebar row.
var DefaultRows = [][]string{
	{LabelBack, "1", "2", "3", "4", "5", "6", "7", "8", "9", "0", LabelBackspace},
	{"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P", "Å", `"`},
	{LabelCapsLock, "A", "S", "D", "F", "G", "H", "J", "K", "L", "Æ", "Ø", LabelEnter},
	{"Z", "X", "C", "V", "B", "N", "M", ",", ".", "-"},
	{LabelSpace},
}

// DefaultOffsets holds the visual indent of each row of DefaultRows in key
// widths. Rows are centred and have differently sized edge keys; only the
// bottom letter row ends up a full key to the right of the rows above it.
var DefaultOffsets = map[int]int{3: 1}

// Options tune a Layout.
type Options struct {
	// Extended appends the arrow cluster used to move the text pointer:
	// ↑ at the end of the row above the spacebar and ← ↓ → after Space.
	Extended bool
	// Offsets is the per-row visual indent in key widths. Moving from row a
	// to row b shifts the column by Offsets[a]-Offsets[b] before clamping.
	Offsets map[int]int
}

// Layout is an immutable ragged keyboard. The final row is treated as the
// spacebar row when there are at least two rows.
type Layout struct {
	rows     [][]Key
	offsets  map[int]int
	extended bool
	// cluster maps a column of the row above the spacebar onto the arrow
	// cluster column directly below it.
	cluster map[int]int
}

// NewLayout resolves labels into keys. Empty rows are kept as declared;
// navigation refuses to enter them.
func NewLayout(labels [][]string, opts Options) *Layout {
	l := &Layout{
		rows:     make([][]Key, len(labels)),
		offsets:  make(map[int]int, len(opts.Offsets)),
		extended: opts.Extended && len(labels) >= 2,
		cluster:  map[int]int{},
	}
	for r, row := range labels {
		keys := make([]Key, 0, len(row)+3)
		for _, label := range row {
			keys = append(keys, Key{Label: label, Action: Resolve(label)})
		}
		l.rows[r] = keys
	}
	for r, off := range opts.Offsets {
		l.offsets[r] = off
	}
	if l.extended {
		above := len(l.rows) - 2
		space := len(l.rows) - 1
		upCol := len(l.rows[above])
		l.rows[above] = append(l.rows[above], Key{Label: LabelArrowUp, Action: Resolve(LabelArrowUp)})
		downCol := len(l.rows[space]) + 1
		for _, label := range []string{LabelArrowLeft, LabelArrowDown, LabelArrowRight} {
			l.rows[space] = append(l.rows[space], Key{Label: label, Action: Resolve(label)})
		}
		l.cluster[upCol] = downCol
	}
	return l
}

// Default builds DefaultRows with DefaultOffsets.
func Default(extended bool) *Layout {
	return NewLayout(DefaultRows, Options{Extended: extended, Offsets: DefaultOffsets})
}

func (l *Layout) Rows() int { return len(l.rows) }

func (l *Layout) RowLen(row int) int {
	if row < 0 || row >= len(l.rows) {
		return 0
	}
	return len(l.rows[row])
}

// Extended reports whether the arrow cluster is present.
func (l *Layout) Extended() bool {
	return l.extended
}

// SpaceRow returns the index of the spacebar row, or -1 when the layout is
// too small to have one.
func (l *Layout) SpaceRow() int {
	if len(l.rows) < 2 {
		return -1
	}
	return len(l.rows) - 1
}

// Key returns the key at p.
func (l *Layout) Key(p nav.Position) (Key, bool) {
	if !nav.Valid(l, p) {
		return Key{}, false
	}
	return l.rows[p.Row][p.Col], true
}

// Row returns a copy of the keys on row r.
func (l *Layout) Row(r int) []Key {
	if r < 0 || r >= len(l.rows) {
		return nil
	}
	out := make([]Key, len(l.rows[r]))
	copy(out, l.rows[r])
	return out
}

// Find locates the first key whose label matches label case-insensitively.
func (l *Layout) Find(label string) (nav.Position, bool) {
	for r, row := range l.rows {
		for c, k := range row {
			if strings.EqualFold(k.Label, label) {
				return nav.Position{Col: c, Row: r}, true
			}
		}
	}
	return nav.Position{}, false
}

func (l *Layout) offset(row int) int {
	return l.offsets[row]
}
