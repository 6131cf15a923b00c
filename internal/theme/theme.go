package theme

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the colour set of one theme.
type Palette struct {
	Background      lipgloss.Color
	Foreground      lipgloss.Color
	SidebarBg       lipgloss.Color
	HeaderBg        lipgloss.Color
	BubbleUserBg    lipgloss.Color
	BubbleUserText  lipgloss.Color
	BubbleOtherBg   lipgloss.Color
	BubbleOtherText lipgloss.Color
	Border          lipgloss.Color
	InputBg         lipgloss.Color
	ButtonBg        lipgloss.Color
	ButtonHoverBg   lipgloss.Color
	Accent          lipgloss.Color
	Error           lipgloss.Color
}

var palettes = map[string]Palette{
	"dark": {
		Background:      "#1e1e1e",
		Foreground:      "#ffffff",
		SidebarBg:       "#2d2d2d",
		HeaderBg:        "#2d2d2d",
		BubbleUserBg:    "#428aff",
		BubbleUserText:  "#ffffff",
		BubbleOtherBg:   "#3a3b3c",
		BubbleOtherText: "#e4e6eb",
		Border:          "#4a4a4a",
		InputBg:         "#3a3b3c",
		ButtonBg:        "#4a4a4a",
		ButtonHoverBg:   "#5a5a5a",
		Accent:          "#428aff",
		Error:           "#ff5f5f",
	},
	"light": {
		Background:      "#ffffff",
		Foreground:      "#000000",
		SidebarBg:       "#f0f2f5",
		HeaderBg:        "#f0f2f5",
		BubbleUserBg:    "#0084ff",
		BubbleUserText:  "#ffffff",
		BubbleOtherBg:   "#e4e6eb",
		BubbleOtherText: "#050505",
		Border:          "#ced0d4",
		InputBg:         "#e4e6eb",
		ButtonBg:        "#e4e6eb",
		ButtonHoverBg:   "#dcdfe2",
		Accent:          "#0084ff",
		Error:           "#d70000",
	},
}

// Names lists the available themes.
func Names() []string {
	return []string{"dark", "light"}
}

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Name    string
	Palette Palette
	// KeyWidth is the cell width of one on-screen key or board tile.
	KeyWidth int

	Header        *lipgloss.Style
	Region        *lipgloss.Style
	FocusedRegion *lipgloss.Style
	Item          *lipgloss.Style
	SelectedItem  *lipgloss.Style
	ActiveItem    *lipgloss.Style
	Unread        *lipgloss.Style
	BubbleUser    *lipgloss.Style
	BubbleOther   *lipgloss.Style
	Timestamp     *lipgloss.Style
	Input         *lipgloss.Style
	Cursor        *lipgloss.Style
	Key           *lipgloss.Style
	FocusedKey    *lipgloss.Style
	Tile          *lipgloss.Style
	FocusedTile   *lipgloss.Style
	SelectedTile  *lipgloss.Style
	EmptyTile     *lipgloss.Style
	Error         *lipgloss.Style
	Info          *lipgloss.Style
	Footer        *lipgloss.Style
}

const baseKeyWidth = 5

// For builds the styles for the named theme scaled by size. Unknown names
// fall back to dark; size <= 0 counts as 1.
func For(name string, size float64) *Styles {
	name = strings.ToLower(strings.TrimSpace(name))
	p, ok := palettes[name]
	if !ok {
		name = "dark"
		p = palettes[name]
	}
	if size <= 0 {
		size = 1
	}
	keyWidth := int(math.Round(baseKeyWidth * size))
	if keyWidth < 3 {
		keyWidth = 3
	}

	return &Styles{
		Name:     name,
		Palette:  p,
		KeyWidth: keyWidth,
		Header: ptr(
			lipgloss.NewStyle().Foreground(p.Foreground).Background(p.HeaderBg).Bold(true).Padding(0, 1),
		),
		Region: ptr(
			lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border),
		),
		FocusedRegion: ptr(
			lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(p.Accent),
		),
		Item: ptr(
			lipgloss.NewStyle().Foreground(p.Foreground),
		),
		SelectedItem: ptr(
			lipgloss.NewStyle().Foreground(p.Foreground).Background(p.ButtonHoverBg).Bold(true),
		),
		ActiveItem: ptr(
			lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		),
		Unread: ptr(
			lipgloss.NewStyle().Foreground(p.BubbleUserText).Background(p.Accent).Padding(0, 1),
		),
		BubbleUser: ptr(
			lipgloss.NewStyle().Foreground(p.BubbleUserText).Background(p.BubbleUserBg).Padding(0, 1),
		),
		BubbleOther: ptr(
			lipgloss.NewStyle().Foreground(p.BubbleOtherText).Background(p.BubbleOtherBg).Padding(0, 1),
		),
		Timestamp: ptr(
			lipgloss.NewStyle().Foreground(p.Border).Italic(true),
		),
		Input: ptr(
			lipgloss.NewStyle().Foreground(p.Foreground).Background(p.InputBg).Padding(0, 1),
		),
		Cursor: ptr(
			lipgloss.NewStyle().Foreground(p.Background).Background(p.Accent),
		),
		Key: ptr(
			lipgloss.NewStyle().Foreground(p.Foreground).Background(p.ButtonBg).Align(lipgloss.Center),
		),
		FocusedKey: ptr(
			lipgloss.NewStyle().Foreground(p.BubbleUserText).Background(p.Accent).Bold(true).Align(lipgloss.Center),
		),
		Tile: ptr(
			lipgloss.NewStyle().Foreground(p.Foreground).Background(p.ButtonBg).Align(lipgloss.Center),
		),
		FocusedTile: ptr(
			lipgloss.NewStyle().Foreground(p.Foreground).Background(p.ButtonHoverBg).Bold(true).Underline(true).Align(lipgloss.Center),
		),
		SelectedTile: ptr(
			lipgloss.NewStyle().Foreground(p.BubbleUserText).Background(p.Accent).Bold(true).Align(lipgloss.Center),
		),
		EmptyTile: ptr(
			lipgloss.NewStyle().Foreground(p.Border).Align(lipgloss.Center),
		),
		Error: ptr(
			lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		),
		Info: ptr(
			lipgloss.NewStyle().Foreground(p.Border),
		),
		Footer: ptr(
			lipgloss.NewStyle().Foreground(p.Border),
		),
	}
}

// Default exposes the dark theme at normal size.
func Default() *Styles {
	return For("dark", 1)
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
