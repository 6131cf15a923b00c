package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/talkpad/talkpad/internal/focus"
	"github.com/talkpad/talkpad/internal/format/table"
	"github.com/talkpad/talkpad/internal/nav"
	"github.com/talkpad/talkpad/internal/nav/keyboard"
	"github.com/talkpad/talkpad/internal/store"
)

const (
	appTitle       = "Talkpad"
	titleSeparator = " · "
	spaceKeyFactor = 6
)

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if m.screen == ScreenBoard {
		body = m.viewBoard()
	} else {
		body = m.viewChat()
	}
	return m.fitWidth(body)
}

func (m *Model) viewBoard() string {
	m.hits.reset()
	header := m.header("Board")
	b := m.board.Board()
	tileWidth := m.styles.KeyWidth*2 + 2
	rows := make([]string, 0, b.Rows())
	top := lipgloss.Height(header)
	for y := 0; y < b.Rows(); y++ {
		cells := make([]string, 0, b.Cols()*2)
		left := 0
		for x := 0; x < b.Cols(); x++ {
			if x > 0 {
				cells = append(cells, " ")
				left++
			}
			cell := m.renderTile(x, y, tileWidth)
			w := lipgloss.Width(cell)
			m.hits.add(hit{kind: hitTile, pos: nav.Position{Col: x, Row: y}, bounds: rect{X: left, Y: top, W: w, H: lipgloss.Height(cell)}})
			left += w
			cells = append(cells, cell)
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		top += lipgloss.Height(row)
		rows = append(rows, row)
	}
	parts := []string{
		header,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		m.statusLine(),
		m.footer(),
	}
	return strings.Join(parts, "\n")
}

func (m *Model) renderTile(x, y, width int) string {
	tile := m.board.Board().At(x, y)
	style := m.styles.Tile
	label := ""
	switch {
	case tile == nil:
		style = m.styles.EmptyTile
		label = "·"
	case tile.Empty:
		style = m.styles.EmptyTile
		label = tile.Label
	case m.board.IsSelected(tile.ID):
		style = m.styles.SelectedTile
		label = tile.Label
	default:
		label = tile.Label
	}
	if m.board.IsFocused(x, y) {
		style = m.styles.FocusedTile
	}
	return style.Width(width).Render(ansi.Truncate(label, width, "…"))
}

func (m *Model) viewChat() string {
	title := "Messages"
	if c, ok := m.contacts.Lookup(m.contacts.Selected()); ok {
		title = c.DisplayName()
	}
	m.hits.reset()
	parts := []string{m.header(title)}
	top := lipgloss.Height(parts[0])
	place := func(block string) {
		parts = append(parts, block)
		top += lipgloss.Height(block)
	}

	m.hits.origin(0, top)
	place(m.renderTopbar())

	m.hits.origin(0, top)
	sidebar := m.renderSidebar(m.sidebarWidth()-2, m.messages.Height)
	m.hits.origin(lipgloss.Width(sidebar), top)
	var pane string
	if m.modal != modalNone && !m.broker.Owns(focus.Messages) {
		pane = m.renderModal()
	} else {
		pane = m.regionStyle(focus.Messages).Width(m.messages.Width).Render(m.messages.View())
		m.hits.region(focus.Messages, pane)
	}
	place(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, pane))

	m.hits.origin(0, top)
	place(m.renderInput())
	if m.virtualKeyboard() {
		m.hits.origin(0, top)
		place(m.renderKeyboard())
	}
	place(m.statusLine())
	place(m.footer())
	return strings.Join(parts, "\n")
}

func (m *Model) header(title string) string {
	text := appTitle
	if title != "" {
		text += titleSeparator + title
	}
	return m.styles.Header.Render(text)
}

// regionStyle frames a region: thick when focused, accented while the
// selector highlights it.
func (m *Model) regionStyle(s focus.Section) lipgloss.Style {
	if m.broker.Owns(s) {
		return *m.styles.FocusedRegion
	}
	if m.selector.Active() && m.selector.Highlighted() == s {
		return m.styles.Region.BorderStyle(lipgloss.DoubleBorder()).BorderForeground(m.styles.Palette.Accent)
	}
	return *m.styles.Region
}

func (m *Model) renderTopbar() string {
	focused := m.broker.Owns(focus.Topbar)
	frame := m.regionStyle(focus.Topbar)
	left, top := frameOffset(frame)
	items := m.topbar.Items()
	cells := make([]string, 0, len(items)*2)
	for i, item := range items {
		if i > 0 {
			cells = append(cells, "  ")
			left += 2
		}
		style := m.styles.Item
		if focused && m.topbar.IsFocused(i) {
			style = m.styles.SelectedItem
		}
		cell := style.Render(" " + item.Label + " ")
		w := lipgloss.Width(cell)
		m.hits.add(hit{kind: hitItem, section: focus.Topbar, index: i, bounds: rect{X: left, Y: top, W: w, H: lipgloss.Height(cell)}})
		left += w
		cells = append(cells, cell)
	}
	block := frame.Width(m.innerWidth()).Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	m.hits.region(focus.Topbar, block)
	return block
}

func (m *Model) renderSidebar(width, height int) string {
	lines := make([]string, 0, height)
	title := "Contacts"
	if f := m.sidebar.Filter(); f != "" {
		title = "/" + f
	}
	lines = append(lines, m.styles.ActiveItem.Render(ansi.Truncate(title, width, "…")))

	items := m.sidebar.Items()
	if len(items) == 0 {
		msg := "(no contacts)"
		if f := m.sidebar.Filter(); f != "" {
			msg = fmt.Sprintf("No matches for %q", f)
		}
		lines = append(lines, m.styles.Info.Render(ansi.Truncate(msg, width, "…")))
		block := m.regionStyle(focus.Sidebar).Width(width).Height(height).Render(strings.Join(lines, "\n"))
		m.hits.region(focus.Sidebar, block)
		return block
	}

	selected := m.contacts.Selected()
	rows := make([][]string, 0, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id, _ := strconv.ParseInt(item.ID, 10, 64)
		marker := " "
		if id == selected {
			marker = "•"
		}
		unread := ""
		if n := m.contacts.Unread(id); n > 0 {
			unread = strconv.Itoa(n)
		}
		rows = append(rows, []string{marker, item.Label, unread})
		ids = append(ids, id)
	}
	formatted := table.Fit(table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight}), width)

	start, end := visibleWindow(len(formatted), m.sidebar.Index(), height-1)
	focused := m.broker.Owns(focus.Sidebar)
	frame := m.regionStyle(focus.Sidebar)
	left, top := frameOffset(frame)
	for i := start; i < end; i++ {
		m.hits.add(hit{kind: hitItem, section: focus.Sidebar, index: i, bounds: rect{X: left, Y: top + len(lines), W: width, H: 1}})
		style := m.styles.Item
		switch {
		case focused && m.sidebar.IsFocused(i):
			style = m.styles.SelectedItem
		case ids[i] == selected:
			style = m.styles.ActiveItem
		case m.contacts.Unread(ids[i]) > 0:
			style = m.styles.Unread
		}
		lines = append(lines, style.Render(formatted[i]))
	}
	block := frame.Width(width).Height(height).Render(strings.Join(lines, "\n"))
	m.hits.region(focus.Sidebar, block)
	return block
}

// visibleWindow returns the [start, end) slice of total rows that keeps
// cursor on screen within size rows.
func visibleWindow(total, cursor, size int) (int, int) {
	if size <= 0 || total <= size {
		return 0, total
	}
	start := cursor - size + 1
	if start < 0 {
		start = 0
	}
	return start, start + size
}

// renderModal draws the open modal over the conversation pane.
func (m *Model) renderModal() string {
	l := m.modalList()
	if l == nil {
		return ""
	}
	title := "Settings"
	if m.modal == modalContact && m.form != nil {
		title = m.form.title()
	}
	width := m.messages.Width
	frame := m.regionStyle(focus.Modal)
	left, top := frameOffset(frame)
	lines := []string{m.styles.ActiveItem.Render(title)}
	focused := m.broker.Owns(focus.Modal)
	for i, item := range l.Items() {
		style := m.styles.Item
		if focused && l.IsFocused(i) {
			style = m.styles.SelectedItem
		}
		line := style.Render(" " + ansi.Truncate(item.Label, width-2, "…") + " ")
		m.hits.add(hit{kind: hitItem, section: focus.Modal, index: i, bounds: rect{X: left, Y: top + len(lines), W: lipgloss.Width(line), H: 1}})
		lines = append(lines, line)
	}
	block := frame.Width(width).Height(m.messages.Height).Render(strings.Join(lines, "\n"))
	m.hits.region(focus.Modal, block)
	return block
}

func (m *Model) renderInput() string {
	buf := m.keyboard.Buffer()
	runes := []rune(buf.String())
	p := buf.Pointer()
	at, after := " ", ""
	if p < len(runes) {
		at = string(runes[p])
		after = string(runes[p+1:])
	}
	prompt := "Message: "
	if m.compose == composeField && m.form != nil {
		prompt = m.form.editing.prompt()
	}
	text := prompt + string(runes[:p]) + m.styles.Cursor.Render(at) + after
	block := m.regionStyle(focus.Keyboard).Width(m.innerWidth()).Render(text)
	m.hits.region(focus.Keyboard, block)
	return block
}

func (m *Model) renderKeyboard() string {
	l := m.keyboard.Layout()
	highlight := m.broker.Owns(focus.Keyboard) && m.arrowNavigation()
	rows := make([]string, 0, l.Rows())
	top := 0
	for r := 0; r < l.Rows(); r++ {
		row := l.Row(r)
		cells := make([]string, 0, len(row)*2)
		left := 0
		for c, k := range row {
			if c > 0 {
				cells = append(cells, " ")
				left++
			}
			label := m.keyboard.DisplayLabel(k)
			width := m.styles.KeyWidth
			if w := ansi.StringWidth(label) + 2; w > width {
				width = w
			}
			if k.Action.Kind == keyboard.ActionSpace {
				width = m.styles.KeyWidth * spaceKeyFactor
			}
			style := m.styles.Key
			switch {
			case highlight && m.keyboard.IsFocused(c, r):
				style = m.styles.FocusedKey
			case k.Action.Kind == keyboard.ActionCapsLock && m.keyboard.CapsLock():
				style = m.styles.SelectedTile
			}
			cell := style.Width(width).Render(label)
			w := lipgloss.Width(cell)
			m.hits.add(hit{kind: hitKey, section: focus.Keyboard, pos: nav.Position{Col: c, Row: r}, bounds: rect{X: left, Y: top, W: w, H: lipgloss.Height(cell)}})
			left += w
			cells = append(cells, cell)
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		top += lipgloss.Height(line)
		rows = append(rows, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// refreshMessages re-renders the open conversation into the viewport.
func (m *Model) refreshMessages() {
	if m.styles == nil {
		return
	}
	width := m.messages.Width
	msgs := m.conversation.Messages()
	if len(msgs) == 0 {
		placeholder := "Select a contact to start chatting"
		if m.conversation.ContactID() != 0 {
			placeholder = "No messages yet"
		}
		m.messages.SetContent(m.styles.Info.Render(placeholder))
		return
	}
	maxBubble := width * 3 / 4
	if maxBubble < 8 {
		maxBubble = width
	}
	lines := make([]string, 0, len(msgs)*2)
	for _, msg := range msgs {
		style, align := *m.styles.BubbleOther, lipgloss.Left
		if msg.Direction == store.Outgoing {
			style, align = *m.styles.BubbleUser, lipgloss.Right
		}
		if ansi.StringWidth(msg.Content)+2 > maxBubble {
			style = style.Width(maxBubble)
		}
		lines = append(lines, lipgloss.PlaceHorizontal(width, align, style.Render(msg.Content)))
		if !msg.CreatedAt.IsZero() {
			stamp := m.styles.Timestamp.Render(msg.CreatedAt.Local().Format("15:04"))
			lines = append(lines, lipgloss.PlaceHorizontal(width, align, stamp))
		}
	}
	m.messages.SetContent(strings.Join(lines, "\n"))
}

func (m *Model) statusLine() string {
	switch {
	case m.errMsg != "":
		return m.styles.Error.Render(m.errMsg)
	case m.currentInfo() != "":
		return m.styles.Info.Render(m.currentInfo())
	case m.backendLastErr != "":
		return m.styles.Error.Render(m.backendLastErr)
	}
	return ""
}

func (m *Model) footer() string {
	hints := footerHints(m.arrowNavigation())
	parts := make([]string, 0, len(hints))
	for _, b := range hints {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.styles.Footer.Render(strings.Join(parts, "  "))
}

func (m *Model) innerWidth() int {
	w := m.width - 2
	if w < 10 {
		w = 10
	}
	return w
}

// fitWidth truncates every line to the terminal width.
func (m *Model) fitWidth(s string) string {
	if m.width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if ansi.StringWidth(line) > m.width {
			lines[i] = ansi.Truncate(line, m.width, "")
		}
	}
	return strings.Join(lines, "\n")
}
