package keyboard

import (
	"testing"

	"github.com/talkpad/talkpad/internal/nav"
)

func pos(col, row int) nav.Position { return nav.Position{Col: col, Row: row} }

func TestTypingHelloThenBackspace(t *testing.T) {
	k := New(Default(false), nil, Callbacks{})
	for _, label := range []string{"h", "e", "l", "l", "o"} {
		if !k.PressLabel(label) {
			t.Fatalf("expected key %q to exist", label)
		}
	}
	if got := k.Buffer().String(); got != "hello" {
		t.Fatalf("expected buffer %q, got %q", "hello", got)
	}
	if got := k.Buffer().Pointer(); got != 5 {
		t.Fatalf("expected pointer 5, got %d", got)
	}
	k.PressLabel(LabelBackspace)
	if got := k.Buffer().String(); got != "hell" {
		t.Fatalf("expected buffer %q after backspace, got %q", "hell", got)
	}
	if got := k.Buffer().Pointer(); got != 4 {
		t.Fatalf("expected pointer 4 after backspace, got %d", got)
	}
}

func TestBackspaceAtStartIsNoop(t *testing.T) {
	k := New(Default(true), NewBuffer("abc"), Callbacks{})
	k.Buffer().SetPointer(0)
	if k.PressLabel(LabelBackspace) {
		t.Fatalf("expected backspace at pointer 0 to report no change")
	}
	if k.Buffer().String() != "abc" || k.Buffer().Pointer() != 0 {
		t.Fatalf("expected buffer untouched, got %q pointer %d", k.Buffer().String(), k.Buffer().Pointer())
	}

	empty := New(Default(false), nil, Callbacks{})
	if empty.PressLabel(LabelBackspace) {
		t.Fatalf("expected backspace on empty buffer to be a no-op")
	}
}

func TestInsertAdvancesPointerByOne(t *testing.T) {
	k := New(Default(true), NewBuffer("ac"), Callbacks{})
	k.Buffer().SetPointer(1)
	before := k.Buffer().Len()
	k.PressLabel("b")
	if k.Buffer().Pointer() != 2 || k.Buffer().Len() != before+1 {
		t.Fatalf("expected pointer 2 and length %d, got pointer %d length %d", before+1, k.Buffer().Pointer(), k.Buffer().Len())
	}
	if got := k.Buffer().String(); got != "abc" {
		t.Fatalf("expected mid-buffer insert, got %q", got)
	}
	k.PressLabel(LabelSpace)
	if got := k.Buffer().String(); got != "ab c" {
		t.Fatalf("expected space inserted at pointer, got %q", got)
	}
}

func TestCapsLockFoldsLetters(t *testing.T) {
	k := New(Default(false), nil, Callbacks{})
	k.PressLabel(LabelCapsLock)
	if !k.CapsLock() {
		t.Fatalf("expected caps lock on")
	}
	if k.Buffer().Len() != 0 {
		t.Fatalf("expected caps lock not to touch the buffer")
	}
	k.PressLabel("å")
	k.PressLabel(LabelCapsLock)
	k.PressLabel("Ø")
	k.PressLabel(",")
	if got := k.Buffer().String(); got != "Åø," {
		t.Fatalf("expected %q, got %q", "Åø,", got)
	}
}

func TestEnterFallsBackToNewline(t *testing.T) {
	k := New(Default(false), nil, Callbacks{})
	k.PressLabel("a")
	k.PressLabel(LabelEnter)
	if got := k.Buffer().String(); got != "a\n" {
		t.Fatalf("expected newline insert, got %q", got)
	}

	submitted := 0
	k.SetCallbacks(Callbacks{OnSubmit: func() { submitted++ }})
	k.PressLabel(LabelEnter)
	if submitted != 1 {
		t.Fatalf("expected submit callback once, got %d", submitted)
	}
	if got := k.Buffer().String(); got != "a\n" {
		t.Fatalf("expected submit not to edit the buffer, got %q", got)
	}
}

func TestBackInvokesCancelWhenRegistered(t *testing.T) {
	k := New(Default(false), nil, Callbacks{})
	if k.PressLabel(LabelBack) {
		t.Fatalf("expected Back without callback to be a no-op")
	}
	cancelled := false
	k.SetCallbacks(Callbacks{OnCancel: func() { cancelled = true }})
	if !k.PressLabel(LabelBack) || !cancelled {
		t.Fatalf("expected cancel callback to run")
	}
}

func TestArrowClusterKeys(t *testing.T) {
	var scrolls []nav.Direction
	k := New(Default(true), NewBuffer("ab"), Callbacks{OnScroll: func(d nav.Direction) { scrolls = append(scrolls, d) }})
	k.PressLabel(LabelArrowLeft)
	k.PressLabel(LabelArrowLeft)
	k.PressLabel(LabelArrowLeft)
	if k.Buffer().Pointer() != 0 {
		t.Fatalf("expected pointer clamped at 0, got %d", k.Buffer().Pointer())
	}
	k.PressLabel(LabelArrowRight)
	if k.Buffer().Pointer() != 1 {
		t.Fatalf("expected pointer 1, got %d", k.Buffer().Pointer())
	}
	k.PressLabel(LabelArrowUp)
	k.PressLabel(LabelArrowDown)
	if k.Buffer().Pointer() != 1 {
		t.Fatalf("expected scroll keys to leave pointer alone, got %d", k.Buffer().Pointer())
	}
	if len(scrolls) != 2 || scrolls[0] != nav.DirUp || scrolls[1] != nav.DirDown {
		t.Fatalf("expected up then down scroll requests, got %v", scrolls)
	}
	if k.Buffer().String() != "ab" {
		t.Fatalf("expected arrow keys not to edit text, got %q", k.Buffer().String())
	}
}

func TestArrowClusterOnlyInExtendedLayout(t *testing.T) {
	if _, ok := Default(false).Find(LabelArrowUp); ok {
		t.Fatalf("expected no arrow cluster in the standard layout")
	}
	l := Default(true)
	up, ok := l.Find(LabelArrowUp)
	if !ok || up != pos(10, 3) {
		t.Fatalf("expected ↑ at (10,3), got %+v ok=%v", up, ok)
	}
	if l.RowLen(4) != 4 {
		t.Fatalf("expected spacebar row with three arrow keys, got %d keys", l.RowLen(4))
	}
}

func TestActivatePressesKeyUnderCursor(t *testing.T) {
	k := New(Default(false), nil, Callbacks{})
	k.Move(nav.DirDown)
	if !k.Activate() {
		t.Fatalf("expected activation to be handled")
	}
	if got := k.Buffer().String(); got != "q" {
		t.Fatalf("expected %q, got %q", "q", got)
	}
}

func TestResolveUnknownLabel(t *testing.T) {
	if a := Resolve("Shift"); a.Kind != ActionNone {
		t.Fatalf("expected unknown multi-rune label to resolve to none, got %s", a.Kind)
	}
	if a := Resolve(`"`); a.Kind != ActionChar || a.Char != '"' {
		t.Fatalf("expected quote to type itself, got %+v", a)
	}
}

func TestNilLayoutIsInert(t *testing.T) {
	k := New(nil, nil, Callbacks{})
	if k.Layout() == nil || k.Layout().Rows() != 0 {
		t.Fatalf("expected an empty layout, got %+v", k.Layout())
	}
	if k.Move(nav.DirDown) || k.Activate() || k.PressLabel("a") {
		t.Fatalf("expected an empty keyboard to ignore input")
	}
	if k.Buffer().String() != "" {
		t.Fatalf("expected untouched buffer, got %q", k.Buffer().String())
	}
}

func TestPressAtMovesCursorAndTypes(t *testing.T) {
	k := New(Default(false), nil, Callbacks{})
	h, _ := k.Layout().Find("H")
	if !k.PressAt(h) {
		t.Fatalf("expected H to be pressed")
	}
	if k.Position() != h || k.Buffer().String() != "h" {
		t.Fatalf("expected cursor on H and buffer h, got %+v %q", k.Position(), k.Buffer().String())
	}
	if k.PressAt(pos(40, 0)) {
		t.Fatalf("expected a position off the layout to be ignored")
	}
	if k.Position() != h {
		t.Fatalf("expected cursor unchanged, got %+v", k.Position())
	}
}
