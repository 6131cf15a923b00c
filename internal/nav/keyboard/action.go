package keyboard

import (
	"unicode/utf8"

	"github.com/talkpad/talkpad/internal/nav"
)

// ActionKind discriminates what a key does when activated.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionChar
	ActionSpace
	ActionBackspace
	ActionCapsLock
	ActionSubmit
	ActionCancel
	ActionPointerMove // arrow-cluster left/right
	ActionScroll      // arrow-cluster up/down
)

func (k ActionKind) String() string {
	switch k {
	case ActionChar:
		return "char"
	case ActionSpace:
		return "space"
	case ActionBackspace:
		return "backspace"
	case ActionCapsLock:
		return "capslock"
	case ActionSubmit:
		return "submit"
	case ActionCancel:
		return "cancel"
	case ActionPointerMove:
		return "pointer"
	case ActionScroll:
		return "scroll"
	default:
		return "none"
	}
}

// Action is the resolved behaviour of a key.
type Action struct {
	Kind ActionKind
	Char rune
	Dir  nav.Direction
}

// Key is one cell of the virtual keyboard.
type Key struct {
	Label  string
	Action Action
}

// Labels of keys with a dedicated action.
const (
	LabelSpace      = "Space"
	LabelBackspace  = "Backspace"
	LabelCapsLock   = "Caps Lock"
	LabelEnter      = "Enter"
	LabelBack       = "Back"
	LabelArrowUp    = "↑"
	LabelArrowDown  = "↓"
	LabelArrowLeft  = "←"
	LabelArrowRight = "→"
)

// Resolve maps a key label to its action. Single-rune labels type that rune;
// unknown multi-rune labels resolve to ActionNone.
func Resolve(label string) Action {
	switch label {
	case LabelSpace:
		return Action{Kind: ActionSpace}
	case LabelBackspace:
		return Action{Kind: ActionBackspace}
	case LabelCapsLock:
		return Action{Kind: ActionCapsLock}
	case LabelEnter, "Return":
		return Action{Kind: ActionSubmit}
	case LabelBack:
		return Action{Kind: ActionCancel}
	case LabelArrowLeft:
		return Action{Kind: ActionPointerMove, Dir: nav.DirLeft}
	case LabelArrowRight:
		return Action{Kind: ActionPointerMove, Dir: nav.DirRight}
	case LabelArrowUp:
		return Action{Kind: ActionScroll, Dir: nav.DirUp}
	case LabelArrowDown:
		return Action{Kind: ActionScroll, Dir: nav.DirDown}
	}
	if utf8.RuneCountInString(label) == 1 {
		r, _ := utf8.DecodeRuneInString(label)
		return Action{Kind: ActionChar, Char: r}
	}
	return Action{}
}
