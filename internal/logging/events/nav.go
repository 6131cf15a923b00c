package events

import "github.com/talkpad/talkpad/internal/logging"

type NavTracer struct{}

type KeyboardTracer struct{}

var (
	Nav      = NavTracer{}
	Keyboard = KeyboardTracer{}
)

func (NavTracer) GridCursor(region string, col, row int) {
	logging.Trace("grid.cursor", map[string]interface{}{"region": region, "col": col, "row": row})
}

func (NavTracer) TileToggle(id string, selected bool) {
	logging.Trace("board.toggle", map[string]interface{}{"tile": id, "selected": selected})
}

func (NavTracer) ListCursor(region string, index int) {
	logging.Trace("list.cursor", map[string]interface{}{"region": region, "index": index})
}

func (NavTracer) ListActivate(region, itemID string) {
	logging.Trace("list.activate", map[string]interface{}{"region": region, "item": itemID})
}

func (NavTracer) ListFilter(region, query string, matches int) {
	logging.Trace("list.filter", map[string]interface{}{"region": region, "query": query, "matches": matches})
}

func (KeyboardTracer) Cursor(col, row int) {
	logging.Trace("keyboard.cursor", map[string]interface{}{"col": col, "row": row})
}

func (KeyboardTracer) Press(action, label string, pointer, length int) {
	logging.Trace("keyboard.press", map[string]interface{}{
		"action":  action,
		"label":   label,
		"pointer": pointer,
		"length":  length,
	})
}
