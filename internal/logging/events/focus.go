package events

import "github.com/talkpad/talkpad/internal/logging"

type FocusTracer struct{}

var Focus = FocusTracer{}

func (FocusTracer) Change(from, to string) {
	logging.Trace("focus.change", map[string]interface{}{"from": from, "to": to})
}

func (FocusTracer) Select(index int, section string) {
	logging.Trace("focus.selector", map[string]interface{}{"index": index, "section": section})
}
