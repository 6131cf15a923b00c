package events

import "github.com/talkpad/talkpad/internal/logging"

type GamepadTracer struct{}

var Gamepad = GamepadTracer{}

func (GamepadTracer) Connected(id int) {
	logging.Trace("gamepad.connect", map[string]interface{}{"controller": id})
}

func (GamepadTracer) Disconnected(id int) {
	logging.Trace("gamepad.disconnect", map[string]interface{}{"controller": id})
}

func (GamepadTracer) Unavailable(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("gamepad.unavailable", payload)
}

func (GamepadTracer) Emit(id int, kind, dir string) {
	logging.Trace("gamepad.event", map[string]interface{}{"controller": id, "kind": kind, "dir": dir})
}
