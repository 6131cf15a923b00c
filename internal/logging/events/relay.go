package events

import "github.com/talkpad/talkpad/internal/logging"

type RelayTracer struct{}

var Relay = RelayTracer{}

func (RelayTracer) Subscribe(id string, total int) {
	logging.Trace("relay.subscribe", map[string]interface{}{"subscriber": id, "total": total})
}

func (RelayTracer) Unsubscribe(id string, total int) {
	logging.Trace("relay.unsubscribe", map[string]interface{}{"subscriber": id, "total": total})
}

func (RelayTracer) Publish(kind string, delivered, dropped int) {
	logging.Trace("relay.publish", map[string]interface{}{"type": kind, "delivered": delivered, "dropped": dropped})
}

func (RelayTracer) Inbound(phone string, contactID int64) {
	logging.Trace("sms.inbound", map[string]interface{}{"phone": phone, "contact": contactID})
}
