package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/talkpad/talkpad/internal/logging"
	"github.com/talkpad/talkpad/internal/logging/events"
	"github.com/talkpad/talkpad/internal/store"
)

// Inbox is the persistence the webhook writes to.
type Inbox interface {
	EnsureContact(ctx context.Context, phone string) (store.Contact, bool, error)
	AddMessage(ctx context.Context, contactID int64, content string, dir store.Direction) (store.Message, error)
}

// Publisher fans a notification out to listening clients.
type Publisher interface {
	Publish(ctx context.Context, v any) error
}

// Notification is what subscribers receive for each inbound message.
type Notification struct {
	Type      string `json:"type"`
	ContactID int64  `json:"contactId"`
	MessageID int64  `json:"messageId"`
	Content   string `json:"content"`
	Phone     string `json:"phone"`
}

// TypeNewMessage tags inbound message notifications.
const TypeNewMessage = "new-message"

// Ingest stores an inbound message, creating the contact on first sight,
// and publishes a new-message notification when pub is non-nil. Publish
// failures are logged, not returned.
func Ingest(ctx context.Context, inbox Inbox, pub Publisher, in Inbound) (store.Message, error) {
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return store.Message{}, fmt.Errorf("ingest sms: missing phone")
	}
	contact, _, err := inbox.EnsureContact(ctx, phone)
	if err != nil {
		return store.Message{}, fmt.Errorf("ingest sms: %w", err)
	}
	msg, err := inbox.AddMessage(ctx, contact.ID, in.Content, store.Incoming)
	if err != nil {
		return store.Message{}, fmt.Errorf("ingest sms: %w", err)
	}
	events.Relay.Inbound(phone, contact.ID)
	if pub != nil {
		note := Notification{
			Type:      TypeNewMessage,
			ContactID: contact.ID,
			MessageID: msg.ID,
			Content:   in.Content,
			Phone:     phone,
		}
		if err := pub.Publish(ctx, note); err != nil {
			logging.Error(fmt.Errorf("publish new message: %w", err))
		}
	}
	return msg, nil
}

// WebhookHandler accepts inbound messages posted by the gateway.
type WebhookHandler struct {
	Inbox     Inbox
	Publisher Publisher
}

type webhookBody struct {
	Phone   string `json:"phone"`
	Sender  string `json:"sender"`
	From    string `json:"from"`
	Content string `json:"content"`
	Message string `json:"message"`
	Text    string `json:"text"`
}

func (b webhookBody) inbound() Inbound {
	return Inbound{
		Phone:   firstNonEmpty(b.Phone, b.Sender, b.From),
		Content: firstNonEmpty(b.Content, b.Message, b.Text),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method Not Allowed"})
		return
	}
	var body webhookBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}
	in := body.inbound()
	if strings.TrimSpace(in.Phone) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing phone"})
		return
	}
	msg, err := Ingest(r.Context(), h.Inbox, h.Publisher, in)
	if err != nil {
		logging.Error(err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to handle webhook"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "messageId": msg.ID, "contactId": msg.ContactID})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error(fmt.Errorf("write json response: %w", err))
	}
}
