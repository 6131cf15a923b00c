package backend

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/talkpad/talkpad/internal/sms"
	"github.com/talkpad/talkpad/internal/store"
)

type fakeSource struct {
	mu       sync.Mutex
	contacts []store.Contact
	messages []store.Message
}

func (f *fakeSource) ListContacts(context.Context) ([]store.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]store.Contact(nil), f.contacts...), nil
}

func (f *fakeSource) MessagesSince(_ context.Context, after int64) ([]store.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []store.Message
	for _, m := range f.messages {
		if m.ID > after {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeSource) Settings(context.Context) (store.Settings, error) {
	return store.DefaultSettings(), nil
}

func (f *fakeSource) add(m store.Message) {
	f.mu.Lock()
	f.messages = append(f.messages, m)
	f.mu.Unlock()
}

func waitFor(t *testing.T, w *Watcher, match func(Event) bool) Event {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				t.Fatalf("events channel closed")
			}
			if match(evt) {
				return evt
			}
		case <-timeout:
			t.Fatalf("timed out waiting for event")
		}
	}
}

func TestWatcherEmitsInitialSnapshots(t *testing.T) {
	src := &fakeSource{contacts: []store.Contact{{ID: 1, Name: "Anna"}}}
	w := NewWatcher(src, Options{Interval: time.Hour})
	defer func() {
		w.Stop()
		w.Wait()
	}()

	seen := map[Kind]bool{}
	for len(seen) < 3 {
		evt := waitFor(t, w, func(Event) bool { return true })
		if evt.Err != nil {
			t.Fatalf("unexpected error for %s: %v", evt.Kind, evt.Err)
		}
		seen[evt.Kind] = true
	}
	if !seen[KindContacts] || !seen[KindMessages] || !seen[KindSettings] {
		t.Fatalf("expected contacts, messages and settings, got %v", seen)
	}
}

func TestNudgeFetchesOnlyNewMessages(t *testing.T) {
	src := &fakeSource{messages: []store.Message{{ID: 1, ContactID: 1}}}
	w := NewWatcher(src, Options{Interval: time.Hour, AfterID: 1})
	defer func() {
		w.Stop()
		w.Wait()
	}()

	first := waitFor(t, w, func(e Event) bool { return e.Kind == KindMessages })
	if batch := first.Data.(MessageBatch); len(batch.Messages) != 0 {
		t.Fatalf("expected nothing newer than AfterID, got %+v", batch.Messages)
	}

	src.add(store.Message{ID: 2, ContactID: 1, Content: "hei"})
	w.Nudge()
	evt := waitFor(t, w, func(e Event) bool { return e.Kind == KindMessages })
	batch := evt.Data.(MessageBatch)
	if len(batch.Messages) != 1 || batch.LastID != 2 {
		t.Fatalf("expected message 2, got %+v", batch)
	}
}

type fakeGateway struct {
	mu      sync.Mutex
	pending []sms.Inbound
}

func (g *fakeGateway) Receive(context.Context) ([]sms.Inbound, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.pending
	g.pending = nil
	return out, nil
}

type fakeInbox struct {
	mu    sync.Mutex
	added []string
}

func (f *fakeInbox) EnsureContact(_ context.Context, phone string) (store.Contact, bool, error) {
	return store.Contact{ID: 9, Phone: phone}, false, nil
}

func (f *fakeInbox) AddMessage(_ context.Context, contactID int64, content string, dir store.Direction) (store.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, content)
	return store.Message{ID: int64(len(f.added)), ContactID: contactID, Content: content, Direction: dir}, nil
}

func TestInboxPollerIngestsGatewayMessages(t *testing.T) {
	gw := &fakeGateway{pending: []sms.Inbound{{Phone: "+47", Content: "a"}, {Phone: "+47", Content: "b"}}}
	inbox := &fakeInbox{}
	w := NewWatcher(&fakeSource{}, Options{Interval: time.Hour, Gateway: gw, Inbox: inbox})
	defer func() {
		w.Stop()
		w.Wait()
	}()

	evt := waitFor(t, w, func(e Event) bool { return e.Kind == KindInbox })
	if evt.Err != nil || evt.Data.(int) != 2 {
		t.Fatalf("expected two ingested messages, got %v (%v)", evt.Data, evt.Err)
	}
	inbox.mu.Lock()
	defer inbox.mu.Unlock()
	if len(inbox.added) != 2 || inbox.added[1] != "b" {
		t.Fatalf("unexpected ingested content %v", inbox.added)
	}
}

func TestStopClosesEvents(t *testing.T) {
	w := NewWatcher(&fakeSource{}, Options{Interval: time.Hour})
	w.Stop()
	w.Wait()
	for range w.Events() {
	}
}
