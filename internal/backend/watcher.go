package backend

import (
	"context"
	"sync"
	"time"

	"github.com/talkpad/talkpad/internal/sms"
	"github.com/talkpad/talkpad/internal/store"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindContacts Kind = iota
	KindMessages
	KindSettings
	KindInbox
)

func (k Kind) String() string {
	switch k {
	case KindContacts:
		return "contacts"
	case KindMessages:
		return "messages"
	case KindSettings:
		return "settings"
	case KindInbox:
		return "inbox"
	default:
		return "unknown"
	}
}

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Source is the persistence the watcher reads.
type Source interface {
	ListContacts(ctx context.Context) ([]store.Contact, error)
	MessagesSince(ctx context.Context, afterID int64) ([]store.Message, error)
	Settings(ctx context.Context) (store.Settings, error)
}

// Gateway reads messages the SMS gateway has queued.
type Gateway interface {
	Receive(ctx context.Context) ([]sms.Inbound, error)
}

// MessageBatch is the Data of a KindMessages event.
type MessageBatch struct {
	Messages []store.Message
	LastID   int64
}

// Options configure a Watcher.
type Options struct {
	Interval time.Duration
	// AfterID is the highest message id already shown.
	AfterID int64
	// Gateway, when set, is polled and its messages ingested into Inbox.
	Gateway Gateway
	Inbox   sms.Inbox
	// Publisher receives new-message notifications for ingested messages.
	Publisher sms.Publisher
}

// Watcher polls the store at a fixed interval and publishes events.
type Watcher struct {
	source   Source
	opts     Options
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	nudge  chan struct{}
	wg     sync.WaitGroup

	mu     sync.Mutex
	lastID int64
}

// NewWatcher creates a backend watcher and starts its pollers.
func NewWatcher(source Source, opts Options) *Watcher {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		opts:     opts,
		interval: opts.Interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
		nudge:    make(chan struct{}, 1),
		lastID:   opts.AfterID,
	}

	w.startContactPoller()
	w.startMessagePoller()
	w.startSettingsPoller()
	if opts.Gateway != nil && opts.Inbox != nil {
		w.startInboxPoller()
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Nudge asks the message poller to run now instead of waiting for the next
// tick. Extra nudges while one is pending are dropped.
func (w *Watcher) Nudge() {
	select {
	case w.nudge <- struct{}{}:
	default:
	}
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startContactPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindContacts, nil, func(ctx context.Context) (interface{}, error) {
		if err := throttle.wait(ctx); err != nil {
			return nil, err
		}
		return w.source.ListContacts(ctx)
	})
}

func (w *Watcher) startMessagePoller() {
	throttle := newThrottle(100 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindMessages, w.nudge, func(ctx context.Context) (interface{}, error) {
		if err := throttle.wait(ctx); err != nil {
			return nil, err
		}
		w.mu.Lock()
		after := w.lastID
		w.mu.Unlock()
		msgs, err := w.source.MessagesSince(ctx, after)
		if err != nil {
			return nil, err
		}
		for _, m := range msgs {
			if m.ID > after {
				after = m.ID
			}
		}
		w.mu.Lock()
		w.lastID = after
		w.mu.Unlock()
		return MessageBatch{Messages: msgs, LastID: after}, nil
	})
}

func (w *Watcher) startSettingsPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindSettings, nil, func(ctx context.Context) (interface{}, error) {
		if err := throttle.wait(ctx); err != nil {
			return nil, err
		}
		return w.source.Settings(ctx)
	})
}

func (w *Watcher) startInboxPoller() {
	throttle := newThrottle(time.Second)
	w.wg.Add(1)
	go w.poll(KindInbox, nil, func(ctx context.Context) (interface{}, error) {
		if err := throttle.wait(ctx); err != nil {
			return nil, err
		}
		inbound, err := w.opts.Gateway.Receive(ctx)
		if err != nil {
			return nil, err
		}
		stored := 0
		for _, in := range inbound {
			if _, err := sms.Ingest(ctx, w.opts.Inbox, w.opts.Publisher, in); err != nil {
				return stored, err
			}
			stored++
		}
		if stored > 0 {
			w.Nudge()
		}
		return stored, nil
	})
}

func (w *Watcher) poll(kind Kind, wake <-chan struct{}, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		case <-wake:
			if !emit() {
				return
			}
		}
	}
}
