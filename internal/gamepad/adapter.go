// Package gamepad turns analog controller state into discrete navigation
// events: one move per stick deflection, plus activate and backspace buttons.
package gamepad

import (
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/talkpad/talkpad/internal/logging"
	"github.com/talkpad/talkpad/internal/logging/events"
	"github.com/talkpad/talkpad/internal/nav"
)

// ErrUnavailable reports that no controller API could be opened.
var ErrUnavailable = errors.New("gamepad: controller unavailable")

const (
	DefaultDeadzone      = 0.4
	DefaultDebounce      = 100 * time.Millisecond
	DefaultFrame         = 16 * time.Millisecond
	DefaultConfirmButton = 0
	DefaultDeleteButton  = 3
)

// Config tunes the adapter.
type Config struct {
	Deadzone      float64
	Debounce      time.Duration
	Frame         time.Duration
	ConfirmButton int
	DeleteButton  int
	// Repeat lets a held stick emit again once the debounce window has
	// elapsed. Without it the stick must return inside the deadzone first.
	Repeat bool
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Deadzone:      DefaultDeadzone,
		Debounce:      DefaultDebounce,
		Frame:         DefaultFrame,
		ConfirmButton: DefaultConfirmButton,
		DeleteButton:  DefaultDeleteButton,
	}
}

// Snapshot is one frame of controller state. Axes 0 and 1 are the left
// stick X and Y in [-1, 1]; positive Y points down.
type Snapshot struct {
	Axes    []float64
	Buttons []bool
}

// Source reads the current snapshot of a connected controller.
type Source interface {
	Snapshot(id int) (Snapshot, bool)
}

// EventKind classifies synthesized events.
type EventKind int

const (
	EventMove EventKind = iota
	EventActivate
	EventBackspace
)

func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventActivate:
		return "activate"
	case EventBackspace:
		return "backspace"
	default:
		return "unknown"
	}
}

// Event is a discrete input derived from analog state.
type Event struct {
	Controller int
	Kind       EventKind
	Dir        nav.Direction
}

type analogState struct {
	primed     bool
	buttons    []bool
	xActive    bool
	yActive    bool
	lastAccept time.Time
	accepted   bool
}

// Adapter polls connected controllers once per frame while at least one is
// connected.
type Adapter struct {
	mu          sync.Mutex
	cfg         Config
	source      Source
	sched       Scheduler
	clock       Clock
	sink        func(Event)
	controllers map[int]*analogState
	cancel      func()
	disabled    bool
}

// NewAdapter builds an adapter. sink receives events outside the adapter's
// lock, on whichever goroutine runs Poll.
func NewAdapter(cfg Config, src Source, sched Scheduler, clock Clock, sink func(Event)) *Adapter {
	if clock == nil {
		clock = SystemClock{}
	}
	if cfg.Frame <= 0 {
		cfg.Frame = DefaultFrame
	}
	return &Adapter{
		cfg:         cfg,
		source:      src,
		sched:       sched,
		clock:       clock,
		sink:        sink,
		controllers: make(map[int]*analogState),
		disabled:    src == nil || sched == nil,
	}
}

// Disabled returns an adapter that ignores every call. err explains why the
// controller API could not be used and is logged once.
func Disabled(err error) *Adapter {
	if err == nil {
		err = ErrUnavailable
	}
	logging.Warnf("gamepad disabled: %v", err)
	events.Gamepad.Unavailable(err)
	return &Adapter{controllers: make(map[int]*analogState), disabled: true}
}

// Enabled reports whether the adapter will ever emit events.
func (a *Adapter) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.disabled
}

// Connect registers controller id. Polling starts with the first controller.
func (a *Adapter) Connect(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disabled {
		return
	}
	if _, ok := a.controllers[id]; ok {
		return
	}
	a.controllers[id] = &analogState{}
	events.Gamepad.Connected(id)
	if a.cancel == nil {
		a.cancel = a.sched.Every(a.cfg.Frame, a.Poll)
	}
}

// Disconnect discards controller id. Polling stops with the last controller.
func (a *Adapter) Disconnect(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.controllers[id]; !ok {
		return
	}
	delete(a.controllers, id)
	events.Gamepad.Disconnected(id)
	if len(a.controllers) == 0 && a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

// Connected returns the registered controller ids in ascending order.
func (a *Adapter) Connected() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	ids := make([]int, 0, len(a.controllers))
	for id := range a.controllers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Polling reports whether a poll task is scheduled.
func (a *Adapter) Polling() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancel != nil
}

// Close disconnects every controller.
func (a *Adapter) Close() {
	for _, id := range a.Connected() {
		a.Disconnect(id)
	}
}

// Poll reads every connected controller once and delivers the resulting
// events to the sink.
func (a *Adapter) Poll() {
	a.mu.Lock()
	if a.disabled {
		a.mu.Unlock()
		return
	}
	now := a.clock.Now()
	ids := make([]int, 0, len(a.controllers))
	for id := range a.controllers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	var out []Event
	for _, id := range ids {
		snap, ok := a.source.Snapshot(id)
		if !ok {
			continue
		}
		out = a.step(id, a.controllers[id], snap, now, out)
	}
	sink := a.sink
	a.mu.Unlock()

	for _, ev := range out {
		events.Gamepad.Emit(ev.Controller, ev.Kind.String(), ev.Dir.String())
		if sink != nil {
			sink(ev)
		}
	}
}

func (a *Adapter) step(id int, st *analogState, snap Snapshot, now time.Time, out []Event) []Event {
	x, y := axis(snap.Axes, 0), axis(snap.Axes, 1)
	xActive := math.Abs(x) > a.cfg.Deadzone
	yActive := math.Abs(y) > a.cfg.Deadzone

	if a.fires(st, xActive, st.xActive, now) {
		dir := nav.DirRight
		if x < 0 {
			dir = nav.DirLeft
		}
		out = append(out, Event{Controller: id, Kind: EventMove, Dir: dir})
		st.accept(now)
	}
	if a.fires(st, yActive, st.yActive, now) {
		dir := nav.DirDown
		if y < 0 {
			dir = nav.DirUp
		}
		out = append(out, Event{Controller: id, Kind: EventMove, Dir: dir})
		st.accept(now)
	}
	st.xActive, st.yActive = xActive, yActive

	if !st.primed {
		st.buttons = append(st.buttons[:0], snap.Buttons...)
		st.primed = true
		return out
	}
	for i, pressed := range snap.Buttons {
		if !pressed || (i < len(st.buttons) && st.buttons[i]) {
			continue
		}
		switch i {
		case a.cfg.ConfirmButton:
			out = append(out, Event{Controller: id, Kind: EventActivate})
			st.accept(now)
		case a.cfg.DeleteButton:
			out = append(out, Event{Controller: id, Kind: EventBackspace})
			st.accept(now)
		}
	}
	st.buttons = append(st.buttons[:0], snap.Buttons...)
	return out
}

func (a *Adapter) fires(st *analogState, active, wasActive bool, now time.Time) bool {
	if !active {
		return false
	}
	if wasActive && !a.cfg.Repeat {
		return false
	}
	return !st.accepted || now.Sub(st.lastAccept) >= a.cfg.Debounce
}

func (st *analogState) accept(now time.Time) {
	st.lastAccept = now
	st.accepted = true
}

func axis(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
