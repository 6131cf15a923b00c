package gamepad

import (
	"errors"
	"testing"
	"time"

	"github.com/talkpad/talkpad/internal/nav"
	"github.com/talkpad/talkpad/internal/testutil"
)

type fakeSource struct {
	snaps map[int]Snapshot
}

func (f *fakeSource) Snapshot(id int) (Snapshot, bool) {
	s, ok := f.snaps[id]
	return s, ok
}

func (f *fakeSource) set(id int, x, y float64, buttons ...bool) {
	f.snaps[id] = Snapshot{Axes: []float64{x, y}, Buttons: buttons}
}

type rig struct {
	src    *fakeSource
	sched  *ManualScheduler
	clock  *FakeClock
	events []Event
	a      *Adapter
}

func newRig(cfg Config) *rig {
	r := &rig{
		src:   &fakeSource{snaps: map[int]Snapshot{}},
		sched: NewManualScheduler(),
		clock: NewFakeClock(time.Unix(1000, 0)),
	}
	r.a = NewAdapter(cfg, r.src, r.sched, r.clock, func(ev Event) { r.events = append(r.events, ev) })
	return r
}

func (r *rig) frame() {
	r.sched.Tick()
	r.clock.Advance(DefaultFrame)
}

func TestHeldStickEmitsOnce(t *testing.T) {
	r := newRig(DefaultConfig())
	r.a.Connect(0)
	r.src.set(0, 0.9, 0)
	for i := 0; i < 30; i++ {
		r.frame()
	}
	if len(r.events) != 1 {
		t.Fatalf("expected one move for a held stick, got %d", len(r.events))
	}
	if r.events[0].Kind != EventMove || r.events[0].Dir != nav.DirRight {
		t.Fatalf("expected move right, got %+v", r.events[0])
	}
}

func TestReleaseAndReassertRespectsDebounce(t *testing.T) {
	r := newRig(DefaultConfig())
	r.a.Connect(0)
	r.src.set(0, 0, -0.8)
	r.frame()
	r.src.set(0, 0, 0)
	r.frame()
	r.src.set(0, 0, -0.8)
	r.frame()
	if len(r.events) != 1 {
		t.Fatalf("expected reassert inside the debounce window to be dropped, got %d events", len(r.events))
	}
	r.src.set(0, 0, 0)
	r.clock.Advance(DefaultDebounce)
	r.frame()
	r.src.set(0, 0, 0.8)
	r.frame()
	if len(r.events) != 2 || r.events[1].Dir != nav.DirDown {
		t.Fatalf("expected a second move down after the window, got %+v", r.events)
	}
	if r.events[0].Dir != nav.DirUp {
		t.Fatalf("expected first move up, got %s", r.events[0].Dir)
	}
}

func TestRepeatEmitsAtMostOncePerInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Repeat = true
	r := newRig(cfg)
	r.a.Connect(0)
	r.src.set(0, -1, 0)
	// 16ms frames over 320ms: accepted at 0, 112, 224 ms.
	for i := 0; i < 20; i++ {
		r.frame()
	}
	if len(r.events) != 3 {
		t.Fatalf("expected three repeats in 320ms, got %d", len(r.events))
	}
	for _, ev := range r.events {
		if ev.Dir != nav.DirLeft {
			t.Fatalf("expected left moves, got %s", ev.Dir)
		}
	}
}

func TestDeadzoneIsExclusive(t *testing.T) {
	r := newRig(DefaultConfig())
	r.a.Connect(0)
	r.src.set(0, DefaultDeadzone, -DefaultDeadzone)
	r.frame()
	if len(r.events) != 0 {
		t.Fatalf("expected deflection equal to the deadzone to be ignored, got %+v", r.events)
	}
}

func TestButtonsFireOnRisingEdgeAfterFirstFrame(t *testing.T) {
	r := newRig(DefaultConfig())
	r.a.Connect(0)
	r.src.set(0, 0, 0, true, false, false, false)
	r.frame()
	if len(r.events) != 0 {
		t.Fatalf("expected first frame to only record buttons, got %+v", r.events)
	}
	r.frame()
	r.src.set(0, 0, 0, false, false, false, false)
	r.frame()
	r.src.set(0, 0, 0, true, false, false, true)
	r.frame()
	r.frame()
	if len(r.events) != 2 {
		t.Fatalf("expected activate and backspace once each, got %+v", r.events)
	}
	if r.events[0].Kind != EventActivate || r.events[1].Kind != EventBackspace {
		t.Fatalf("expected activate then backspace, got %+v", r.events)
	}
}

func TestOtherButtonsIgnored(t *testing.T) {
	r := newRig(DefaultConfig())
	r.a.Connect(0)
	r.src.set(0, 0, 0)
	r.frame()
	r.src.set(0, 0, 0, false, true, true)
	r.frame()
	if len(r.events) != 0 {
		t.Fatalf("expected unbound buttons to be ignored, got %+v", r.events)
	}
}

func TestControllersKeepSeparateState(t *testing.T) {
	r := newRig(DefaultConfig())
	r.a.Connect(0)
	r.a.Connect(1)
	r.src.set(0, 1, 0)
	r.src.set(1, 1, 0)
	r.frame()
	if len(r.events) != 2 || r.events[0].Controller != 0 || r.events[1].Controller != 1 {
		t.Fatalf("expected one move per controller, got %+v", r.events)
	}
}

func TestPollingFollowsConnections(t *testing.T) {
	r := newRig(DefaultConfig())
	if r.a.Polling() || r.sched.Active() != 0 {
		t.Fatalf("expected no polling before a controller connects")
	}
	r.a.Connect(0)
	r.a.Connect(0)
	r.a.Connect(2)
	if r.sched.Active() != 1 {
		t.Fatalf("expected a single poll task, got %d", r.sched.Active())
	}
	r.a.Disconnect(0)
	if !r.a.Polling() {
		t.Fatalf("expected polling to continue while controller 2 is connected")
	}
	r.a.Disconnect(2)
	r.a.Disconnect(2)
	if r.a.Polling() || r.sched.Active() != 0 {
		t.Fatalf("expected polling cancelled after the last disconnect")
	}
}

func TestDisconnectDiscardsState(t *testing.T) {
	r := newRig(DefaultConfig())
	r.a.Connect(0)
	r.src.set(0, 1, 0)
	r.frame()
	r.a.Disconnect(0)
	r.a.Connect(0)
	r.clock.Advance(DefaultDebounce)
	r.frame()
	if len(r.events) != 2 {
		t.Fatalf("expected a fresh controller to emit again, got %d events", len(r.events))
	}
}

func TestDisabledAdapterIsNoop(t *testing.T) {
	testutil.QuietLogs(t)
	a := Disabled(errors.New("no device"))
	a.Connect(0)
	a.Poll()
	if a.Enabled() || len(a.Connected()) != 0 || a.Polling() {
		t.Fatalf("expected disabled adapter to ignore connections")
	}
	b := NewAdapter(DefaultConfig(), nil, nil, nil, nil)
	b.Connect(0)
	if b.Enabled() || b.Polling() {
		t.Fatalf("expected adapter without source to be disabled")
	}
}
