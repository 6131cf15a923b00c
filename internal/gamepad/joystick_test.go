package gamepad

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"
)

func jsRecord(value int16, typ, number uint8) []byte {
	buf := make([]byte, jsEventSize)
	binary.LittleEndian.PutUint32(buf[0:4], 1234)
	binary.LittleEndian.PutUint16(buf[4:6], uint16(value))
	buf[6] = typ
	buf[7] = number
	return buf
}

func TestDecodeEvent(t *testing.T) {
	ev := decodeEvent(jsRecord(-32767, jsEventAxis|jsEventInit, 1))
	if ev.Value != -32767 || ev.Type != jsEventAxis|jsEventInit || ev.Number != 1 {
		t.Fatalf("unexpected decode %+v", ev)
	}
}

func TestJoystickApplyBuildsSnapshot(t *testing.T) {
	j := newJoystick(io.NopCloser(nil), "test", 3)
	j.live = true
	j.apply(decodeEvent(jsRecord(32767, jsEventAxis, 0)))
	j.apply(decodeEvent(jsRecord(-16384, jsEventAxis|jsEventInit, 1)))
	j.apply(decodeEvent(jsRecord(1, jsEventButton, 3)))

	snap, ok := j.Snapshot(3)
	if !ok {
		t.Fatalf("expected snapshot for controller 3")
	}
	if snap.Axes[0] != 1 || snap.Axes[1] > -0.49 || snap.Axes[1] < -0.51 {
		t.Fatalf("unexpected axes %v", snap.Axes)
	}
	if len(snap.Buttons) != 4 || !snap.Buttons[3] || snap.Buttons[0] {
		t.Fatalf("unexpected buttons %v", snap.Buttons)
	}
	if _, ok := j.Snapshot(0); ok {
		t.Fatalf("expected other ids to report nothing")
	}
}

func TestJoystickRunConnectsAndDisconnects(t *testing.T) {
	pr, pw := io.Pipe()
	j := newJoystick(pr, "pipe", 0)
	sched := NewManualScheduler()
	var got []Event
	a := NewAdapter(DefaultConfig(), j, sched, NewFakeClock(time.Unix(0, 0)), func(ev Event) { got = append(got, ev) })

	done := make(chan error, 1)
	go func() { done <- j.Run(context.Background(), a) }()

	if _, err := pw.Write(jsRecord(32767, jsEventAxis, 0)); err != nil {
		t.Fatalf("write: %v", err)
	}
	// The pipe write returns once Run has consumed the record.
	pw.Write(jsRecord(0, jsEventButton, 0))
	sched.Tick()
	if len(got) != 1 || got[0].Kind != EventMove {
		t.Fatalf("expected one move from the joystick, got %+v", got)
	}

	pw.Close()
	if err := <-done; err != nil {
		t.Fatalf("expected clean exit on EOF, got %v", err)
	}
	if len(a.Connected()) != 0 || sched.Active() != 0 {
		t.Fatalf("expected disconnect after the device closed")
	}
}

func TestJoystickInitBurstButtonsAreBaseline(t *testing.T) {
	j := newJoystick(io.NopCloser(nil), "test", 0)
	j.live = true
	sched := NewManualScheduler()
	var got []Event
	a := NewAdapter(DefaultConfig(), j, sched, NewFakeClock(time.Unix(0, 0)), func(ev Event) { got = append(got, ev) })
	a.Connect(0)

	// The first poll can run before the driver's state burst arrives.
	sched.Tick()
	j.apply(decodeEvent(jsRecord(1, jsEventButton|jsEventInit, uint8(DefaultConfirmButton))))
	sched.Tick()
	if len(got) != 0 {
		t.Fatalf("expected a button held at open to be ignored, got %+v", got)
	}
	if snap, _ := j.Snapshot(0); snap.Buttons[DefaultConfirmButton] {
		t.Fatalf("expected held button to read as released")
	}

	j.apply(decodeEvent(jsRecord(0, jsEventButton, uint8(DefaultConfirmButton))))
	sched.Tick()
	j.apply(decodeEvent(jsRecord(1, jsEventButton, uint8(DefaultConfirmButton))))
	sched.Tick()
	if len(got) != 1 || got[0].Kind != EventActivate {
		t.Fatalf("expected one activation after release and press, got %+v", got)
	}
}

func TestOpenJoystickMissingDevice(t *testing.T) {
	_, err := OpenJoystick(filepath.Join(t.TempDir(), "js0"), 0)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
