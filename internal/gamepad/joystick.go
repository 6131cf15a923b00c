package gamepad

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	jsEventSize   = 8
	jsEventButton = 0x01
	jsEventAxis   = 0x02
	jsEventInit   = 0x80
	jsAxisMax     = 32767.0
)

type jsEvent struct {
	Value  int16
	Type   uint8
	Number uint8
}

func decodeEvent(buf []byte) jsEvent {
	return jsEvent{
		Value:  int16(binary.LittleEndian.Uint16(buf[4:6])),
		Type:   buf[6],
		Number: buf[7],
	}
}

// Joystick reads a Linux joystick device (/dev/input/jsN) and serves its
// latest state as a Source.
type Joystick struct {
	id     int
	path   string
	reader io.ReadCloser

	mu   sync.Mutex
	snap Snapshot
	// held marks buttons the driver reported pressed in its initial state
	// burst. They read as released until a live event arrives for them.
	held []bool
	live bool
}

// OpenJoystick opens the device at path. A missing or unreadable device
// returns an error wrapping ErrUnavailable.
func OpenJoystick(path string, id int) (*Joystick, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return newJoystick(f, path, id), nil
}

func newJoystick(r io.ReadCloser, path string, id int) *Joystick {
	return &Joystick{id: id, path: path, reader: r}
}

// ID returns the controller id the joystick reports under.
func (j *Joystick) ID() int { return j.id }

// Snapshot implements Source.
func (j *Joystick) Snapshot(id int) (Snapshot, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if id != j.id || !j.live {
		return Snapshot{}, false
	}
	out := Snapshot{
		Axes:    make([]float64, len(j.snap.Axes)),
		Buttons: make([]bool, len(j.snap.Buttons)),
	}
	copy(out.Axes, j.snap.Axes)
	for i, pressed := range j.snap.Buttons {
		out.Buttons[i] = pressed && !(i < len(j.held) && j.held[i])
	}
	return out, true
}

// Run connects the joystick to a, reads events until the device fails or ctx
// ends, then disconnects it. A closed or unplugged device returns nil.
//
// The driver replays the current device state as init records after open,
// possibly after Connect. Buttons already down in that burst never count as
// a press, so a held confirm button does not fire when the poll loop starts.
func (j *Joystick) Run(ctx context.Context, a *Adapter) error {
	j.mu.Lock()
	j.live = true
	j.mu.Unlock()
	a.Connect(j.id)
	defer func() {
		j.mu.Lock()
		j.live = false
		j.mu.Unlock()
		a.Disconnect(j.id)
	}()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			j.reader.Close()
		case <-done:
		}
	}()

	buf := make([]byte, jsEventSize)
	for {
		if _, err := io.ReadFull(j.reader, buf); err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read %s: %w", j.path, err)
		}
		j.apply(decodeEvent(buf))
	}
}

// Close releases the device.
func (j *Joystick) Close() error {
	return j.reader.Close()
}

func (j *Joystick) apply(ev jsEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := int(ev.Number)
	switch ev.Type &^ jsEventInit {
	case jsEventAxis:
		for len(j.snap.Axes) <= n {
			j.snap.Axes = append(j.snap.Axes, 0)
		}
		j.snap.Axes[n] = float64(ev.Value) / jsAxisMax
	case jsEventButton:
		for len(j.snap.Buttons) <= n {
			j.snap.Buttons = append(j.snap.Buttons, false)
		}
		for len(j.held) <= n {
			j.held = append(j.held, false)
		}
		j.snap.Buttons[n] = ev.Value != 0
		j.held[n] = ev.Type&jsEventInit != 0 && ev.Value != 0
	}
}
