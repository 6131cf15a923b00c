// Package command runs collaborator actions (sending an SMS, saving settings,
// loading a conversation) off the UI goroutine as Bubble Tea commands.
package command

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/talkpad/talkpad/internal/logging"
	"github.com/talkpad/talkpad/internal/logging/events"
)

// DefaultTimeout bounds a single action.
const DefaultTimeout = 20 * time.Second

// Action performs the work of a request. A nil message with a nil error is a
// no-op.
type Action func(ctx context.Context) (tea.Msg, error)

// Request encapsulates an action invocation.
type Request struct {
	ID    string
	Label string
	Run   Action
}

// ErrorMsg is delivered when an action fails.
type ErrorMsg struct {
	ID    string
	Label string
	Err   error
}

func (e ErrorMsg) Error() string {
	if e.Label == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Label, e.Err)
}

// Bus coordinates the execution of actions.
type Bus struct {
	timeout time.Duration
	base    context.Context
}

// New initialises a command bus. A non-positive timeout uses DefaultTimeout.
func New(timeout time.Duration) *Bus {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Bus{timeout: timeout, base: context.Background()}
}

// WithContext returns a bus whose actions are cancelled with ctx.
func (b *Bus) WithContext(ctx context.Context) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{timeout: b.timeout, base: ctx}
}

// Execute wraps an action into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	if req.Run == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	base, timeout := b.base, b.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()
		msg, err := req.Run(ctx)
		if err != nil {
			events.Action.Error(err)
			logging.Error(fmt.Errorf("%s: %w", req.ID, err))
			return ErrorMsg{ID: req.ID, Label: req.Label, Err: err}
		}
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
