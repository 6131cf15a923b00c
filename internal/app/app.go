package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/talkpad/talkpad/internal/backend"
	"github.com/talkpad/talkpad/internal/gamepad"
	"github.com/talkpad/talkpad/internal/logging"
	"github.com/talkpad/talkpad/internal/logging/events"
	"github.com/talkpad/talkpad/internal/notify"
	"github.com/talkpad/talkpad/internal/relay"
	"github.com/talkpad/talkpad/internal/sms"
	"github.com/talkpad/talkpad/internal/store"
	"github.com/talkpad/talkpad/internal/ui"
	"github.com/talkpad/talkpad/internal/ui/command"
)

const (
	defaultPollInterval = 1500 * time.Millisecond
	relayRetry          = 3 * time.Second
)

// Config describes user-provided application options.
type Config struct {
	DBPath           string
	GatewayURL       string
	RelayURL         string
	Joystick         string
	Deadzone         float64
	Debounce         time.Duration
	Navigation       string
	ExtendedKeyboard bool
	Width            int
	Height           int
	Notify           bool
	PollInterval     time.Duration
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	settings, err := db.Settings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	latest, err := db.LatestMessageID(ctx)
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}

	gateway := sms.New(cfg.GatewayURL)
	var relayClient *relay.Client
	if strings.TrimSpace(cfg.RelayURL) != "" {
		relayClient = relay.NewClient(cfg.RelayURL)
	}

	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	watchOpts := backend.Options{Interval: interval, AfterID: latest}
	if gateway.Enabled() && relayClient == nil {
		// Without a relay receiving webhooks, pull the gateway inbox here.
		watchOpts.Gateway = gateway
		watchOpts.Inbox = db
	}
	watcher := backend.NewWatcher(db, watchOpts)
	defer watcher.Stop()

	var notifier *notify.Notifier
	if cfg.Notify {
		notifier = notify.New(settings.NotificationsEnabled)
	}

	model := ui.NewModel(ui.Options{
		Width:            cfg.Width,
		Height:           cfg.Height,
		ExtendedKeyboard: cfg.ExtendedKeyboard,
		Navigation:       cfg.Navigation,
		Settings:         settings,
		Store:            db,
		Gateway:          gateway,
		Notifier:         notifier,
		Watcher:          watcher,
		Bus:              command.New(0).WithContext(ctx),
	})
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if relayClient != nil {
		go listenRelay(ctx, relayClient, watcher)
	}
	pad := startGamepad(ctx, cfg, program)
	defer pad.Close()

	_, err = program.Run()
	events.App.Stop("program exited")
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// listenRelay nudges the watcher whenever the relay broadcasts, so new
// messages show up without waiting for the next poll. Dropped streams are
// reopened after relayRetry.
func listenRelay(ctx context.Context, c *relay.Client, w *backend.Watcher) {
	for {
		err := c.Listen(ctx, func([]byte) { w.Nudge() })
		if err != nil {
			logging.Error(fmt.Errorf("relay listen: %w", err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(relayRetry):
		}
	}
}

// startGamepad opens the joystick device and feeds its events to program.
// A missing device yields a disabled adapter.
func startGamepad(ctx context.Context, cfg Config, program *tea.Program) *gamepad.Adapter {
	if strings.TrimSpace(cfg.Joystick) == "" {
		return gamepad.Disabled(nil)
	}
	js, err := gamepad.OpenJoystick(cfg.Joystick, 0)
	if err != nil {
		return gamepad.Disabled(err)
	}
	padCfg := gamepad.DefaultConfig()
	if cfg.Deadzone > 0 {
		padCfg.Deadzone = cfg.Deadzone
	}
	if cfg.Debounce > 0 {
		padCfg.Debounce = cfg.Debounce
	}
	adapter := gamepad.NewAdapter(padCfg, js, gamepad.NewTickerScheduler(ctx), gamepad.SystemClock{}, func(evt gamepad.Event) {
		program.Send(ui.GamepadMsg{Event: evt})
	})
	go func() {
		defer js.Close()
		if err := js.Run(ctx, adapter); err != nil {
			logging.Error(err)
		}
	}()
	return adapter
}
