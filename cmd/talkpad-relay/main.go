// Command talkpad-relay receives SMS gateway webhooks, stores them and fans
// new-message notifications out to connected talkpad clients.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talkpad/talkpad/internal/config"
	"github.com/talkpad/talkpad/internal/logging"
	"github.com/talkpad/talkpad/internal/logging/events"
	"github.com/talkpad/talkpad/internal/relay"
	"github.com/talkpad/talkpad/internal/sms"
	"github.com/talkpad/talkpad/internal/store"
)

const (
	subscriberBuffer = 32
	shutdownTimeout  = 5 * time.Second
)

func main() {
	cfg, err := config.LoadRelay()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	events.App.Start(map[string]interface{}{
		"argv":  cfg.Args,
		"flags": cfg.Flags,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.RelayConfig) error {
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	hub := relay.NewHub(subscriberBuffer)
	handler := newHandler(hub, db)

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Warnf("relay listening on %s", cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		hub.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	// Closing the hub ends open event streams so Shutdown can drain.
	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)
	events.App.Stop("relay shutdown")
	return err
}

// newHandler mounts the SMS webhook on the relay surface under both the
// current and the legacy path.
func newHandler(hub *relay.Hub, inbox sms.Inbox) *relay.Handler {
	handler := relay.NewHandler(hub)
	webhook := &sms.WebhookHandler{Inbox: inbox, Publisher: hub}
	handler.Handle("POST /webhook/sms", webhook)
	handler.Handle("POST /api/receive-sms-webhook", webhook)
	return handler
}
