// Package testutil holds helpers shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/talkpad/talkpad/internal/logging"
	"github.com/talkpad/talkpad/internal/store"
)

// QuietLogs sends log output to a per-test file so failures stay readable.
func QuietLogs(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "talkpad.log")
	logging.Configure(path)
	t.Cleanup(func() { logging.Configure("") })
	return path
}

// OpenStore opens a fresh sqlite store in a temporary directory.
func OpenStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "talkpad.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// WaitFor polls cond until it holds or timeout passes.
func WaitFor(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
