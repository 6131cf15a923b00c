package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/talkpad/talkpad/internal/relay"
	"github.com/talkpad/talkpad/internal/store"
	"github.com/talkpad/talkpad/internal/testutil"
)

func TestWebhookMountedOnBothPaths(t *testing.T) {
	testutil.QuietLogs(t)
	db := testutil.OpenStore(t)
	hub := relay.NewHub(4)
	defer hub.Close()
	srv := httptest.NewServer(newHandler(hub, db))
	defer srv.Close()

	for _, path := range []string{"/webhook/sms", "/api/receive-sms-webhook"} {
		resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(`{"sender":"+4790000000","message":"hei"}`))
		if err != nil {
			t.Fatalf("post %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 from %s, got %d", path, resp.StatusCode)
		}
	}

	contact, err := db.ContactByPhone(context.Background(), "+4790000000")
	if err != nil {
		t.Fatalf("expected contact created: %v", err)
	}
	msgs, err := db.Messages(context.Background(), contact.ID)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Content != "hei" || msgs[0].Direction != store.Incoming {
		t.Fatalf("expected two incoming messages, got %+v", msgs)
	}
}

func TestWebhookRejectsGet(t *testing.T) {
	testutil.QuietLogs(t)
	db := testutil.OpenStore(t)
	hub := relay.NewHub(4)
	defer hub.Close()
	srv := httptest.NewServer(newHandler(hub, db))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/webhook/sms")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		t.Fatalf("expected GET on the webhook to fail, got %d", resp.StatusCode)
	}
}
