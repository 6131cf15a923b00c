package main

import (
	"testing"

	"github.com/talkpad/talkpad/internal/app"
	"github.com/talkpad/talkpad/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			DBPath:     "talkpad.db",
			GatewayURL: "http://gateway.local",
			Width:      80,
			Height:     24,
			Navigation: "ARROW_KEYS",
			Notify:     true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"db":         "talkpad.db",
			"gateway":    "http://gateway.local",
			"width":      "80",
			"height":     "24",
			"navigation": "ARROW_KEYS",
		},
		Args: []string{"--gateway", "http://gateway.local"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["gateway"] != "http://gateway.local" {
		t.Fatalf("expected gateway flag %q, got %v", "http://gateway.local", flagsValue["gateway"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["height"] != "24" {
		t.Fatalf("expected height 24, got %v", flagsValue["height"])
	}
	if flagsValue["navigation"] != "ARROW_KEYS" {
		t.Fatalf("expected navigation ARROW_KEYS, got %v", flagsValue["navigation"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if payload["db"] != "talkpad.db" || payload["gateway"] != "http://gateway.local" {
		t.Fatalf("expected db and gateway in payload, got %v / %v", payload["db"], payload["gateway"])
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}
