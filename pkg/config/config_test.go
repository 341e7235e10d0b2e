package config

import (
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("META_PIXEL_ID", "")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.OutboundTimeout != 10*time.Second {
		t.Fatalf("OutboundTimeout = %v, want 10s", cfg.OutboundTimeout)
	}
	if cfg.Meta.EventName != "Lead" {
		t.Fatalf("EventName = %q, want Lead", cfg.Meta.EventName)
	}
	if cfg.Meta.APIVersion != "v20.0" {
		t.Fatalf("APIVersion = %q, want v20.0", cfg.Meta.APIVersion)
	}
	if cfg.EventSourcePath != "/telefon" {
		t.Fatalf("EventSourcePath = %q, want /telefon", cfg.EventSourcePath)
	}
	if cfg.Telegram.Configured() {
		t.Fatal("Telegram.Configured() = true with no token")
	}
	if cfg.Meta.Configured() {
		t.Fatal("Meta.Configured() = true with no pixel")
	}
}

func TestParseChannelSecrets(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "bot-token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("META_CONVERSIONS_TOKEN", "meta-token")
	t.Setenv("META_PIXEL_ID", "123")
	t.Setenv("META_TEST_EVENT_CODE", "TEST31518")
	t.Setenv("META_INCLUDE_EXTERNAL_ID", "true")
	t.Setenv("OUTBOUND_TIMEOUT", "3s")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cfg.Telegram.Configured() || !cfg.Meta.Configured() {
		t.Fatalf("channels not configured: %+v %+v", cfg.Telegram, cfg.Meta)
	}
	if cfg.Meta.TestEventCode != "TEST31518" {
		t.Fatalf("TestEventCode = %q", cfg.Meta.TestEventCode)
	}
	if !cfg.Meta.IncludeExternalID {
		t.Fatal("IncludeExternalID = false, want true")
	}
	if cfg.OutboundTimeout != 3*time.Second {
		t.Fatalf("OutboundTimeout = %v, want 3s", cfg.OutboundTimeout)
	}
}

func TestParseRejectsBadDuration(t *testing.T) {
	t.Setenv("OUTBOUND_TIMEOUT", "soon")

	if _, err := Parse(); err == nil {
		t.Fatal("Parse: want error for bad duration")
	}
}
