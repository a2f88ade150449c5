package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected defaults to load, got %v", err)
	}

	if cfg.ConflictBuffer != 15*time.Minute {
		t.Fatalf("expected a 15 minute conflict buffer, got %s", cfg.ConflictBuffer)
	}
	if cfg.DefaultMeetingDuration != time.Hour {
		t.Fatalf("expected a one hour default duration, got %s", cfg.DefaultMeetingDuration)
	}
	if cfg.MaxSuggestions != 3 {
		t.Fatalf("expected 3 suggestions by default, got %d", cfg.MaxSuggestions)
	}
	if cfg.SelectionRetryLimit != 5 {
		t.Fatalf("expected a retry limit of 5, got %d", cfg.SelectionRetryLimit)
	}
	if cfg.DefaultTimezone != "UTC" {
		t.Fatalf("expected UTC as the default timezone, got %s", cfg.DefaultTimezone)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("CONFLICT_BUFFER_MINUTES", "30")
	t.Setenv("MAX_SUGGESTIONS", "5")
	t.Setenv("DEFAULT_TIMEZONE", "Asia/Kolkata")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected overrides to load, got %v", err)
	}
	if cfg.ConflictBuffer != 30*time.Minute {
		t.Fatalf("expected a 30 minute buffer, got %s", cfg.ConflictBuffer)
	}
	if cfg.MaxSuggestions != 5 {
		t.Fatalf("expected 5 suggestions, got %d", cfg.MaxSuggestions)
	}
	if cfg.DefaultTimezone != "Asia/Kolkata" {
		t.Fatalf("expected the configured timezone, got %s", cfg.DefaultTimezone)
	}
}

func TestLoadRejectsInvalidNumbers(t *testing.T) {
	t.Setenv("MAX_SUGGESTIONS", "zero")
	if _, err := Load(); err == nil {
		t.Fatalf("expected an invalid MAX_SUGGESTIONS to be rejected")
	}
}

func TestLoadPrefersPlainOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "plain")
	t.Setenv("AZURE_OPENAI_API_KEY", "azure")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if cfg.OpenAIAPIKey != "plain" {
		t.Fatalf("expected the plain key to win, got %q", cfg.OpenAIAPIKey)
	}
}
