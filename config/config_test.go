package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.PageSize != 30 || cfg.MaxPages != 5 || cfg.BatchSize != 10 {
		t.Errorf("pagination defaults = (size=%d, pages=%d, batch=%d); want (30, 5, 10)",
			cfg.PageSize, cfg.MaxPages, cfg.BatchSize)
	}
	if cfg.MessageIntervalMs != 1100 {
		t.Errorf("MessageIntervalMs = %d; want 1100", cfg.MessageIntervalMs)
	}
	if len(cfg.Profiles) != 3 {
		t.Errorf("len(Profiles) = %d; want 3", len(cfg.Profiles))
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MAX_PAGES", "2")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123456")
	t.Setenv("DEBUG", "true")

	cfg := Load()

	if cfg.MaxPages != 2 {
		t.Errorf("MaxPages = %d; want 2", cfg.MaxPages)
	}
	if cfg.TelegramChatID != -100123456 {
		t.Errorf("TelegramChatID = %d; want -100123456", cfg.TelegramChatID)
	}
	if !cfg.Debug {
		t.Error("Debug = false; want true")
	}
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("MAX_PAGES", "five")

	if got := getEnvInt("MAX_PAGES", 5); got != 5 {
		t.Errorf("getEnvInt with garbage value = %d; want fallback 5", got)
	}
}

func TestDefaultProfilesExcludeSections(t *testing.T) {
	profiles := DefaultProfiles()

	taipei := profiles[0]
	if taipei.Region != 1 {
		t.Fatalf("first profile region = %d; want 1", taipei.Region)
	}
	// Neihu (10) and Beitou (9) are deliberately not monitored.
	for _, excluded := range []string{"9", "10"} {
		for _, got := range strings.Split(taipei.Section, ",") {
			if got == excluded {
				t.Errorf("taipei profile includes excluded section %s", excluded)
			}
		}
	}
}
