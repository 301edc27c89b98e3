package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestNormalizePort(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"6060", "6060"},
		{"8080", "8080"},
		{"1", "1"},
		{"65535", "65535"},
		{"0", DefaultPort},
		{"-1", DefaultPort},
		{"65536", DefaultPort},
		{"", DefaultPort},
		{"abc", DefaultPort},
		{"80a", DefaultPort},
	}

	for _, test := range tests {
		result := normalizePort(test.input)
		if result != test.expected {
			t.Errorf("normalizePort(%q): expected %q, got %q", test.input, test.expected, result)
		}
	}
}

func TestHasBlueskyCredentials(t *testing.T) {
	tests := []struct {
		identifier string
		password   string
		expected   bool
	}{
		{"", "", false},
		{"user.bsky.social", "", false},
		{"", "app-password", false},
		{"user.bsky.social", "app-password", true},
	}

	for _, test := range tests {
		c := &Cfg{BlueskyIdentifier: test.identifier, BlueskyPassword: test.password}
		if c.HasBlueskyCredentials() != test.expected {
			t.Errorf("HasBlueskyCredentials with identifier=%q password=%q: expected %v",
				test.identifier, test.password, test.expected)
		}
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		Port:              "6060",
		BlueskyIdentifier: "user.bsky.social",
		BlueskyPassword:   "app-password",
		UserAgent:         "Test Agent",
		Debug:             true,
		Version:           "test-version",
	}

	if cfg.Port != "6060" {
		t.Errorf("Expected port '6060', got '%s'", cfg.Port)
	}
	if cfg.BlueskyIdentifier != "user.bsky.social" {
		t.Errorf("Expected identifier 'user.bsky.social', got '%s'", cfg.BlueskyIdentifier)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}
