package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	ink "github.com/TheStuch123/obsidian-ink-cp1"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"INK_WRITING_LINES_WHEN_LOCKED",
		"INK_WRITING_BACKGROUND_WHEN_LOCKED",
		"INK_TRANSCRIPTS",
		"INK_TRANSITION_DELAY",
		"INK_LOG_LEVEL",
		"INK_VAULT",
		"INK_PLUGIN_DATA",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	s := cfg.Settings
	if !s.WritingLinesWhenLocked() || !s.WritingBackgroundWhenLocked() || s.PersistTranscripts() {
		t.Errorf("unexpected default settings %+v", s)
	}
	if s.TransitionDelay() != ink.PreviewTransitionDelay {
		t.Errorf("TransitionDelay() = %v, want %v", s.TransitionDelay(), ink.PreviewTransitionDelay)
	}
	if cfg.LogLevel != slog.LevelWarn {
		t.Errorf("LogLevel = %v, want WARN", cfg.LogLevel)
	}
	if !filepath.IsAbs(cfg.VaultRoot) {
		t.Errorf("VaultRoot = %q, want absolute", cfg.VaultRoot)
	}
	if filepath.Base(cfg.PluginData) != "data.json" {
		t.Errorf("PluginData = %q", cfg.PluginData)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("INK_WRITING_LINES_WHEN_LOCKED", "false")
	t.Setenv("INK_TRANSCRIPTS", "1")
	t.Setenv("INK_TRANSITION_DELAY", "250ms")
	t.Setenv("INK_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Settings.WritingLinesWhenLocked() {
		t.Error("WritingLinesWhenLocked() = true, want false")
	}
	if !cfg.Settings.PersistTranscripts() {
		t.Error("PersistTranscripts() = false, want true")
	}
	if got := cfg.Settings.TransitionDelay(); got != 250*time.Millisecond {
		t.Errorf("TransitionDelay() = %v, want 250ms", got)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want DEBUG", cfg.LogLevel)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct{ key, value string }{
		{"INK_TRANSCRIPTS", "perhaps"},
		{"INK_TRANSITION_DELAY", "soon"},
		{"INK_LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("LoadConfig() with %s=%q succeeded", tt.key, tt.value)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	env := filepath.Join(dir, "ink.env")
	if err := os.WriteFile(env, []byte("INK_VAULT="+dir+"\nINK_TRANSCRIPTS=true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("INK_VAULT")
		os.Unsetenv("INK_TRANSCRIPTS")
	})

	cfg, err := Load(env, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.VaultRoot != dir {
		t.Errorf("VaultRoot = %q, want %q", cfg.VaultRoot, dir)
	}
	if !cfg.Settings.PersistTranscripts() {
		t.Error("PersistTranscripts() = false, want true from env file")
	}
}
