// Package config loads command settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	ink "github.com/TheStuch123/obsidian-ink-cp1"
)

// Config is the resolved configuration of the inkembed command.
type Config struct {
	// Settings are the shared embed settings.
	Settings *ink.Settings
	// VaultRoot is the directory ink file references resolve against.
	VaultRoot string
	// PluginData is the plugin settings file holding onboarding state.
	PluginData string
	// LogLevel is the minimum level logged to stderr.
	LogLevel slog.Level
}

// Load reads the given .env files, or ".env" when none are named, and
// builds a Config from INK_* variables. Missing .env files are not an
// error; variables already set in the environment take precedence.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return LoadConfig()
}

// LoadConfig builds a Config from the current environment.
func LoadConfig() (Config, error) {
	cfg := Config{}

	lines, err := parseBoolEnv("INK_WRITING_LINES_WHEN_LOCKED", true)
	if err != nil {
		return Config{}, fmt.Errorf("parse INK_WRITING_LINES_WHEN_LOCKED: %w", err)
	}
	background, err := parseBoolEnv("INK_WRITING_BACKGROUND_WHEN_LOCKED", true)
	if err != nil {
		return Config{}, fmt.Errorf("parse INK_WRITING_BACKGROUND_WHEN_LOCKED: %w", err)
	}
	transcripts, err := parseBoolEnv("INK_TRANSCRIPTS", false)
	if err != nil {
		return Config{}, fmt.Errorf("parse INK_TRANSCRIPTS: %w", err)
	}
	delay, err := parseDurationEnv("INK_TRANSITION_DELAY", ink.PreviewTransitionDelay)
	if err != nil {
		return Config{}, fmt.Errorf("parse INK_TRANSITION_DELAY: %w", err)
	}
	cfg.Settings = ink.NewSettings(
		ink.WithWritingLinesWhenLocked(lines),
		ink.WithWritingBackgroundWhenLocked(background),
		ink.WithTranscripts(transcripts),
		ink.WithTransitionDelay(delay),
	)

	cfg.LogLevel, err = parseLevelEnv("INK_LOG_LEVEL", slog.LevelWarn)
	if err != nil {
		return Config{}, fmt.Errorf("parse INK_LOG_LEVEL: %w", err)
	}

	root, err := filepath.Abs(envOrDefault("INK_VAULT", "."))
	if err != nil {
		return Config{}, fmt.Errorf("resolve vault root: %w", err)
	}
	cfg.VaultRoot = root
	cfg.PluginData = envOrDefault("INK_PLUGIN_DATA",
		filepath.Join(root, ".obsidian", "plugins", "ink", "data.json"))

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) (bool, error) {
	value := envOrDefault(key, "")
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value := envOrDefault(key, "")
	if value == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}

func parseLevelEnv(key string, fallback slog.Level) (slog.Level, error) {
	value := envOrDefault(key, "")
	if value == "" {
		return fallback, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(value))); err != nil {
		return 0, err
	}
	return l, nil
}
