package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config captures everything wishfront needs to talk to the wishlist backend.
type Config struct {
	ServerURL   string `toml:"server_url" envconfig:"SERVER_URL"`
	Token       string `toml:"token" envconfig:"TOKEN"`
	Slug        string `toml:"slug" envconfig:"SLUG"`
	PollSeconds int    `toml:"poll_seconds" envconfig:"POLL_SECONDS"`
	LogLevel    string `toml:"log_level" envconfig:"LOG_LEVEL"`
	LogPath     string `toml:"log_path" envconfig:"LOG_PATH"`
}

const (
	defaultConfigPath  = "~/.config/wishfront/config.toml"
	defaultServerURL   = "https://wishlist-backend-8rai.onrender.com"
	defaultPollSeconds = 30
	defaultLogLevel    = "info"
	defaultLogPath     = "~/.local/share/wishfront/wishfront.log"
	envPrefix          = "wishfront"
)

// Load locates and parses the wishfront config, falling back to defaults when
// missing. Environment variables prefixed with WISHFRONT_ override file values.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ServerURL:   defaultServerURL,
		PollSeconds: defaultPollSeconds,
		LogLevel:    defaultLogLevel,
		LogPath:     defaultLogPath,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
	} else {
		defer func() { _ = file.Close() }()

		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("apply env overrides: %w", err)
	}

	cfg.ServerURL = strings.TrimRight(strings.TrimSpace(cfg.ServerURL), "/")
	if cfg.ServerURL == "" {
		cfg.ServerURL = defaultServerURL
	}
	cfg.Slug = strings.TrimSpace(cfg.Slug)
	if cfg.PollSeconds <= 0 {
		cfg.PollSeconds = defaultPollSeconds
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = defaultLogLevel
	}
	cfg.LogPath = strings.TrimSpace(cfg.LogPath)
	if cfg.LogPath == "" {
		cfg.LogPath = defaultLogPath
	}
	cfg.LogPath = mustExpand(cfg.LogPath)

	return cfg, nil
}

// PollInterval returns the backstop refresh interval.
func (c Config) PollInterval() time.Duration {
	if c.PollSeconds <= 0 {
		return defaultPollSeconds * time.Second
	}
	return time.Duration(c.PollSeconds) * time.Second
}

// WSBaseURL derives the push-channel base URL from the HTTP server URL.
func (c Config) WSBaseURL() string {
	u := strings.TrimRight(strings.TrimSpace(c.ServerURL), "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		return "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		return "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
