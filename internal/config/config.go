// Package config handles the configuration directory, the optional config
// file and environment overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName is the application directory name.
	AppName = "taskflow"

	// ConfigFile is the optional settings filename inside the config directory.
	ConfigFile = "config.json"

	// DefaultServerURL is the API base URL used by client commands.
	DefaultServerURL = "http://localhost:5004"

	// DefaultListenAddr is the address the serve command binds to.
	DefaultListenAddr = ":5004"

	// EnvServerURL overrides the server URL from the config file.
	EnvServerURL = "TASKFLOW_SERVER"

	// EnvListenAddr overrides the listen address from the config file.
	EnvListenAddr = "TASKFLOW_ADDR"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// ServerURL is the base URL of the task API.
	ServerURL string

	// ListenAddr is the address the task API listens on.
	ListenAddr string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileSettings is the on-disk shape of config.json.
type fileSettings struct {
	ServerURL  string `json:"server_url"`
	ListenAddr string `json:"listen_addr"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskflow or $HOME/.config/taskflow.
//
// Settings are layered: defaults, then config.json (if present), then
// environment variables. Flags are applied by the caller afterwards.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:        dir,
		ServerURL:  DefaultServerURL,
		ListenAddr: DefaultListenAddr,
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(os.Getenv(EnvServerURL)); v != "" {
		cfg.ServerURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvListenAddr)); v != "" {
		cfg.ListenAddr = v
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the settings file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// HasConfigFile checks if the settings file exists.
func (c *Config) HasConfigFile() bool {
	_, err := os.Stat(c.ConfigPath())
	return err == nil
}

// Validate checks that the server URL is an absolute http(s) URL.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server url %q: %w", c.ServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server url %q: scheme must be http or https", c.ServerURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid server url %q: missing host", c.ServerURL)
	}
	return nil
}

// Logger returns a text logger writing to w. Debug lowers the level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if c.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.ConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	var s fileSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	if s.ServerURL != "" {
		c.ServerURL = s.ServerURL
	}
	if s.ListenAddr != "" {
		c.ListenAddr = s.ListenAddr
	}
	return nil
}
