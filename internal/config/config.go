// Package config loads and persists the TOML configuration file.
//
// Precedence is defaults, then file, then environment: LLMCLI_CONFIG_PATH
// relocates the file itself, LLMCLI_SESSION_DIR relocates session
// snapshots. API keys resolve explicit-config-first inside the chatbot
// constructors, so no key override happens here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the startup configuration for the chat session.
type Config struct {
	DefaultChatbot string  `toml:"default_chatbot"`
	DefaultModel   string  `toml:"default_model"`
	DataDir        string  `toml:"data_dir"`
	HistoryPath    string  `toml:"history_path"`
	LogLevel       string  `toml:"log_level"`
	APIKeys        APIKeys `toml:"api_keys"`
}

// APIKeys holds per-chatbot API keys.
type APIKeys struct {
	Gemini string `toml:"gemini"`
}

// defaults returns a Config populated with built-in defaults.
func defaults() *Config {
	return &Config{
		DefaultChatbot: "gemini",
		DefaultModel:   "gemini-1.5-flash",
		DataDir:        filepath.Join(os.Getenv("HOME"), ".llmcli"),
		LogLevel:       "warn",
	}
}

// DefaultPath returns the config file location: LLMCLI_CONFIG_PATH if
// set, otherwise <user config dir>/llmcli/config.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv("LLMCLI_CONFIG_PATH"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, "llmcli", "config.toml"), nil
}

// Load reads the config at path, or at DefaultPath when path is empty.
// A missing file is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("stat config: %w", err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Init writes a default config file at path (or DefaultPath), creating
// parent directories. An existing file is left untouched.
func Init(path string) (string, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return "", err
		}
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := defaults().Save(path); err != nil {
		return "", err
	}
	return path, nil
}

// Save writes the config to path atomically.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode config: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// SessionDir returns where session snapshots live: LLMCLI_SESSION_DIR if
// set, otherwise <data_dir>/sessions.
func (c *Config) SessionDir() string {
	if dir := os.Getenv("LLMCLI_SESSION_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(c.DataDir, "sessions")
}

// HistoryFile returns the input-history file path: history_path if
// configured, otherwise <user cache dir>/llmcli_history.txt. An empty
// string disables persistent history.
func (c *Config) HistoryFile() string {
	if c.HistoryPath != "" {
		return c.HistoryPath
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "llmcli_history.txt")
}
