package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Auth     AuthConfig     `toml:"auth"`
	Sync     SyncConfig     `toml:"sync"`
	Covers   CoversConfig   `toml:"covers"`
	Database DatabaseConfig `toml:"database"`
}

// ServerConfig locates the highlights backend.
type ServerConfig struct {
	BaseURL string `toml:"base_url"`
}

// AuthConfig tunes session verification.
type AuthConfig struct {
	VerifyTimeoutMS int    `toml:"verify_timeout_ms"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
	CacheMaxEntries int    `toml:"cache_max_entries"`
	FailOpen        bool   `toml:"fail_open"`
	SessionFile     string `toml:"session_file"`
}

// SyncConfig tunes the background sync poll loop.
type SyncConfig struct {
	InitiateTimeoutMS int `toml:"initiate_timeout_ms"`
	PollTimeoutMS     int `toml:"poll_timeout_ms"`
	PollIntervalMS    int `toml:"poll_interval_ms"`
	MaxAttempts       int `toml:"max_attempts"`
	ReloadGraceMS     int `toml:"reload_grace_ms"`
}

// CoversConfig tunes cover resolution against the metadata provider.
type CoversConfig struct {
	SearchURL       string  `toml:"search_url"`
	ISBNURL         string  `toml:"isbn_url"`
	SearchTimeoutMS int     `toml:"search_timeout_ms"`
	RateLimit       float64 `toml:"rate_limit"`
	RateBurst       int     `toml:"rate_burst"`
}

// DatabaseConfig contains settings for the local cover cache database.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// VerifyTimeout returns the per-call verification timeout.
func (a AuthConfig) VerifyTimeout() time.Duration {
	return time.Duration(a.VerifyTimeoutMS) * time.Millisecond
}

// CacheTTL returns how long a verification verdict is trusted.
func (a AuthConfig) CacheTTL() time.Duration {
	return time.Duration(a.CacheTTLSeconds) * time.Second
}

// InitiateTimeout returns the timeout for the sync initiation call.
func (s SyncConfig) InitiateTimeout() time.Duration {
	return time.Duration(s.InitiateTimeoutMS) * time.Millisecond
}

// PollTimeout returns the per-tick status call timeout.
func (s SyncConfig) PollTimeout() time.Duration {
	return time.Duration(s.PollTimeoutMS) * time.Millisecond
}

// PollInterval returns the gap between status polls.
func (s SyncConfig) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalMS) * time.Millisecond
}

// ReloadGrace returns the delay before the post-completion reload signal.
func (s SyncConfig) ReloadGrace() time.Duration {
	return time.Duration(s.ReloadGraceMS) * time.Millisecond
}

// SearchTimeout returns the cover search call timeout.
func (c CoversConfig) SearchTimeout() time.Duration {
	return time.Duration(c.SearchTimeoutMS) * time.Millisecond
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
