package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"didauth/internal/logging"
	"didauth/internal/protocol/kdf"
	"didauth/internal/ratelimit"
)

// Environment overrides.
const (
	EnvHome     = "DIDAUTH_HOME"
	EnvRelayURL = "DIDAUTH_RELAY_URL"
)

// ConfigFilename is looked up inside the home directory.
const ConfigFilename = "config.yaml"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home     string         `yaml:"home"`      // state directory, e.g. $HOME/.didauth
	RelayURL string         `yaml:"relay_url"` // relay base URL, e.g. http://127.0.0.1:8080
	DeviceID string         `yaml:"device_id"` // enables the device fallback password when set
	Log      logging.Config `yaml:"log"`
	KDF      kdf.Params     `yaml:"kdf"`
	Session  SessionConfig  `yaml:"session"`

	HTTP *http.Client `yaml:"-"` // optional; defaults to the relay client's own
}

// SessionConfig tunes the session coordinator.
type SessionConfig struct {
	MaxConcurrentKDF int              `yaml:"max_concurrent_kdf"`
	RateLimit        ratelimit.Config `yaml:"rate_limit"` // zero rps disables
}

// DefaultHome returns $HOME/.didauth, or .didauth when there is no home directory.
func DefaultHome() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return ".didauth"
	}
	return filepath.Join(h, ".didauth")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Home: DefaultHome(),
		Log: logging.Config{
			Level:  "info",
			Format: "console",
		},
		KDF: kdf.DefaultParams(),
		Session: SessionConfig{
			MaxConcurrentKDF: runtime.NumCPU(),
			RateLimit: ratelimit.Config{
				RPS:        1,
				Burst:      5,
				IdleTTL:    ratelimit.DefaultIdleTTL,
				EvictEvery: ratelimit.DefaultEvictEvery,
			},
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults,
// then applies environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvHome); v != "" {
		c.Home = v
	}
	if v := os.Getenv(EnvRelayURL); v != "" {
		c.RelayURL = v
	}
}

// Validate checks the fields that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Home == "" {
		return fmt.Errorf("config: home must be set")
	}
	if err := c.KDF.Validate(); err != nil {
		return fmt.Errorf("config: kdf: %w", err)
	}
	if c.Session.MaxConcurrentKDF < 0 {
		return fmt.Errorf("config: session.max_concurrent_kdf must not be negative")
	}
	if rl := c.Session.RateLimit; rl.RPS < 0 || rl.Burst < 0 {
		return fmt.Errorf("config: session.rate_limit must not be negative")
	}
	return nil
}

// Save writes c as YAML to path.
func (c *Config) Save(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
