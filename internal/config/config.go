package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the ManagerX CLI.
//
// DatabaseFile, PreferencesFile and SecureDir are resolved against DataDir
// unless absolute. An empty DeviceSecret makes the secure store generate one.
// An empty DevicePIN leaves the biometric challenge unenrolled. An empty
// TokenSecret makes the app generate a signing key and keep it in the secure
// store.
type Config struct {
	DataDir         string
	DatabaseFile    string
	PreferencesFile string
	SecureDir       string
	DeviceSecret    string
	DevicePIN       string
	LogLevel        string
	LogFormat       string
	AuthLatency     time.Duration
	SessionTTL      time.Duration
	TokenSecret     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = defaultDataDir()
	c.DatabaseFile = "managex.db"
	c.PreferencesFile = "preferences.db"
	c.SecureDir = "secure"
	c.DeviceSecret = ""
	c.DevicePIN = ""
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.AuthLatency = time.Second
	c.SessionTTL = 0 // stored sessions never expire
	c.TokenSecret = ""
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "managex")
	}
	return ".managex"
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// DatabasePath is the SQLite file of the persistence gateway.
func (c *Config) DatabasePath() string { return c.resolve(c.DatabaseFile) }

// PreferencesPath is the SQLite file of the key/value store.
func (c *Config) PreferencesPath() string { return c.resolve(c.PreferencesFile) }

// SecurePath is the directory of the encrypted secure store.
func (c *Config) SecurePath() string { return c.resolve(c.SecureDir) }

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
