package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/flagx"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Fields left
// out of the file keep the value they had before parsing.
type JSONConfig struct {
	DataDir         string          `json:"data_dir"`
	DatabaseFile    string          `json:"database_file"`
	PreferencesFile string          `json:"preferences_file"`
	SecureDir       string          `json:"secure_dir"`
	DeviceSecret    string          `json:"device_secret"`
	DevicePIN       string          `json:"device_pin"`
	LogLevel        string          `json:"log_level"`
	LogFormat       string          `json:"log_format"`
	AuthLatency     *timex.Duration `json:"auth_latency"`
	SessionTTL      *timex.Duration `json:"session_ttl"`
	TokenSecret     string          `json:"token_secret"`
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJSON overlays cfg with the JSON file named by -c or -config in args.
// Without such a flag it does nothing.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.DatabaseFile, jc.DatabaseFile)
	setString(&cfg.PreferencesFile, jc.PreferencesFile)
	setString(&cfg.SecureDir, jc.SecureDir)
	setString(&cfg.DeviceSecret, jc.DeviceSecret)
	setString(&cfg.DevicePIN, jc.DevicePIN)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.TokenSecret, jc.TokenSecret)
	if jc.AuthLatency != nil {
		cfg.AuthLatency = jc.AuthLatency.Duration
	}
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	return nil
}
