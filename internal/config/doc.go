// Package config loads runtime configuration for ManagerX.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   data directory
//	-l string   log level (debug, info, warn, error)
//	-f string   log format (text, json)
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "600ms" or
// integer nanoseconds. A session_ttl of zero, the default, keeps a stored
// session valid until logout. Relative file names are resolved against
// data_dir:
//
//	{
//	  "data_dir": "/var/lib/managex",
//	  "database_file": "managex.db",
//	  "preferences_file": "preferences.db",
//	  "secure_dir": "secure",
//	  "device_secret": "",
//	  "device_pin": "4321",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "auth_latency": "1s",
//	  "session_ttl": "720h",
//	  "token_secret": "change-me"
//	}
package config
