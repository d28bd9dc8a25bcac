package config

import (
	"flag"
	"io"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Flags other than -d, -l and -f are filtered out first so that -c and any
// flags of other components do not make parsing fail.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-l", "-f"})

	fs := flag.NewFlagSet("managex", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text, json)")

	return fs.Parse(args)
}
