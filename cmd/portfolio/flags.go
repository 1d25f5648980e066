package main

import (
	"flag"
	"os"
)

// Flags are the command line settings. Each one falls back to its environment variable.
type Flags struct {
	ConfigPath  string
	ContentPath string
	LogFile     string
}

// ParseFlags reads args without the program name.
func ParseFlags(args []string) (Flags, error) {
	var f Flags

	fs := flag.NewFlagSet("portfolio", flag.ContinueOnError)

	fs.StringVar(&f.ConfigPath, "config", "", "Path to a TOML config file")
	fs.StringVar(&f.ContentPath, "content", "", "Path to a TOML content file (overrides the config)")
	fs.StringVar(&f.LogFile, "log", "", "Write logs to this file (overrides the config)")

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}

	if f.ConfigPath == "" {
		f.ConfigPath = os.Getenv("PORTFOLIO_CONFIG")
	}

	return f, nil
}
