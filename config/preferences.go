// Package config loads the CLI's operator preferences file (§4.13): a
// narrow YAML document of output-mode and poll-tick defaults. Load is
// non-fatal on a missing or malformed file, and command-line flags always
// override. Nothing here is ever written back: this client discovers no
// state worth persisting (§6.4).
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Preferences are the operator's CLI defaults, loaded once at startup.
type Preferences struct {
	JSON         bool
	Pretty       bool
	PollInterval time.Duration
}

// Default returns the preferences a fresh install has: plain text output,
// one-second notification poll tick.
func Default() Preferences {
	return Preferences{PollInterval: time.Second}
}

// file is the on-disk shape: PollInterval is a duration string
// ("1s", "500ms") rather than time.Duration, which yaml.v3 has no native
// codec for.
type file struct {
	JSON         bool   `yaml:"json"`
	Pretty       bool   `yaml:"pretty"`
	PollInterval string `yaml:"pollInterval"`
}

// Path resolves the preferences file location: $XDG_CONFIG_HOME/dpll/config.yaml,
// falling back to ~/.config/dpll/config.yaml.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "dpll", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dpll", "config.yaml"), nil
}

// Load reads and parses the preferences file at path. A missing file or
// malformed YAML is reported to the caller (main logs it at Warn/Error per
// §4.13) but Load always also returns usable Preferences — Default() on
// any error.
func Load(path string) (Preferences, error) {
	prefs := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return prefs, err
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return prefs, err
	}

	prefs.JSON = f.JSON
	prefs.Pretty = f.Pretty
	if f.PollInterval != "" {
		d, err := time.ParseDuration(f.PollInterval)
		if err != nil {
			return Default(), err
		}
		prefs.PollInterval = d
	}
	return prefs, nil
}
