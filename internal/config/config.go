// Package config loads the project's sift.toml. The file is optional: every
// setting has a default and command-line flags override whatever the file
// says.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest searched for from the working directory upward.
const FileName = "sift.toml"

// Config is the decoded manifest.
type Config struct {
	Check CheckConfig `toml:"check"`
	Rules RulesConfig `toml:"rules"`
}

// CheckConfig tunes the check pipeline.
type CheckConfig struct {
	// MaxDiagnostics caps reported diagnostics per run; 0 means unlimited.
	MaxDiagnostics uint `toml:"max-diagnostics"`
	// Jobs caps parallel file workers; 0 means one per CPU.
	Jobs int `toml:"jobs"`
	// Cache toggles the on-disk parse cache.
	Cache bool `toml:"cache"`
}

// RulesConfig selects and tunes lint rules.
type RulesConfig struct {
	// Enabled lists rules to run; empty means all built-in rules.
	Enabled []string `toml:"enabled"`
	// Disabled lists rules to skip; it wins over Enabled.
	Disabled []string `toml:"disabled"`
	// Severity maps a rule name to "info", "warning" or "error".
	Severity map[string]string `toml:"severity"`
}

// Manifest is a loaded config with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the configuration used when no manifest exists.
func Default() Config {
	return Config{
		Check: CheckConfig{Cache: true},
	}
}

// Find walks from startDir toward the filesystem root looking for sift.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load searches for a manifest and decodes it. ok is false when no manifest
// exists, which is not an error.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := decode(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

func decode(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if len(meta.Undecoded()) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, meta.Undecoded()[0].String())
	}
	for rule, sev := range cfg.Rules.Severity {
		switch sev {
		case "info", "warning", "error":
		default:
			return Config{}, fmt.Errorf("%s: invalid severity %q for rule %q", path, sev, rule)
		}
	}
	return cfg, nil
}

// RuleEnabled applies the Enabled/Disabled lists to one rule name.
func (c *Config) RuleEnabled(name string) bool {
	for _, d := range c.Rules.Disabled {
		if d == name {
			return false
		}
	}
	if len(c.Rules.Enabled) == 0 {
		return true
	}
	for _, e := range c.Rules.Enabled {
		if e == name {
			return true
		}
	}
	return false
}
