// Package project locates and parses the strait.toml manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the parsed strait.toml with defaults applied.
type Manifest struct {
	Path   string // absolute path to the manifest, empty when defaulted
	Root   string // directory containing the manifest
	Config Config
}

// Config mirrors the manifest layout.
type Config struct {
	Package PackageConfig `toml:"package"`
	Limits  LimitsConfig  `toml:"limits"`
	Output  OutputConfig  `toml:"output"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type LimitsConfig struct {
	// Recursion is the solver's requirement-evaluation depth limit.
	Recursion int `toml:"recursion"`
}

type OutputConfig struct {
	// Color: "auto", "always", "never".
	Color string `toml:"color"`
	// Format: "pretty" or "json".
	Format string `toml:"format"`
	// Paths: "auto", "absolute", "relative", "basename".
	Paths          string `toml:"paths"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

// Defaults used when the manifest is absent or silent.
const (
	DefaultRecursion      = 64
	DefaultMaxDiagnostics = 256
)

// FindStraitToml walks up from startDir to locate strait.toml.
func FindStraitToml(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "strait.toml")
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

// Load finds and parses the nearest manifest. A missing manifest is not an
// error: the returned Manifest carries the defaults and ok is false.
func Load(startDir string) (*Manifest, bool, error) {
	m := &Manifest{Config: defaultConfig()}

	path, ok, err := FindStraitToml(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return m, false, nil
	}

	meta, err := toml.DecodeFile(path, &m.Config)
	if err != nil {
		return nil, false, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	m.Path = path
	m.Root = filepath.Dir(path)

	if !meta.IsDefined("limits", "recursion") {
		m.Config.Limits.Recursion = DefaultRecursion
	}
	if !meta.IsDefined("output", "max_diagnostics") {
		m.Config.Output.MaxDiagnostics = DefaultMaxDiagnostics
	}
	if err := m.validate(); err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	return m, true, nil
}

func defaultConfig() Config {
	return Config{
		Limits: LimitsConfig{Recursion: DefaultRecursion},
		Output: OutputConfig{
			Color:          "auto",
			Format:         "pretty",
			Paths:          "auto",
			MaxDiagnostics: DefaultMaxDiagnostics,
		},
	}
}

func (m *Manifest) validate() error {
	if m.Config.Limits.Recursion <= 0 {
		return fmt.Errorf("invalid [limits].recursion %d: must be positive", m.Config.Limits.Recursion)
	}
	if m.Config.Output.MaxDiagnostics <= 0 {
		return fmt.Errorf("invalid [output].max_diagnostics %d: must be positive", m.Config.Output.MaxDiagnostics)
	}
	switch strings.TrimSpace(m.Config.Output.Color) {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid [output].color %q", m.Config.Output.Color)
	}
	switch strings.TrimSpace(m.Config.Output.Format) {
	case "", "pretty", "short", "json":
	default:
		return fmt.Errorf("invalid [output].format %q", m.Config.Output.Format)
	}
	switch strings.TrimSpace(m.Config.Output.Paths) {
	case "", "auto", "absolute", "relative", "basename":
	default:
		return fmt.Errorf("invalid [output].paths %q", m.Config.Output.Paths)
	}
	return nil
}
