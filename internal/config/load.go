package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file looked up by Discover.
const FileName = ".restcheck.yml"

// Load reads and parses a config file at the given path. Unknown keys are
// rejected and an empty file yields an empty Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return &cfg, nil
}

// Discover walks up the directory tree from startDir looking for
// .restcheck.yml. It stops at a directory containing .git or at the
// filesystem root and returns "" when nothing was found.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Defaults returns a Config with every optional check disabled.
func Defaults() *Config {
	return &Config{
		Strict: boolPtr(false),
		Checks: Checks{
			DisallowNoDocstring: boolPtr(false),
			DisallowNoParams:    boolPtr(false),
			DisallowNoReturn:    boolPtr(false),
		},
	}
}

// DumpDefaults returns the starter config written by `restcheck init`.
func DumpDefaults() *Config {
	cfg := Defaults()
	cfg.Files = []string{"**/*.py"}
	cfg.Ignore = []string{"build/**", "dist/**"}
	cfg.Overrides = []Override{{
		Files:  []string{"tests/**"},
		Checks: Checks{DisallowNoDocstring: boolPtr(false)},
	}}
	return cfg
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}
