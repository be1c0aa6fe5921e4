// Package config loads appshelf settings.
//
// Settings come from a YAML file named by APPSHELF_CONFIG, or
// $XDG_CONFIG_HOME/appshelf/config.yaml when that is unset. A missing
// file means defaults. APPSHELF_APPINFO and APPSHELF_CACHE_DIR override
// the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"appshelf/internal/domain"
)

const DefaultAppInfoPath = "~/.steam/steam/appcache/appinfo.vdf"

// Compressions lists the accepted snapshot compression names
var Compressions = []string{"zstd", "lz4", "none"}

// Config holds every appshelf setting
type Config struct {
	// AppInfoPath is the Steam appinfo cache to read.
	AppInfoPath string `yaml:"appinfo_path"`

	// CacheDir holds parsed catalog snapshots.
	CacheDir string `yaml:"cache_dir"`

	// IndexDir holds the SQLite search index.
	IndexDir string `yaml:"index_dir"`

	// Duplicates is the duplicate id policy: first, last or error.
	Duplicates string `yaml:"duplicates"`

	// StrictPlatforms narrows platforms to what oslist names.
	StrictPlatforms bool `yaml:"strict_platforms"`

	// Compression is the snapshot codec: zstd, lz4 or none.
	Compression string `yaml:"compression"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		AppInfoPath: DefaultAppInfoPath,
		CacheDir:    filepath.Join(xdgDir("XDG_CACHE_HOME", ".cache"), "appshelf"),
		IndexDir:    filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), "appshelf"),
		Duplicates:  domain.DuplicateKeepFirst.String(),
		Compression: "zstd",
	}
}

// Path returns the config file location from APPSHELF_CONFIG,
// falling back to the XDG config directory.
func Path() string {
	if env := os.Getenv("APPSHELF_CONFIG"); env != "" {
		return ExpandHome(env)
	}
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "appshelf", "config.yaml")
}

// AppInfoPath returns the appinfo path from APPSHELF_APPINFO,
// falling back to DefaultAppInfoPath.
func AppInfoPath() string {
	if env := os.Getenv("APPSHELF_APPINFO"); env != "" {
		return env
	}
	return DefaultAppInfoPath
}

// Load loads the config file at Path
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile loads configuration from a specific file path. A missing file
// yields the defaults; environment overrides apply either way.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if env := os.Getenv("APPSHELF_APPINFO"); env != "" {
		c.AppInfoPath = env
	}
	if env := os.Getenv("APPSHELF_CACHE_DIR"); env != "" {
		c.CacheDir = env
	}
}

func (c *Config) expandPaths() {
	c.AppInfoPath = ExpandHome(c.AppInfoPath)
	c.CacheDir = ExpandHome(c.CacheDir)
	c.IndexDir = ExpandHome(c.IndexDir)
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.AppInfoPath) == "" {
		errs = append(errs, fmt.Errorf("appinfo_path is required"))
	}
	if _, err := domain.ParseDuplicatePolicy(c.Duplicates); err != nil {
		errs = append(errs, fmt.Errorf("duplicates: %w", err))
	}
	if !slices.Contains(Compressions, c.Compression) {
		errs = append(errs, fmt.Errorf("compression: unknown codec %q (want %s)",
			c.Compression, strings.Join(Compressions, ", ")))
	}

	return errors.Join(errs...)
}

// DuplicatePolicy returns the parsed duplicate policy.
// Validate has already rejected bad values.
func (c *Config) DuplicatePolicy() domain.DuplicatePolicy {
	p, _ := domain.ParseDuplicatePolicy(c.Duplicates)
	return p
}

// Marshal renders the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteDefault writes the default config to path unless a file exists
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := Default().Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, fallback)
}
