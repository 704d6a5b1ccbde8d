// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Configuration loading with precedence: CLI > ENV > config file > defaults

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sony-level/nixpkgs-review/internal/buildenv"
)

// EnvAllowAliases overrides the config file's allow_aliases
const EnvAllowAliases = "NIXPKGS_REVIEW_ALLOW_ALIASES"

// Source names where a resolved value came from
type Source string

const (
	SourceCLI     Source = "cli"
	SourceEnv     Source = "env"
	SourceConfig  Source = "config"
	SourceDefault Source = "default"
)

// File is the on-disk configuration
type File struct {
	AllowAliases *bool `json:"allow_aliases" yaml:"allow_aliases"`

	// Path is where the file was loaded from
	Path string `json:"-" yaml:"-"`
}

// ConfigPaths returns the paths to check for config files in order
func ConfigPaths() []string {
	var paths []string

	// Current directory
	paths = append(paths, ".nixpkgs-review.yaml", ".nixpkgs-review.yml", ".nixpkgs-review.json")

	// XDG config directory
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths,
			filepath.Join(xdg, "nixpkgs-review", "config.yaml"),
			filepath.Join(xdg, "nixpkgs-review", "config.yml"),
			filepath.Join(xdg, "nixpkgs-review", "config.json"),
		)
	}

	// Home directory
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "nixpkgs-review", "config.yaml"),
			filepath.Join(home, ".config", "nixpkgs-review", "config.yml"),
			filepath.Join(home, ".config", "nixpkgs-review", "config.json"),
		)
	}

	return paths
}

// LoadConfig loads the first config file found in ConfigPaths.
// Returns nil, nil when there is none.
func LoadConfig() (*File, error) {
	for _, path := range ConfigPaths() {
		cfg, err := LoadConfigFromPath(path)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, nil
}

// LoadConfigFromPath parses a YAML or JSON config file
func LoadConfigFromPath(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := File{Path: path}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	return &cfg, nil
}

// Resolve builds the build environment options. cliAllowAliases is nil when
// the flag was not given on the command line.
func Resolve(cliAllowAliases *bool) (buildenv.Options, Source, error) {
	fileCfg, err := LoadConfig()
	if err != nil {
		return buildenv.Options{}, "", err
	}
	return ResolveWith(cliAllowAliases, fileCfg)
}

// ResolveWith applies CLI and environment overrides on top of fileCfg
func ResolveWith(cliAllowAliases *bool, fileCfg *File) (buildenv.Options, Source, error) {
	opts := buildenv.Options{}
	source := SourceDefault

	// Config file (lowest priority)
	if fileCfg != nil && fileCfg.AllowAliases != nil {
		opts.AllowAliases = *fileCfg.AllowAliases
		source = SourceConfig
	}

	// Environment variables (medium priority)
	if envValue := os.Getenv(EnvAllowAliases); envValue != "" {
		v, err := strconv.ParseBool(envValue)
		if err != nil {
			return buildenv.Options{}, "", fmt.Errorf("invalid %s=%q: %w", EnvAllowAliases, envValue, err)
		}
		opts.AllowAliases = v
		source = SourceEnv
	}

	// CLI flags (highest priority)
	if cliAllowAliases != nil {
		opts.AllowAliases = *cliAllowAliases
		source = SourceCLI
	}

	return opts, source, nil
}
