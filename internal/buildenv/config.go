// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Generated nixpkgs config file

package buildenv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RenderConfig returns the nixpkgs config expression for opts.
// The layout is consumed by nix as-is, so keep it byte-stable.
func RenderConfig(opts Options) string {
	var sb strings.Builder

	sb.WriteString("{\n")
	sb.WriteString("  allowUnfree = true;\n")
	sb.WriteString("  allowBroken = true;\n")
	// TODO: confirm with nixpkgs maintainers whether --allow-aliases should stop disabling aliases
	if opts.AllowAliases {
		sb.WriteString("  allowAliases = false;\n")
	}
	sb.WriteString("}\n")

	return sb.String()
}

// writeConfig materializes the config in a new temp file and returns its absolute path
func writeConfig(opts Options) (string, error) {
	f, err := os.CreateTemp("", ConfigFilePattern)
	if err != nil {
		return "", fmt.Errorf("failed to create config file: %w", err)
	}

	path, err := filepath.Abs(f.Name())
	if err != nil {
		path = f.Name()
	}

	if _, err := f.WriteString(RenderConfig(opts)); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	// nix-build reads the file from a child process
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to sync config file %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close config file %s: %w", path, err)
	}

	return path, nil
}
