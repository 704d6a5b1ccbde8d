// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// nixpkgs checkout root discovery

package nixroot

import (
	"os"
	"path/filepath"
)

// MarkerPath identifies the top of a nixpkgs tree, relative to a candidate directory
var MarkerPath = filepath.Join("nixos", "release.nix")

// FindRoot walks upward from the current working directory and returns the
// nearest ancestor (or "." itself) containing MarkerPath. The returned path is
// relative, built from the ".." ascents taken ("." , "..", "../..", ...).
func FindRoot() (string, bool) {
	return FindRootFrom(".")
}

// FindRootFrom runs the same search with start as the first candidate
func FindRootFrom(start string) (string, bool) {
	candidate := start
	for {
		if exists(filepath.Join(candidate, MarkerPath)) {
			return candidate, true
		}

		abs, err := filepath.Abs(candidate)
		if err != nil || abs == string(filepath.Separator) {
			return "", false
		}

		candidate = filepath.Join(candidate, "..")
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
