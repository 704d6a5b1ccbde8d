// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// buildenv types/constants

package buildenv

import (
	"errors"
	"fmt"
	"io"
)

const (
	// ConfigEnvVar is set to the generated config file for the scope's lifetime
	ConfigEnvVar = "NIXPKGS_CONFIG"
	// ConfigFilePattern is passed to os.CreateTemp
	ConfigFilePattern = "nixpkgs-config-*.nix"
	// NotInRepoMessage is emitted before the process exits when no root is found
	NotInRepoMessage = "Has to be executed from nixpkgs repository"
	// NotInRepoExitCode is the process status used for a missing root
	NotInRepoExitCode = 1
)

var (
	ErrScopeActive     = errors.New("another build environment is already active")
	ErrScopeExited     = errors.New("build environment has already been exited")
	ErrNotActive       = errors.New("build environment is not active")
	ErrNotInRepository = errors.New("not inside a nixpkgs repository")
)

// State is the lifecycle position of an Env
type State int

const (
	StateUnentered State = iota
	StateActive
	StateExited
)

func (s State) String() string {
	switch s {
	case StateUnentered:
		return "unentered"
	case StateActive:
		return "active"
	case StateExited:
		return "exited"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options parameterize the generated nixpkgs config
type Options struct {
	// AllowAliases emits `allowAliases = false;` when true (note the inversion)
	AllowAliases bool
}

// Snapshot is the process state captured on Enter and replayed on Exit
type Snapshot struct {
	Environ []string
	Dir     string
}

// Env is a scoped nixpkgs build environment. Only one may be active per process.
type Env struct {
	// Warn receives the fatal "not in repository" message. Defaults to os.Stderr.
	Warn io.Writer
	// ExitFunc terminates the process. Defaults to os.Exit.
	ExitFunc func(code int)

	opts       Options
	state      State
	snapshot   Snapshot
	root       string
	configPath string
}
