// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Scoped build environment: enter/exit with full process state restoration

package buildenv

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/sony-level/nixpkgs-review/internal/nixroot"
	"github.com/sony-level/nixpkgs-review/internal/ui"
)

// active guards the process-wide cwd and environment table
var active atomic.Bool

// New creates an unentered build environment
func New(opts Options) *Env {
	return &Env{opts: opts}
}

// With runs fn inside a build environment built from opts.
// The environment is exited on every path out of fn, panics included.
func With(opts Options, fn func(env *Env) error) error {
	return New(opts).Run(fn)
}

// Run enters e, calls fn and exits e. Errors from fn and from Exit are joined.
func (e *Env) Run(fn func(env *Env) error) (err error) {
	if err := e.Enter(); err != nil {
		return err
	}

	defer func() {
		if exitErr := e.Exit(); exitErr != nil {
			err = errors.Join(err, exitErr)
		}
	}()

	return fn(e)
}

// Enter snapshots the process state, changes into the nixpkgs root, writes the
// config file and exports ConfigEnvVar. Outside a nixpkgs tree it warns and
// terminates the process with NotInRepoExitCode.
func (e *Env) Enter() error {
	switch e.state {
	case StateActive:
		return ErrScopeActive
	case StateExited:
		return ErrScopeExited
	}

	if !active.CompareAndSwap(false, true) {
		return ErrScopeActive
	}

	cwd, err := os.Getwd()
	if err != nil {
		active.Store(false)
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	snapshot := Snapshot{
		Environ: os.Environ(),
		Dir:     cwd,
	}

	root, ok := nixroot.FindRoot()
	if !ok {
		active.Store(false)
		ui.Warn(e.warnWriter(), NotInRepoMessage)
		e.exitFunc()(NotInRepoExitCode)
		// only reachable with an injected ExitFunc
		return ErrNotInRepository
	}

	if err := os.Chdir(root); err != nil {
		active.Store(false)
		return fmt.Errorf("failed to change into nixpkgs root %s: %w", root, err)
	}

	e.state = StateActive
	e.snapshot = snapshot
	e.root = root
	if abs, err := os.Getwd(); err == nil {
		e.root = abs
	}

	path, err := writeConfig(e.opts)
	if err != nil {
		return errors.Join(err, e.Exit())
	}
	e.configPath = path

	if err := os.Setenv(ConfigEnvVar, path); err != nil {
		return errors.Join(fmt.Errorf("failed to set %s: %w", ConfigEnvVar, err), e.Exit())
	}

	return nil
}

// Exit restores the working directory and environment captured by Enter and
// removes the config file. Every step runs even if an earlier one fails.
func (e *Env) Exit() error {
	if e.state != StateActive {
		return ErrNotActive
	}

	defer func() {
		e.state = StateExited
		active.Store(false)
	}()

	var errs []error

	if err := ignoreMissingDir(os.Chdir(e.snapshot.Dir)); err != nil {
		errs = append(errs, fmt.Errorf("failed to restore working directory %s: %w", e.snapshot.Dir, err))
	}

	if err := restoreEnviron(e.snapshot.Environ); err != nil {
		errs = append(errs, fmt.Errorf("failed to restore environment: %w", err))
	}

	if e.configPath != "" {
		if err := os.Remove(e.configPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to remove config file %s: %w", e.configPath, err))
		}
	}

	return errors.Join(errs...)
}

// State returns the lifecycle state
func (e *Env) State() State {
	return e.state
}

// Root returns the absolute nixpkgs root, empty before Enter
func (e *Env) Root() string {
	return e.root
}

// ConfigPath returns the generated config file path, empty before Enter
func (e *Env) ConfigPath() string {
	return e.configPath
}

// Options returns the options the config was rendered from
func (e *Env) Options() Options {
	return e.opts
}

// Snapshot returns a copy of the state captured on Enter
func (e *Env) Snapshot() Snapshot {
	return Snapshot{
		Environ: slices.Clone(e.snapshot.Environ),
		Dir:     e.snapshot.Dir,
	}
}

// String returns a string representation of the environment
func (e *Env) String() string {
	return fmt.Sprintf("Env{State: %s, Root: %s, Config: %s}", e.state, e.root, e.configPath)
}

func (e *Env) warnWriter() io.Writer {
	if e.Warn != nil {
		return e.Warn
	}
	return os.Stderr
}

func (e *Env) exitFunc() func(int) {
	if e.ExitFunc != nil {
		return e.ExitFunc
	}
	return os.Exit
}

// ignoreMissingDir drops the error of restoring a directory that was removed
// while the scope was active
func ignoreMissingDir(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// restoreEnviron replaces the whole environment table with environ
func restoreEnviron(environ []string) error {
	os.Clearenv()

	var errs []error
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
