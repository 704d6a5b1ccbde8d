// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Command runner with streaming output and process group handling

package exec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// maxLineSize bounds a single buffered output line
const maxLineSize = 1024 * 1024

// Runner executes commands in the current working directory and environment
type Runner struct {
	config *RunnerConfig
}

// NewRunner creates a new command runner
func NewRunner(config *RunnerConfig) *Runner {
	if config == nil {
		config = &RunnerConfig{}
	}
	if config.Stdin == nil {
		config.Stdin = os.Stdin
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	if config.Stderr == nil {
		config.Stderr = os.Stderr
	}
	if config.WaitDelay <= 0 {
		config.WaitDelay = DefaultWaitDelay
	}

	return &Runner{config: config}
}

// Run executes argv and waits for it. The command inherits the process's
// working directory and environment, so it sees an active build environment.
// Background processes that keep stdout/stderr open are not waited for
// longer than WaitDelay after the command itself exits.
func (r *Runner) Run(ctx context.Context, argv []string) *Result {
	result := &Result{Argv: argv}
	startTime := time.Now()
	defer func() { result.Duration = time.Since(startTime) }()

	if len(argv) == 0 {
		result.Error = fmt.Errorf("no command given")
		return result
	}

	if r.config.OnStart != nil {
		r.config.OnStart(argv)
	}

	var stderrBuf strings.Builder
	stdout := newLineWriter(r.config.Stdout, nil)
	stderr := newLineWriter(r.config.Stderr, &stderrBuf)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = r.config.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = r.config.WaitDelay

	// a child in its own group cannot read the terminal (SIGTTIN), so
	// interactive commands stay in ours and share its signals
	ownGroup := !isTerminal(r.config.Stdin)
	if ownGroup {
		setPlatformProcessGroup(cmd)
		cmd.Cancel = func() error {
			time.AfterFunc(r.config.WaitDelay, func() { _ = killProcessGroup(cmd) })
			return interruptProcessGroup(cmd)
		}
	} else {
		cmd.Cancel = func() error {
			return interruptProcess(cmd)
		}
	}

	if err := cmd.Start(); err != nil {
		result.ExitCode = ExitCodeNotFound
		result.Error = fmt.Errorf("failed to start command: %w", err)
		return result
	}

	err := cmd.Wait()
	stdout.Flush()
	stderr.Flush()
	result.Stderr = stderrBuf.String()

	// the command exited cleanly but something it started still holds the output
	if errors.Is(err, exec.ErrWaitDelay) {
		err = nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case ctx.Err() != nil:
			result.ExitCode = -1
			if errors.As(err, &exitErr) {
				result.ExitCode = exitErr.ExitCode()
			}
			result.Error = fmt.Errorf("command cancelled: %w", ctx.Err())
		case errors.As(err, &exitErr):
			result.ExitCode = exitErr.ExitCode()
			result.Error = fmt.Errorf("command exited with code %d", result.ExitCode)
		default:
			result.Error = err
		}
		return result
	}

	result.Success = true
	return result
}

// FormatResult returns a one-line human-readable result
func FormatResult(result *Result) string {
	var sb strings.Builder

	name := strings.Join(result.Argv, " ")
	if result.Success {
		sb.WriteString(fmt.Sprintf("✓ %s: Success", name))
	} else {
		sb.WriteString(fmt.Sprintf("✗ %s: Failed", name))
		if result.Error != nil {
			sb.WriteString(fmt.Sprintf(" - %s", result.Error.Error()))
		}
	}

	sb.WriteString(fmt.Sprintf(" (%v)", result.Duration.Round(time.Millisecond)))
	return sb.String()
}

// StderrTail returns the last n lines of captured stderr
func StderrTail(result *Result, n int) []string {
	trimmed := strings.TrimSpace(result.Stderr)
	if trimmed == "" {
		return nil
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
