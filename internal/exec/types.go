// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Execution types

package exec

import (
	"io"
	"time"
)

// DefaultWaitDelay bounds both the wait for output after the command exits
// and the time between interrupt and kill on cancellation
const DefaultWaitDelay = 5 * time.Second

// ExitCodeNotFound is reported when the command cannot be started
const ExitCodeNotFound = 127

// RunnerConfig configures the command runner
type RunnerConfig struct {
	Stdin     io.Reader     // Defaults to os.Stdin
	Stdout    io.Writer     // Defaults to os.Stdout
	Stderr    io.Writer     // Defaults to os.Stderr
	WaitDelay time.Duration // See DefaultWaitDelay
	OnStart   func(argv []string)
}

// Result contains the result of running one command
type Result struct {
	Argv     []string
	Success  bool
	ExitCode int
	Duration time.Duration
	Stderr   string // captured stderr, also streamed to RunnerConfig.Stderr
	Error    error
}
