// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Windows-specific process handling

//go:build windows

package exec

import (
	"os/exec"
)

// setPlatformProcessGroup is a no-op; Windows has no Unix-style process groups
func setPlatformProcessGroup(cmd *exec.Cmd) {}

// killProcessGroup terminates the process via TerminateProcess
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

// interruptProcessGroup falls back to Kill; there is no console Ctrl+C to send
func interruptProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

// interruptProcess falls back to Kill, like interruptProcessGroup
func interruptProcess(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
