// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Unix-specific process group handling for proper signal propagation

//go:build !windows

package exec

import (
	"os/exec"
	"syscall"
)

// setPlatformProcessGroup runs the command in its own process group so that
// nix-build and the builders it forks can be signalled together
func setPlatformProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// killProcessGroup sends SIGKILL to the whole process group
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}

	pgid, err := syscall.Getpgid(cmd.Process.Pid)
	if err != nil {
		return cmd.Process.Kill()
	}

	return syscall.Kill(-pgid, syscall.SIGKILL)
}

// interruptProcessGroup sends SIGINT to the whole process group
func interruptProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}

	pgid, err := syscall.Getpgid(cmd.Process.Pid)
	if err != nil {
		return cmd.Process.Signal(syscall.SIGINT)
	}

	return syscall.Kill(-pgid, syscall.SIGINT)
}

// interruptProcess sends SIGINT to the command only; used when it shares our process group
func interruptProcess(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Signal(syscall.SIGINT)
}
