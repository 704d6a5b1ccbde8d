// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Tests for commands reading a controlling terminal

//go:build linux

package tests

import (
	"bytes"
	"context"
	"fmt"
	"os"
	osexec "os/exec"
	"strings"
	"syscall"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/sony-level/nixpkgs-review/internal/exec"
)

// ttyChildEnv switches TestRunTerminalStdin into its re-executed half
const ttyChildEnv = "NIXPKGS_REVIEW_TTY_CHILD"

// openPty returns the master side and the slave side of a new pseudo terminal
func openPty(t *testing.T) (*os.File, *os.File) {
	t.Helper()

	master, err := os.OpenFile("/dev/ptmx", os.O_RDWR|syscall.O_NOCTTY, 0)
	if err != nil {
		t.Skipf("no pseudo terminals available: %v", err)
	}
	t.Cleanup(func() { master.Close() })

	fd := int(master.Fd())
	if err := unix.IoctlSetPointerInt(fd, unix.TIOCSPTLCK, 0); err != nil {
		t.Fatalf("Failed to unlock pty: %v", err)
	}
	n, err := unix.IoctlGetInt(fd, unix.TIOCGPTN)
	if err != nil {
		t.Fatalf("Failed to get pty number: %v", err)
	}

	slave, err := os.OpenFile(fmt.Sprintf("/dev/pts/%d", n), os.O_RDWR|syscall.O_NOCTTY, 0)
	if err != nil {
		t.Fatalf("Failed to open pty slave: %v", err)
	}

	return master, slave
}

func TestRunTerminalStdin(t *testing.T) {
	if os.Getenv(ttyChildEnv) == "1" {
		// stdin is our controlling terminal here
		runner := exec.NewRunner(&exec.RunnerConfig{
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		})
		result := runner.Run(context.Background(), []string{"sh", "-c", "read line; echo got $line"})
		if !result.Success {
			t.Fatalf("Run() failed: %v", result.Error)
		}
		return
	}

	master, slave := openPty(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var out bytes.Buffer
	cmd := osexec.CommandContext(ctx, os.Args[0], "-test.run=^TestRunTerminalStdin$", "-test.v")
	cmd.Env = append(os.Environ(), ttyChildEnv+"=1")
	cmd.Stdin = slave
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true, Setctty: true, Ctty: 0}

	if err := cmd.Start(); err != nil {
		t.Fatalf("Failed to start child: %v", err)
	}
	slave.Close()

	if _, err := master.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Failed to write to pty: %v", err)
	}

	err := cmd.Wait()
	if ctx.Err() != nil {
		t.Fatalf("command reading the terminal never finished:\n%s", out.String())
	}
	if err != nil {
		t.Fatalf("child test failed: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "got hello") {
		t.Errorf("child output = %q, want it to contain %q", out.String(), "got hello")
	}
}
