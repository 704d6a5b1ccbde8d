// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Line-oriented output forwarding

package exec

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

// lineWriter forwards complete lines to out, keeping a copy in capture when non-nil.
// os/exec owns the copying goroutine, so WaitDelay bounds how long we wait for output.
type lineWriter struct {
	mu      sync.Mutex
	out     io.Writer
	capture *strings.Builder
	buf     []byte
}

func newLineWriter(out io.Writer, capture *strings.Builder) *lineWriter {
	return &lineWriter{out: out, capture: capture}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(w.buf[:i+1])
		w.buf = w.buf[i+1:]
	}

	// nix logs can carry very long lines; don't buffer them forever
	if len(w.buf) >= maxLineSize {
		w.emit(w.buf)
		w.buf = nil
	}

	return len(p), nil
}

// Flush writes a trailing partial line, terminated with a newline
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) == 0 {
		return
	}
	w.emit(append(w.buf, '\n'))
	w.buf = nil
}

func (w *lineWriter) emit(line []byte) {
	if w.capture != nil {
		w.capture.Write(line)
	}
	_, _ = w.out.Write(line)
}
