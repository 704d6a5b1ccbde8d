// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Terminal detection for stdin

package exec

import (
	"io"
	"os"

	"golang.org/x/term"
)

// isTerminal reports whether r is a file attached to a terminal.
// A child reading the terminal must stay in the foreground process group.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
