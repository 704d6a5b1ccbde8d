// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Styled terminal output for warnings and progress lines

package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	warningColor = lipgloss.Color("214")
	infoColor    = lipgloss.Color("241")
	stepColor    = lipgloss.Color("42")
)

// Warn writes a highlighted warning line to w
func Warn(w io.Writer, msg string) {
	style := lipgloss.NewRenderer(w).NewStyle().Foreground(warningColor).Bold(true)
	fmt.Fprintln(w, style.Render(msg))
}

// Info writes a dimmed informational line to w
func Info(w io.Writer, format string, args ...any) {
	style := lipgloss.NewRenderer(w).NewStyle().Foreground(infoColor)
	fmt.Fprintln(w, style.Render(fmt.Sprintf(format, args...)))
}

// Step writes a progress line prefixed with an arrow, like "  → msg"
func Step(w io.Writer, format string, args ...any) {
	style := lipgloss.NewRenderer(w).NewStyle().Foreground(stepColor)
	fmt.Fprintf(w, "  %s %s\n", style.Render("→"), fmt.Sprintf(format, args...))
}
