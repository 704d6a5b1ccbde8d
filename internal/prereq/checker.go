// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Prerequisite checker for tool existence and versions

package prereq

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// Checker verifies tool existence
type Checker struct {
	tools map[string]*Tool
}

// NewChecker creates a new prerequisite checker
func NewChecker() *Checker {
	return &Checker{
		tools: DefaultTools(),
	}
}

// CheckTool checks if a command exists. Paths are looked up as given; bare
// names go through PATH. Known tools also report their version.
func (c *Checker) CheckTool(name string) CheckResult {
	result := CheckResult{Name: name}

	path, err := exec.LookPath(name)
	if err != nil {
		return result
	}
	result.Found = true
	result.Path = path

	if tool := c.GetTool(filepath.Base(name)); tool != nil {
		result.Version = getVersion(tool.VersionCmd)
	}

	return result
}

// CheckMultiple checks multiple tools and returns a summary
func (c *Checker) CheckMultiple(names []string) *CheckSummary {
	summary := NewCheckSummary()

	for _, name := range names {
		summary.AddResult(c.CheckTool(name))
	}

	return summary
}

// GetTool returns a tool definition by name
func (c *Checker) GetTool(name string) *Tool {
	return c.tools[strings.ToLower(name)]
}

// GetInstallGuide returns installation instructions for a tool
func (c *Checker) GetInstallGuide(name string) string {
	tool := c.GetTool(filepath.Base(name))
	if tool == nil {
		return "No installation guide available for " + name
	}
	return tool.InstallGuide
}

// FormatMissing returns a formatted string of missing tools with install guides
func (c *Checker) FormatMissing(summary *CheckSummary) string {
	if summary.AllFound {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Missing prerequisites:\n\n")

	for _, name := range summary.MissingTools {
		sb.WriteString("─────────────────────────────────\n")
		sb.WriteString(name + "\n")
		sb.WriteString("─────────────────────────────────\n")
		sb.WriteString(c.GetInstallGuide(name))
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// getVersion executes a version command and returns the first line of output
func getVersion(versionCmd string) string {
	parts := strings.Fields(versionCmd)
	if len(parts) == 0 {
		return ""
	}

	out, err := exec.Command(parts[0], parts[1:]...).Output()
	if err != nil {
		return ""
	}

	output := strings.TrimSpace(string(out))
	if idx := strings.Index(output, "\n"); idx > 0 {
		output = output[:idx]
	}

	return output
}
