// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Prerequisite types and tool definitions

package prereq

const nixInstallGuide = `Install Nix:
  Linux/macOS: sh <(curl -L https://nixos.org/nix/install) --daemon
  NixOS:       already installed
  Docs:        https://nixos.org/download/`

// Tool represents a prerequisite tool
type Tool struct {
	Name         string // Tool name
	VersionCmd   string // Command to get version
	InstallGuide string // Installation instructions
}

// DefaultTools returns the tools commonly run inside a build environment
func DefaultTools() map[string]*Tool {
	return map[string]*Tool{
		"nix": {
			Name:         "nix",
			VersionCmd:   "nix --version",
			InstallGuide: nixInstallGuide,
		},
		"nix-build": {
			Name:         "nix-build",
			VersionCmd:   "nix-build --version",
			InstallGuide: nixInstallGuide,
		},
		"nix-shell": {
			Name:         "nix-shell",
			VersionCmd:   "nix-shell --version",
			InstallGuide: nixInstallGuide,
		},
		"nix-instantiate": {
			Name:         "nix-instantiate",
			VersionCmd:   "nix-instantiate --version",
			InstallGuide: nixInstallGuide,
		},
		"git": {
			Name:       "git",
			VersionCmd: "git --version",
			InstallGuide: `Install git:
  Nix:     nix profile install nixpkgs#git
  macOS:   brew install git
  Ubuntu:  sudo apt install git`,
		},
	}
}

// CheckResult contains the result of checking a tool
type CheckResult struct {
	Name    string // Tool name
	Found   bool   // Whether tool was found
	Version string // Detected version (if found)
	Path    string // Path to tool (if found)
}

// CheckSummary contains results for all checks
type CheckSummary struct {
	Results      []CheckResult // Individual results
	AllFound     bool          // Whether all tools were found
	MissingTools []string      // List of missing tool names
}

// NewCheckSummary creates a new check summary
func NewCheckSummary() *CheckSummary {
	return &CheckSummary{
		Results:      []CheckResult{},
		AllFound:     true,
		MissingTools: []string{},
	}
}

// AddResult adds a check result to the summary
func (s *CheckSummary) AddResult(result CheckResult) {
	s.Results = append(s.Results, result)
	if !result.Found {
		s.AllFound = false
		s.MissingTools = append(s.MissingTools, result.Name)
	}
}
