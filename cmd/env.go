/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sony-level/nixpkgs-review/internal/buildenv"
	"github.com/sony-level/nixpkgs-review/internal/config"
	"github.com/sony-level/nixpkgs-review/internal/exec"
	"github.com/sony-level/nixpkgs-review/internal/gitinfo"
	"github.com/sony-level/nixpkgs-review/internal/prereq"
	"github.com/sony-level/nixpkgs-review/internal/ui"
)

// envCmd represents the env command
var envCmd = &cobra.Command{
	Use:   "env -- command [args...]",
	Short: "Run a command inside the nixpkgs build environment",
	Long: `Enter the nixpkgs build environment, run the given command from the
checkout root with NIXPKGS_CONFIG pointing to the generated config, then
restore the working directory and environment.

The command's exit status is passed through.

Examples:
  nixpkgs-review env -- nix-build -A hello
  nixpkgs-review env --allow-aliases -- nix-instantiate -A hello`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeEnv(cmd, args)
	},
}

func init() {
	envCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(envCmd)
}

func executeEnv(cmd *cobra.Command, argv []string) error {
	opts, source, err := resolveOptions(cmd)
	if err != nil {
		return fmt.Errorf("failed to resolve options: %w", err)
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	// relative paths only make sense from the nixpkgs root, so leave them to the runner
	if !strings.ContainsRune(argv[0], '/') {
		checker := prereq.NewChecker()
		summary := checker.CheckMultiple(argv[:1])
		if !summary.AllFound {
			fmt.Fprint(errOut, checker.FormatMissing(summary))
			return &ExitCodeError{
				Code: exec.ExitCodeNotFound,
				Err:  fmt.Errorf("command not found: %s", argv[0]),
			}
		}
		if verbose && summary.Results[0].Version != "" {
			ui.Step(errOut, "%s", summary.Results[0].Version)
		}
	}

	runner := exec.NewRunner(&exec.RunnerConfig{
		Stdin:  cmd.InOrStdin(),
		Stdout: out,
		Stderr: errOut,
		OnStart: func(argv []string) {
			if verbose {
				ui.Step(errOut, "running: %s", strings.Join(argv, " "))
			}
		},
	})

	env := buildenv.New(opts)
	env.Warn = errOut

	var result *exec.Result
	err = env.Run(func(env *buildenv.Env) error {
		if verbose {
			describeEnv(cmd, env, source)
		}

		result = runner.Run(cmd.Context(), argv)

		if verbose {
			ui.Info(errOut, "%s", exec.FormatResult(result))
			if !result.Success {
				reportStderrTail(errOut, result)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if result.Success {
		return nil
	}
	if result.ExitCode == exec.ExitCodeNotFound && result.Error != nil {
		return &ExitCodeError{Code: result.ExitCode, Err: result.Error}
	}
	if result.ExitCode > 0 {
		return &ExitCodeError{Code: result.ExitCode}
	}
	return result.Error
}

// stderrTailLines is how much captured stderr a verbose failure repeats
const stderrTailLines = 10

// reportStderrTail repeats the end of a failed command's stderr after its result line
func reportStderrTail(w io.Writer, result *exec.Result) {
	lines := exec.StderrTail(result, stderrTailLines)
	if len(lines) == 0 {
		return
	}
	ui.Warn(w, fmt.Sprintf("last %d lines of stderr:", len(lines)))
	for _, line := range lines {
		ui.Warn(w, "  "+line)
	}
}

// describeEnv prints where the environment points; runs inside the scope
func describeEnv(cmd *cobra.Command, env *buildenv.Env, source config.Source) {
	errOut := cmd.ErrOrStderr()

	ui.Step(errOut, "nixpkgs root: %s", env.Root())
	ui.Step(errOut, "%s=%s", buildenv.ConfigEnvVar, env.ConfigPath())
	ui.Step(errOut, "allow aliases option: %v (from %s)", env.Options().AllowAliases, source)

	info, err := gitinfo.Describe(env.Root())
	switch {
	case err == nil:
		ui.Step(errOut, "checkout: %s", info)
	case errors.Is(err, gitinfo.ErrNotGitRepo):
		ui.Step(errOut, "checkout: not a git repository")
	default:
		ui.Warn(errOut, fmt.Sprintf("Warning: could not describe checkout: %v", err))
	}
}
