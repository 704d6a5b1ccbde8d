/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sony-level/nixpkgs-review/internal/buildenv"
	"github.com/sony-level/nixpkgs-review/internal/config"
)

var (
	// Global flags
	verbose      bool
	allowAliases bool
)

// ExitCodeError carries the exit status of a command run inside the build environment
type ExitCodeError struct {
	Code int
	Err  error // set when the command could not be run at all
}

func (e *ExitCodeError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nixpkgs-review",
	Short: "Run commands in a prepared nixpkgs build environment",
	Long: `nixpkgs-review prepares a transient environment for building packages
from a nixpkgs checkout. It locates the checkout root (the directory
containing nixos/release.nix), changes into it, writes a temporary
nixpkgs config and exports it as NIXPKGS_CONFIG. Everything is restored
when the command finishes.

Examples:
  nixpkgs-review root
  nixpkgs-review config --allow-aliases
  nixpkgs-review env -- nix-build -A hello
  nixpkgs-review env -v -- nix-shell -p hello`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}

	code := 1
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
	}
	// the child already reported its own failure
	if exitErr == nil || exitErr.Err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	cancel()
	os.Exit(code)
}

// resolveOptions merges --allow-aliases with the environment and config file
func resolveOptions(cmd *cobra.Command) (buildenv.Options, config.Source, error) {
	var cli *bool
	if cmd.Flags().Changed("allow-aliases") {
		cli = &allowAliases
	}
	return config.Resolve(cli)
}

func init() {
	// Persistent flags - available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&allowAliases, "allow-aliases", false, "Write allowAliases = false into the generated nixpkgs config (or env: "+config.EnvAllowAliases+")")
}
