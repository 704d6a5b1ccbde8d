/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sony-level/nixpkgs-review/internal/buildenv"
	"github.com/sony-level/nixpkgs-review/internal/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the nixpkgs config the build environment would use",
	Long: `Print the nixpkgs config expression written to NIXPKGS_CONFIG.

Options are resolved from --allow-aliases, then the
NIXPKGS_REVIEW_ALLOW_ALIASES environment variable, then the config file
(.nixpkgs-review.yaml, $XDG_CONFIG_HOME/nixpkgs-review/config.yaml, ...).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, source, err := resolveOptions(cmd)
		if err != nil {
			return fmt.Errorf("failed to resolve options: %w", err)
		}

		if verbose {
			ui.Info(cmd.ErrOrStderr(), "allow aliases option: %v (from %s)", opts.AllowAliases, source)
		}

		fmt.Fprint(cmd.OutOrStdout(), buildenv.RenderConfig(opts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
