/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sony-level/nixpkgs-review/internal/buildenv"
	"github.com/sony-level/nixpkgs-review/internal/nixroot"
)

// rootDirCmd represents the root command
var rootDirCmd = &cobra.Command{
	Use:   "root [dir]",
	Short: "Print the nixpkgs checkout root",
	Long: `Walk upward from dir (default: the current directory) until a
directory containing nixos/release.nix is found and print its absolute path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := "."
		if len(args) > 0 {
			start = args[0]
		}

		root, ok := nixroot.FindRootFrom(start)
		if !ok {
			return fmt.Errorf("%w: no %s above %s", buildenv.ErrNotInRepository, nixroot.MarkerPath, start)
		}

		abs, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", root, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), abs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rootDirCmd)
}
