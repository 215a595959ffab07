// SPDX-License-Identifier: MIT

// Package commands wires the apai CLI: validating OpenAPIA documents,
// materializing merged documents, and inspecting inheritance hierarchies.
package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd constructs the apai root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("APAI_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	var verbose bool

	cmd := &cobra.Command{
		Use:           "apai",
		Short:         "apai - OpenAPIA document validator",
		Long:          "apai validates OpenAPIA documents (AI-system configurations), resolves hierarchical inheritance, and materializes merged documents.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of apai",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "apai version %s\n", version)
		},
	})

	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewMergeCommand())
	cmd.AddCommand(NewTreeCommand())

	return cmd
}
