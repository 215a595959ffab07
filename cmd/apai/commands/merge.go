// SPDX-License-Identifier: MIT
package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/openapia/apai/cmd/apai/internal/clierr"
	"github.com/openapia/apai/pkg/apai"
)

// NewMergeCommand constructs the merge subcommand: it materializes the
// merged form of the given documents without validating it. Inputs merge
// left to right, so later files override earlier ones.
func NewMergeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <output> <file>...",
		Short: "Merge OpenAPIA documents into one",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, inputs := args[0], args[1:]

			log.Debug().Strs("inputs", inputs).Str("output", output).Msg("merging documents")

			if err := apai.New().MergeFiles(inputs, output); err != nil {
				return clierr.Wrap(2, "merge failed", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Merged %d document(s) into %s\n", len(inputs), output)
			return nil
		},
	}
	return cmd
}
