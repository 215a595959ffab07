// SPDX-License-Identifier: MIT
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openapia/apai/cmd/apai/internal/clierr"
	"github.com/openapia/apai/pkg/apai"
)

// NewValidateCommand constructs the validate subcommand. Exit codes: 0
// valid, 1 invalid, 2 the document could not be loaded at all.
func NewValidateCommand() *cobra.Command {
	var (
		hierarchical bool
		jsonOutput   bool
		quiet        bool
	)

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate an OpenAPIA document",
		Long: `Validate an OpenAPIA document against the fixed schema.

With --hierarchical the document's inherits chain is resolved first and the
effective (fully merged) document is validated instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			validator := apai.New()

			var (
				result apai.ValidationResult
				err    error
			)
			if hierarchical {
				result, err = validator.ValidateWithInheritance(args[0])
			} else {
				result, err = validator.ValidateFile(args[0])
			}
			if err != nil {
				return clierr.Wrap(2, "validation aborted", err)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling result: %w", err)
				}
				fmt.Fprintln(out, string(data))
			} else {
				printResult(cmd, result, quiet)
			}

			if !result.Valid {
				return clierr.Newf(1, "%s is not a valid OpenAPIA document", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&hierarchical, "hierarchical", false, "resolve the inherits chain before validating")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "output the result as JSON")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only output errors, no warnings")

	return cmd
}

func printResult(cmd *cobra.Command, result apai.ValidationResult, quiet bool) {
	out := cmd.OutOrStdout()

	if len(result.Errors) > 0 {
		fmt.Fprintln(out, "Errors:")
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  - %s\n", e)
		}
	}
	if len(result.Warnings) > 0 && !quiet {
		fmt.Fprintln(out, "Warnings:")
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  - %s\n", w)
		}
	}
	if result.Valid {
		if len(result.Warnings) == 0 {
			fmt.Fprintln(out, "OK: document is valid")
		} else {
			fmt.Fprintln(out, "OK: document is valid (with warnings)")
		}
	}
}
