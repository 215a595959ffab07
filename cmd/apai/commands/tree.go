// SPDX-License-Identifier: MIT
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openapia/apai/cmd/apai/internal/clierr"
	"github.com/openapia/apai/pkg/apai"
)

// NewTreeCommand constructs the tree subcommand: it prints the inheritance
// hierarchy of a document without validating anything.
func NewTreeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Show the inheritance hierarchy of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rendered, err := apai.New().HierarchyTree(args[0])
			if err != nil {
				return clierr.Wrap(2, "tree failed", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	return cmd
}
