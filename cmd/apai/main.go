// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/openapia/apai/cmd/apai/commands"
	"github.com/openapia/apai/cmd/apai/internal/clierr"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(clierr.ExitCodeOf(err))
	}
}
