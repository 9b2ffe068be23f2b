package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func newPMNamesCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "pm-names",
		Short: "List the product manager names known to the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := ctx.newBackend()
			if err != nil {
				return err
			}
			names, err := backend.ProductManagerNames(cmd.Context())
			if err != nil {
				return err
			}

			// Locale-aware sort so accented names land where readers expect.
			collate.New(language.English, collate.IgnoreCase).SortStrings(names)

			if jsonOut {
				return writeJSON(cmd, names)
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of plain lines")
	return cmd
}
