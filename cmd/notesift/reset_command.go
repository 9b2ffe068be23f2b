package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"notesift/internal/session"
)

func newResetCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Return the session to the input stage, or delete all sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				store, err := ctx.openStore()
				if err != nil {
					return err
				}
				defer store.Close()
				count, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d sessions.\n", count)
				return nil
			}

			return ctx.withLockedSession(cmd.Context(), false, func(store *session.Store, sess *session.Session) error {
				if err := store.Reset(cmd.Context(), sess.ID); err != nil {
					return err
				}
				refreshed, err := store.Get(cmd.Context(), sess.ID)
				if err != nil {
					return err
				}
				if refreshed != nil {
					*sess = *refreshed
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Session back at the input stage. Fetched data is kept.")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Delete every stored session instead of resetting the active one")
	return cmd
}
