package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"notesift/internal/session"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active session and where it stands",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sess, err := store.Current(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if sess == nil {
				if jsonOut {
					return writeJSON(cmd, map[string]any{"session": nil})
				}
				fmt.Fprintln(out, "No active session. Run 'notesift fetch' to start one.")
				return nil
			}

			if jsonOut {
				return writeJSON(cmd, statusPayload(sess))
			}

			state := sess.State
			fmt.Fprintf(out, "Session:   %s\n", sess.ID)
			fmt.Fprintf(out, "Stage:     %s\n", stageLabel(state.Stage))
			if len(sess.Query.Names) > 0 {
				fmt.Fprintf(out, "Query:     %v, %s to %s\n", sess.Query.Names,
					sess.Query.DateRange.StartMonth, sess.Query.DateRange.EndMonth)
			}
			fmt.Fprintf(out, "Notes:     %d fetched, %d relevant, %d selected\n",
				len(state.RawNotes), len(state.FilteredNotes), len(state.SelectedIDs))
			fmt.Fprintf(out, "Questions: %d, results for %d notes\n",
				len(state.Questions), len(state.Results))
			if state.ProgressMessage != "" {
				fmt.Fprintf(out, "Progress:  %s\n", state.ProgressMessage)
			}
			fmt.Fprintf(out, "Updated:   %s\n", sess.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the session status as JSON")
	return cmd
}

func statusPayload(sess *session.Session) map[string]any {
	state := sess.State
	return map[string]any{
		"session": map[string]any{
			"id":        sess.ID,
			"stage":     string(state.Stage),
			"query":     sess.Query,
			"fetched":   len(state.RawNotes),
			"relevant":  len(state.FilteredNotes),
			"selected":  len(state.SelectedIDs),
			"questions": len(state.Questions),
			"results":   len(state.Results),
			"updatedAt": sess.UpdatedAt,
		},
	}
}
