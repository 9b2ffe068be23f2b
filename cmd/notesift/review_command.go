package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"notesift/internal/session"
	"notesift/internal/workflow"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var showContent bool

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review the relevant notes and adjust the selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), false, func(store *session.Store, sess *session.Session) error {
				if len(sess.State.FilteredNotes) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No filtered notes yet; run 'notesift fetch' first.")
					return nil
				}
				if jsonOut {
					return writeJSON(cmd, sess.State.FilteredNotes)
				}
				renderReviewTable(cmd, sess.State, showContent)
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d notes selected. Adjust with 'notesift review toggle <noteID>' or 'notesift review pick'.\n",
					len(sess.State.SelectedIDs), len(sess.State.FilteredNotes))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the filtered notes as JSON")
	cmd.Flags().BoolVar(&showContent, "content", false, "Include the cleaned note content")

	cmd.AddCommand(newReviewToggleCommand(ctx))
	cmd.AddCommand(newReviewPickCommand(ctx))
	return cmd
}

func renderReviewTable(cmd *cobra.Command, state workflow.State, showContent bool) {
	headers := []string{"#", "Sel", "Customer", "Product Manager", "Date", "Subject"}
	if showContent {
		headers = append(headers, "Content")
	}
	rows := make([][]string, 0, len(state.FilteredNotes))
	for i, note := range state.FilteredNotes {
		row := []string{
			strconv.Itoa(i + 1),
			selectionMark(state, note),
			note.CustomerName,
			note.ProductManagerName,
			note.Date,
			truncate(note.Subject, 48),
		}
		if showContent {
			row = append(row, truncate(note.CleanedNoteContent, 80))
		}
		rows = append(rows, row)
	}
	aligns := []columnAlignment{alignRight}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
}

func newReviewToggleCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <noteID>...",
		Short: "Flip the selection state of one or more notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLockedSession(cmd.Context(), false, func(store *session.Store, sess *session.Session) error {
				ctrl, err := ctx.newController(sess)
				if err != nil {
					return err
				}
				for _, id := range args {
					ctrl.ToggleSelection(id)
				}
				sess.State = ctrl.State()
				fmt.Fprintf(cmd.OutOrStdout(), "%d of %d notes selected.\n",
					len(sess.State.SelectedIDs), len(sess.State.FilteredNotes))
				return nil
			})
		},
	}
}

func newReviewPickCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose the selected notes interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isInteractive(os.Stdout) {
				return fmt.Errorf("'review pick' needs a terminal; use 'review toggle' instead")
			}
			return ctx.withLockedSession(cmd.Context(), false, func(store *session.Store, sess *session.Session) error {
				if len(sess.State.FilteredNotes) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No filtered notes yet; run 'notesift fetch' first.")
					return nil
				}

				options := make([]huh.Option[string], 0, len(sess.State.FilteredNotes))
				for _, note := range sess.State.FilteredNotes {
					label := fmt.Sprintf("%s / %s / %s", note.CustomerName, note.Date, truncate(note.Subject, 40))
					options = append(options, huh.NewOption(label, note.NoteID).Selected(sess.State.IsSelected(note.NoteID)))
				}

				selected := append([]string(nil), sess.State.SelectedIDs...)
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewMultiSelect[string]().
							Title("Select the notes to research").
							Options(options...).
							Value(&selected),
					),
				)
				if err := form.Run(); err != nil {
					return fmt.Errorf("pick notes: %w", err)
				}

				ctrl, err := ctx.newController(sess)
				if err != nil {
					return err
				}
				ctrl.SetSelection(selected)
				sess.State = ctrl.State()
				fmt.Fprintf(cmd.OutOrStdout(), "%d of %d notes selected.\n",
					len(sess.State.SelectedIDs), len(sess.State.FilteredNotes))
				return nil
			})
		},
	}
}
