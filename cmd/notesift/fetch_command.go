package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"notesift/internal/notes"
	"notesift/internal/session"
	"notesift/internal/workflow"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var (
		names       []string
		fromMonth   string
		toMonth     string
		project     string
		projectFile string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch customer notes and filter them for relevance",
		Long: `Fetch customer notes for the given product managers and date range, clean
their HTML content, and keep the notes relevant to the project description.
Starts a new research session when none is active. Missing flags are
collected interactively when running in a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectFile != "" {
				data, err := os.ReadFile(projectFile)
				if err != nil {
					return fmt.Errorf("read project file: %w", err)
				}
				project = strings.TrimSpace(string(data))
			}

			query := notes.RelevanceQuery{
				Names:              cleanNames(names),
				DateRange:          notes.DateRange{StartMonth: strings.TrimSpace(fromMonth), EndMonth: strings.TrimSpace(toMonth)},
				ProjectDescription: strings.TrimSpace(project),
			}

			interactive := isInteractive(os.Stdout)
			if interactive && queryIncomplete(query) {
				if err := runFetchForm(&query); err != nil {
					return err
				}
			}
			if err := query.Validate(); err != nil {
				return err
			}

			return ctx.withLockedSession(cmd.Context(), true, func(store *session.Store, sess *session.Session) error {
				var opts []workflow.Option
				var renderer *progressRenderer
				if interactive {
					renderer = &progressRenderer{}
					opts = append(opts, workflow.WithProgress(renderer.update))
				}
				ctrl, err := ctx.newController(sess, opts...)
				if err != nil {
					return err
				}

				found, err := ctrl.FetchAndFilter(cmd.Context(), query)
				if renderer != nil {
					renderer.finish()
				}
				if err != nil {
					return err
				}

				sess.Query = query
				sess.State = ctrl.State()

				out := cmd.OutOrStdout()
				if !found {
					fmt.Fprintln(out, "No notes found for the given names and date range.")
					return nil
				}
				fmt.Fprintf(out, "Fetched %d notes, %d relevant to the project.\n",
					len(sess.State.RawNotes), len(sess.State.FilteredNotes))
				fmt.Fprintln(out, "Run 'notesift review' to inspect the selection.")
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&names, "name", nil, "Product manager name to fetch notes for (repeatable)")
	cmd.Flags().StringVar(&fromMonth, "from", "", "Start month, YYYY-MM")
	cmd.Flags().StringVar(&toMonth, "to", "", "End month, YYYY-MM")
	cmd.Flags().StringVar(&project, "project", "", "Project description used for relevance filtering")
	cmd.Flags().StringVar(&projectFile, "project-file", "", "Read the project description from a file")
	return cmd
}

func cleanNames(raw []string) []string {
	cleaned := make([]string, 0, len(raw))
	for _, name := range raw {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

func queryIncomplete(query notes.RelevanceQuery) bool {
	return len(query.Names) == 0 ||
		query.DateRange.StartMonth == "" ||
		query.DateRange.EndMonth == "" ||
		query.ProjectDescription == ""
}

func runFetchForm(query *notes.RelevanceQuery) error {
	namesField := strings.Join(query.Names, ", ")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Product manager names").
				Description("Comma-separated, at least one").
				Value(&namesField).
				Validate(func(s string) error {
					if len(splitNames(s)) == 0 {
						return errors.New("at least one name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Start month (YYYY-MM)").
				Value(&query.DateRange.StartMonth).
				Validate(requireMonth),
			huh.NewInput().
				Title("End month (YYYY-MM)").
				Value(&query.DateRange.EndMonth).
				Validate(requireMonth),
			huh.NewText().
				Title("Project description").
				Description("Used to judge which notes are relevant").
				Value(&query.ProjectDescription).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("a project description is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("collect fetch parameters: %w", err)
	}

	query.Names = splitNames(namesField)
	query.DateRange.StartMonth = strings.TrimSpace(query.DateRange.StartMonth)
	query.DateRange.EndMonth = strings.TrimSpace(query.DateRange.EndMonth)
	query.ProjectDescription = strings.TrimSpace(query.ProjectDescription)
	return nil
}

func splitNames(raw string) []string {
	parts := strings.Split(raw, ",")
	return cleanNames(parts)
}

func requireMonth(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required, format YYYY-MM")
	}
	return nil
}
