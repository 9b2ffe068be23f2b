package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"notesift/internal/notes"
	"notesift/internal/session"
)

func newResultsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var showEvidence bool

	cmd := &cobra.Command{
		Use:   "results",
		Short: "Show per-question tallies and per-note answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), false, func(store *session.Store, sess *session.Session) error {
				state := sess.State
				if len(state.Results) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No results yet; run 'notesift ask' first.")
					return nil
				}

				tallies := notes.Summarize(state.Questions, state.Results)
				if jsonOut {
					return writeJSON(cmd, struct {
						Questions []string            `json:"questions"`
						Tallies   []notes.AnswerTally `json:"tallies"`
						Results   []notes.QAResult    `json:"results"`
					}{state.Questions, tallies, state.Results})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Summary")
				renderTallyTable(cmd, tallies)
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Answers")
				renderResultsTable(cmd, state.Questions, state.Results, showEvidence)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit questions, tallies, and results as JSON")
	cmd.Flags().BoolVar(&showEvidence, "evidence", false, "Include evidence quotes in the answers table")
	return cmd
}

func renderTallyTable(cmd *cobra.Command, tallies []notes.AnswerTally) {
	headers := []string{"#", "Question", "Yes", "No", "Maybe", "No answer"}
	rows := make([][]string, 0, len(tallies))
	for _, tally := range tallies {
		rows = append(rows, []string{
			strconv.Itoa(tally.Index + 1),
			truncate(tally.Question, 56),
			fmt.Sprintf("%d (%s%%)", tally.Yes, tally.YesPercent),
			fmt.Sprintf("%d (%s%%)", tally.No, tally.NoPercent),
			fmt.Sprintf("%d (%s%%)", tally.Maybe, tally.MaybePercent),
			fmt.Sprintf("%d (%s%%)", tally.Unanswered, tally.UnansweredPercent),
		})
	}
	aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
}

func renderResultsTable(cmd *cobra.Command, questions []string, results []notes.QAResult, showEvidence bool) {
	headers := []string{"Customer", "Product Manager", "Date"}
	for i := range questions {
		headers = append(headers, fmt.Sprintf("Q%d", i+1))
	}
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		row := []string{result.CustomerName, result.ProductManagerName, result.Date}
		for i := range questions {
			cell := notes.SentinelAnswer().Answer
			if i < len(result.Answers) {
				cell = result.Answers[i].Answer
				if showEvidence && len(result.Answers[i].Evidence) > 0 {
					cell += ": " + truncate(strings.Join(result.Answers[i].Evidence, " | "), 60)
				}
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, nil))
}
