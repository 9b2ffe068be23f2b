package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"notesift/internal/notes"
	"notesift/internal/session"
	"notesift/internal/workflow"
)

func newAskCommand(ctx *commandContext) *cobra.Command {
	var questionsFile string

	cmd := &cobra.Command{
		Use:   "ask [question]...",
		Short: "Ask yes/no questions against the selected notes",
		Long: `Ask one or more yes/no questions against every selected note. Questions
come from positional arguments, --file, piped stdin, or an interactive editor
when running in a terminal. Each question is one line; blank lines are
ignored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			questionsText, err := gatherQuestions(cmd, args, questionsFile)
			if err != nil {
				return err
			}

			interactive := isInteractive(os.Stdout)
			return ctx.withLockedSession(cmd.Context(), false, func(store *session.Store, sess *session.Session) error {
				if len(sess.State.SelectedIDs) == 0 {
					return errors.New("no notes selected; run 'notesift fetch' and 'notesift review' first")
				}

				if questionsText == "" && interactive {
					questionsText, err = runQuestionEditor(sess.State.Questions)
					if err != nil {
						return err
					}
				}
				if len(notes.ParseQuestions(questionsText)) == 0 {
					return errors.New("no questions given; pass them as arguments, via --file, or on stdin")
				}

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

				err = ctrl.AnswerQuestions(cmd.Context(), questionsText)
				if renderer != nil {
					renderer.finish()
				}
				if err != nil {
					return err
				}

				sess.State = ctrl.State()
				fmt.Fprintf(cmd.OutOrStdout(), "Answered %d questions across %d notes.\n",
					len(sess.State.Questions), len(sess.State.Results))
				fmt.Fprintln(cmd.OutOrStdout(), "Run 'notesift results' to see the answers.")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&questionsFile, "file", "", "Read questions from a file, one per line")
	return cmd
}

func gatherQuestions(cmd *cobra.Command, args []string, questionsFile string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, "\n"), nil
	}
	if questionsFile != "" {
		data, err := os.ReadFile(questionsFile)
		if err != nil {
			return "", fmt.Errorf("read questions file: %w", err)
		}
		return string(data), nil
	}
	if stdin, ok := cmd.InOrStdin().(*os.File); ok && !isInteractive(stdin) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read questions from stdin: %w", err)
		}
		return string(data), nil
	}
	return "", nil
}

func runQuestionEditor(previous []string) (string, error) {
	text := strings.Join(previous, "\n")
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Questions").
				Description("One yes/no question per line").
				Value(&text).
				Validate(func(s string) error {
					if len(notes.ParseQuestions(s)) == 0 {
						return errors.New("enter at least one question")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("collect questions: %w", err)
	}
	return text, nil
}
