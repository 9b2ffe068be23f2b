package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"notesift/internal/session"
	"notesift/internal/workflow"
)

func newBackCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "back [stage]",
		Short: "Move the session to an earlier stage",
		Long: `Move back one stage, or to the named stage (input, review, questions,
results). Backward moves never lose collected data; a forward move is only
allowed when the target stage's data already exists.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLockedSession(cmd.Context(), false, func(store *session.Store, sess *session.Session) error {
				target := previousStage(sess.State.Stage)
				if len(args) == 1 {
					parsed, ok := workflow.ParseStage(args[0])
					if !ok {
						return fmt.Errorf("unknown stage %q (want input, review, questions, or results)", args[0])
					}
					target = parsed
				}

				ctrl, err := ctx.newController(sess)
				if err != nil {
					return err
				}
				if !ctrl.Advance(target) {
					fmt.Fprintf(cmd.OutOrStdout(), "Cannot move to %s from %s yet.\n",
						target.Label(), sess.State.Stage.Label())
					return nil
				}
				sess.State = ctrl.State()
				fmt.Fprintf(cmd.OutOrStdout(), "Now at %s.\n", stageLabel(sess.State.Stage))
				return nil
			})
		},
	}
}

func previousStage(current workflow.Stage) workflow.Stage {
	stages := workflow.AllStages()
	index := current.Index()
	if index <= 0 {
		return workflow.StageInput
	}
	return stages[index-1]
}
