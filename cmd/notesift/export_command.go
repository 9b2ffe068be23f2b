package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"notesift/internal/export"
	"notesift/internal/notes"
	"notesift/internal/session"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:       "export {csv|tsv|html}",
		Short:     "Export the results as CSV, TSV, or HTML",
		Long:      `Export the question-answering results. CSV and HTML default to a timestamped file in the configured export directory; TSV defaults to stdout for pasting into a spreadsheet. Use -o to override, with "-" meaning stdout.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"csv", "tsv", "html"},
		RunE: func(cmd *cobra.Command, args []string) error {
			format := args[0]
			var writeFn func(io.Writer, []string, []notes.QAResult) error
			switch format {
			case "csv":
				writeFn = export.WriteCSV
			case "tsv":
				writeFn = export.WriteTSV
			case "html":
				writeFn = export.WriteHTML
			default:
				return fmt.Errorf("unknown export format %q (want csv, tsv, or html)", format)
			}

			return ctx.withSession(cmd.Context(), false, func(store *session.Store, sess *session.Session) error {
				if len(sess.State.Results) == 0 {
					// Nothing to export is not an error.
					return nil
				}

				target, err := resolveExportTarget(ctx, format, outputPath)
				if err != nil {
					return err
				}

				if target == "-" {
					return writeFn(cmd.OutOrStdout(), sess.State.Questions, sess.State.Results)
				}

				file, err := os.Create(target)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer file.Close()
				if err := writeFn(file, sess.State.Questions, sess.State.Results); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", `Destination path ("-" for stdout)`)
	return cmd
}

func resolveExportTarget(ctx *commandContext, format, outputPath string) (string, error) {
	if outputPath != "" {
		return outputPath, nil
	}
	if format == "tsv" {
		return "-", nil
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("notesift-%s.%s", time.Now().Format("2006-01-02-150405"), format)
	return filepath.Join(cfg.Paths.ExportDir, name), nil
}
