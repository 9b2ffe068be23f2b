package export

import (
	"fmt"
	"io"
	"strings"

	"notesift/internal/notes"
)

// WriteTSV renders results tab-separated for pasting into a spreadsheet.
// Evidence quotes are joined with " | " without extra quoting; tabs and
// newlines inside fields are flattened to spaces to keep rows intact.
func WriteTSV(w io.Writer, questions []string, results []notes.QAResult) error {
	if len(results) == 0 {
		return nil
	}

	if err := writeTSVRow(w, headerRow(questions)); err != nil {
		return err
	}
	for _, result := range results {
		row := []string{result.CustomerName, result.ProductManagerName, result.Date}
		for i := range questions {
			answer := answerAt(result, i)
			row = append(row, answer.Answer, strings.Join(answer.Evidence, " | "))
		}
		if err := writeTSVRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeTSVRow(w io.Writer, fields []string) error {
	sanitized := make([]string, 0, len(fields))
	for _, field := range fields {
		sanitized = append(sanitized, sanitizeTSVField(field))
	}
	if _, err := fmt.Fprintln(w, strings.Join(sanitized, "\t")); err != nil {
		return fmt.Errorf("write tsv row: %w", err)
	}
	return nil
}

func sanitizeTSVField(field string) string {
	replacer := strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")
	return replacer.Replace(field)
}
