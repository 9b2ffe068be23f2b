package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"notesift/internal/notes"
)

// WriteCSV renders results as RFC 4180 CSV. Each question contributes an
// answer column and an evidence column; evidence quotes are joined with
// " | " and individually wrapped in double quotes so they read as citations.
func WriteCSV(w io.Writer, questions []string, results []notes.QAResult) error {
	if len(results) == 0 {
		return nil
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(headerRow(questions)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, result := range results {
		row := []string{result.CustomerName, result.ProductManagerName, result.Date}
		for i := range questions {
			answer := answerAt(result, i)
			row = append(row, answer.Answer, quotedEvidence(answer.Evidence))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func headerRow(questions []string) []string {
	header := []string{"Customer Name", "Product Manager", "Date"}
	for _, question := range questions {
		header = append(header, question, question+" - Evidence")
	}
	return header
}

// answerAt returns the position-aligned answer, falling back to the sentinel
// when a result is somehow short.
func answerAt(result notes.QAResult, index int) notes.QAAnswer {
	if index < len(result.Answers) {
		return result.Answers[index]
	}
	return notes.SentinelAnswer()
}

func quotedEvidence(evidence []string) string {
	if len(evidence) == 0 {
		return ""
	}
	quoted := make([]string, 0, len(evidence))
	for _, quote := range evidence {
		quoted = append(quoted, `"`+quote+`"`)
	}
	return strings.Join(quoted, " | ")
}
