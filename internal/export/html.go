package export

import (
	"fmt"
	"html/template"
	"io"

	"notesift/internal/notes"
)

const htmlReport = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Customer Notes Research</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #1a1a1a; }
h1 { font-size: 1.4rem; }
h2 { font-size: 1.1rem; margin-top: 2rem; }
table { border-collapse: collapse; margin-top: 0.75rem; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; vertical-align: top; }
th { background: #f0f0f0; }
td.answer-yes { background: #e3f4e3; }
td.answer-no { background: #f8e3e3; }
td.answer-maybe { background: #faf3d9; }
td.answer-none { background: #eeeeee; color: #777; }
td.evidence { font-size: 0.85rem; color: #444; max-width: 28rem; }
</style>
</head>
<body>
<h1>Customer Notes Research</h1>

<h2>Summary</h2>
<table>
<tr><th>Question</th><th>Yes</th><th>No</th><th>Maybe</th><th>No answer</th></tr>
{{- range .Tallies}}
<tr>
<td>{{.Question}}</td>
<td>{{.Yes}} ({{.YesPercent}}%)</td>
<td>{{.No}} ({{.NoPercent}}%)</td>
<td>{{.Maybe}} ({{.MaybePercent}}%)</td>
<td>{{.Unanswered}} ({{.UnansweredPercent}}%)</td>
</tr>
{{- end}}
</table>

<h2>Answers</h2>
<table>
<tr><th>Customer</th><th>Product Manager</th><th>Date</th>
{{- range .Questions}}<th>{{.}}</th><th>Evidence</th>{{- end}}
</tr>
{{- range .Rows}}
<tr>
<td>{{.Customer}}</td>
<td>{{.ProductManager}}</td>
<td>{{.Date}}</td>
{{- range .Cells}}
<td class="{{.Class}}">{{.Answer}}</td>
<td class="evidence">{{.Evidence}}</td>
{{- end}}
</tr>
{{- end}}
</table>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(htmlReport))

type htmlCell struct {
	Answer   string
	Class    string
	Evidence string
}

type htmlRow struct {
	Customer       string
	ProductManager string
	Date           string
	Cells          []htmlCell
}

type htmlData struct {
	Questions []string
	Tallies   []notes.AnswerTally
	Rows      []htmlRow
}

// WriteHTML renders a standalone report with per-question tallies and
// color-coded answer cells.
func WriteHTML(w io.Writer, questions []string, results []notes.QAResult) error {
	if len(results) == 0 {
		return nil
	}

	data := htmlData{
		Questions: questions,
		Tallies:   notes.Summarize(questions, results),
	}
	for _, result := range results {
		row := htmlRow{
			Customer:       result.CustomerName,
			ProductManager: result.ProductManagerName,
			Date:           result.Date,
		}
		for i := range questions {
			answer := answerAt(result, i)
			row.Cells = append(row.Cells, htmlCell{
				Answer:   answer.Answer,
				Class:    answerClass(answer.Answer),
				Evidence: quotedEvidence(answer.Evidence),
			})
		}
		data.Rows = append(data.Rows, row)
	}

	if err := htmlTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}

func answerClass(answer string) string {
	switch answer {
	case notes.AnswerYes:
		return "answer-yes"
	case notes.AnswerNo:
		return "answer-no"
	case notes.AnswerMaybe:
		return "answer-maybe"
	default:
		return "answer-none"
	}
}
