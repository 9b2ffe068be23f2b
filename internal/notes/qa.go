package notes

import "errors"

// Answer categories produced by the question-answering backend. AnswerNone is
// the sentinel substituted when no real answer could be obtained; it is an
// answer-field marker only and never inferred from evidence content.
const (
	AnswerYes   = "Yes"
	AnswerNo    = "No"
	AnswerMaybe = "Maybe"
	AnswerNone  = "-"
)

var (
	errMissingNames      = errors.New("at least one product manager name is required")
	errMissingStartMonth = errors.New("start month is required")
	errMissingEndMonth   = errors.New("end month is required")
	errMissingProject    = errors.New("project description is required")
)

// QAAnswer is one cell of the answer matrix: a categorical answer plus the
// verbatim quotes supporting it.
type QAAnswer struct {
	Answer   string   `json:"answer"`
	Evidence []string `json:"evidence"`
}

// QAResult holds one note's row of the matrix. Answers align positionally
// with the question list used for the run.
type QAResult struct {
	NoteID             string     `json:"noteId"`
	CustomerName       string     `json:"customerName"`
	ProductManagerName string     `json:"productManagerName"`
	Date               string     `json:"date"`
	Answers            []QAAnswer `json:"answers"`
}

// SentinelAnswer returns the placeholder recorded when a pair request fails
// or returns nothing. Evidence is a non-nil empty slice so exports and JSON
// renderings stay uniform.
func SentinelAnswer() QAAnswer {
	return QAAnswer{Answer: AnswerNone, Evidence: []string{}}
}

// IsSentinel reports whether the answer is the no-answer placeholder.
func (a QAAnswer) IsSentinel() bool {
	return a.Answer == AnswerNone && len(a.Evidence) == 0
}
