package notes

import "fmt"

// AnswerTally aggregates one question's answers across every result row.
// Percentages are pre-formatted to one decimal place; with zero results every
// percentage is "0.0" rather than NaN.
type AnswerTally struct {
	Index      int    `json:"index"`
	Question   string `json:"question"`
	Yes        int    `json:"yes"`
	No         int    `json:"no"`
	Maybe      int    `json:"maybe"`
	Unanswered int    `json:"unanswered"`

	YesPercent        string `json:"yesPercent"`
	NoPercent         string `json:"noPercent"`
	MaybePercent      string `json:"maybePercent"`
	UnansweredPercent string `json:"unansweredPercent"`
}

// Summarize recomputes the per-question tallies from scratch. It returns one
// tally per question in question order, or nil when there are no questions.
// Results with short answer rows contribute only to the cells they cover.
func Summarize(questions []string, results []QAResult) []AnswerTally {
	if len(questions) == 0 {
		return nil
	}
	tallies := make([]AnswerTally, len(questions))
	for i, question := range questions {
		tallies[i] = AnswerTally{Index: i, Question: question}
	}
	for _, result := range results {
		for i := range tallies {
			if i >= len(result.Answers) {
				break
			}
			switch result.Answers[i].Answer {
			case AnswerYes:
				tallies[i].Yes++
			case AnswerNo:
				tallies[i].No++
			case AnswerMaybe:
				tallies[i].Maybe++
			default:
				tallies[i].Unanswered++
			}
		}
	}
	total := len(results)
	for i := range tallies {
		tallies[i].YesPercent = percent(tallies[i].Yes, total)
		tallies[i].NoPercent = percent(tallies[i].No, total)
		tallies[i].MaybePercent = percent(tallies[i].Maybe, total)
		tallies[i].UnansweredPercent = percent(tallies[i].Unanswered, total)
	}
	return tallies
}

func percent(count, total int) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(count)/float64(total)*100)
}
