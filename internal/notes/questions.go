package notes

import "strings"

// ParseQuestions splits a multi-line text block into the ordered question
// list: one question per line, trimmed, empty lines discarded. Order is
// preserved end-to-end because a question's position is its identity for
// result alignment.
func ParseQuestions(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	questions := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		questions = append(questions, line)
	}
	return questions
}
