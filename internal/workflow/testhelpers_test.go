package workflow_test

import (
	"context"
	"fmt"

	"notesift/internal/notes"
	"notesift/internal/services/notesapi"
)

// fakeBackend implements workflow.Backend with overridable behavior. The
// defaults model a cooperative backend: identity transform with cleaned
// content filled in, everything relevant, and a "Yes" answer for every pair.
type fakeBackend struct {
	fetch     func(ctx context.Context, req notesapi.FetchRequest) ([]notes.CustomerNote, error)
	transform func(ctx context.Context, batch []notes.CustomerNote) ([]notes.CustomerNote, error)
	relevance func(ctx context.Context, batch []notes.CustomerNote, projectDescription string) ([]notes.CustomerNote, error)
	answer    func(ctx context.Context, batch []notes.CustomerNote, questions []string) ([]notes.QAResult, error)
}

func (f *fakeBackend) FetchNotes(ctx context.Context, req notesapi.FetchRequest) ([]notes.CustomerNote, error) {
	if f.fetch != nil {
		return f.fetch(ctx, req)
	}
	return nil, nil
}

func (f *fakeBackend) TransformNotes(ctx context.Context, batch []notes.CustomerNote) ([]notes.CustomerNote, error) {
	if f.transform != nil {
		return f.transform(ctx, batch)
	}
	cleaned := append([]notes.CustomerNote(nil), batch...)
	for i := range cleaned {
		cleaned[i].CleanedNoteContent = "cleaned " + cleaned[i].NoteID
	}
	return cleaned, nil
}

func (f *fakeBackend) FilterRelevance(ctx context.Context, batch []notes.CustomerNote, projectDescription string) ([]notes.CustomerNote, error) {
	if f.relevance != nil {
		return f.relevance(ctx, batch, projectDescription)
	}
	return batch, nil
}

func (f *fakeBackend) AnswerQuestions(ctx context.Context, batch []notes.CustomerNote, questions []string) ([]notes.QAResult, error) {
	if f.answer != nil {
		return f.answer(ctx, batch, questions)
	}
	results := make([]notes.QAResult, 0, len(batch))
	for _, note := range batch {
		answers := make([]notes.QAAnswer, 0, len(questions))
		for range questions {
			answers = append(answers, notes.QAAnswer{Answer: notes.AnswerYes, Evidence: []string{"quote from " + note.NoteID}})
		}
		results = append(results, notes.QAResult{
			NoteID:       note.NoteID,
			CustomerName: note.CustomerName,
			Date:         note.Date,
			Answers:      answers,
		})
	}
	return results, nil
}

func testNotes(n int) []notes.CustomerNote {
	batch := make([]notes.CustomerNote, 0, n)
	for i := 1; i <= n; i++ {
		batch = append(batch, notes.CustomerNote{
			NoteID:             fmt.Sprintf("n%d", i),
			CustomerName:       fmt.Sprintf("Customer %d", i),
			ProductManagerName: "Dana Scott",
			Date:               fmt.Sprintf("2025-01-%02d", i),
			Subject:            fmt.Sprintf("Subject %d", i),
			NoteContent:        "<p>body</p>",
		})
	}
	return batch
}

func testQuery() notes.RelevanceQuery {
	return notes.RelevanceQuery{
		Names:              []string{"Dana Scott"},
		DateRange:          notes.DateRange{StartMonth: "2025-01", EndMonth: "2025-02"},
		ProjectDescription: "analytics revamp",
	}
}
