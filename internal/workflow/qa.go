package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"notesift/internal/logging"
	"notesift/internal/notes"
	"notesift/internal/services"
)

// AnswerQuestions parses the question block and poses every question against
// every selected note, one (note, question) pair per backend request. The
// per-pair granularity trades request volume for fine-grained progress and
// failure isolation: a failed pair records the "-" sentinel and the matrix is
// always complete. On success the session advances to the results stage.
//
// An empty question block aborts with no state change.
func (c *Controller) AnswerQuestions(ctx context.Context, questionsText string) error {
	questions := notes.ParseQuestions(questionsText)
	if len(questions) == 0 {
		return services.Wrap(services.ErrValidation, string(StageQuestions), "parse questions", "no questions provided", nil)
	}

	c.mu.Lock()
	selected := c.state.SelectedNotes()
	c.mu.Unlock()
	if len(selected) == 0 {
		return services.Wrap(services.ErrValidation, string(StageQuestions), "answer questions", "no notes selected", nil)
	}

	if err := c.begin(StageQuestions, "answer", "Answering questions..."); err != nil {
		return err
	}

	requestID := uuid.NewString()
	ctx = services.WithRequestID(ctx, requestID)
	logger := c.logger.With(
		logging.String("operation", "answer_questions"),
		logging.String("request_id", requestID),
	)
	logger.Info("starting question pass",
		logging.Int("notes", len(selected)),
		logging.Int("questions", len(questions)))

	answers, err := c.answerPairs(ctx, logger, selected, questions)
	if err != nil {
		c.fail()
		return err
	}

	results := make([]notes.QAResult, len(selected))
	for i, note := range selected {
		results[i] = notes.QAResult{
			NoteID:             note.NoteID,
			CustomerName:       note.CustomerName,
			ProductManagerName: note.ProductManagerName,
			Date:               note.Date,
			Answers:            answers[i],
		}
	}

	c.mu.Lock()
	c.state.Questions = questions
	c.state.Results = results
	c.state.Stage = StageResults
	c.state.Busy = false
	c.state.ProgressMessage = ""
	c.mu.Unlock()

	logger.Info("question pass complete", logging.Int("cells", len(selected)*len(questions)))
	return nil
}

// answerPairs fills the answer matrix. Cell (i, j) always ends up populated:
// a transport failure, an error response, or an empty answer list all record
// the sentinel and the pass continues.
func (c *Controller) answerPairs(ctx context.Context, logger *slog.Logger, selected []notes.CustomerNote, questions []string) ([][]notes.QAAnswer, error) {
	answers := make([][]notes.QAAnswer, len(selected))
	for i := range answers {
		answers[i] = make([]notes.QAAnswer, len(questions))
	}

	total := len(selected) * len(questions)
	ask := func(noteIdx, questionIdx int) {
		note := selected[noteIdx]
		results, err := c.backend.AnswerQuestions(ctx, []notes.CustomerNote{note}, []string{questions[questionIdx]})
		switch {
		case err != nil:
			logger.Warn("question pair failed, recording sentinel",
				logging.String("note_id", note.NoteID),
				logging.Int("question", questionIdx+1),
				logging.Error(err))
			answers[noteIdx][questionIdx] = notes.SentinelAnswer()
		case len(results) == 0 || len(results[0].Answers) == 0:
			answers[noteIdx][questionIdx] = notes.SentinelAnswer()
		default:
			answers[noteIdx][questionIdx] = results[0].Answers[0]
		}
	}

	pairLabel := func(pos, noteIdx, questionIdx int) string {
		return fmt.Sprintf("Answering %d of %d (note %d of %d, question %d of %d)",
			pos, total, noteIdx+1, len(selected), questionIdx+1, len(questions))
	}

	if c.workers > 1 {
		var mu sync.Mutex
		completed := 0
		p := pool.New().WithMaxGoroutines(c.workers)
		for i := range selected {
			for j := range questions {
				p.Go(func() {
					if ctx.Err() != nil {
						return
					}
					ask(i, j)
					mu.Lock()
					completed++
					done := completed
					mu.Unlock()
					c.emit(Progress{Completed: done, Total: total, Label: pairLabel(done, i, j)})
				})
			}
		}
		p.Wait()
		if err := ctx.Err(); err != nil {
			return nil, services.Wrap(services.ErrTransient, string(StageQuestions), "answer questions", "canceled", err)
		}
		return answers, nil
	}

	pos := 0
	for i := range selected {
		for j := range questions {
			if err := ctx.Err(); err != nil {
				return nil, services.Wrap(services.ErrTransient, string(StageQuestions), "answer questions", "canceled", err)
			}
			pos++
			c.emit(Progress{Completed: pos - 1, Total: total, Label: pairLabel(pos, i, j)})
			ask(i, j)
		}
	}
	c.emit(Progress{Completed: total, Total: total, Label: "Question answering complete"})
	return answers, nil
}
