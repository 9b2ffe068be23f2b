package workflow_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"notesift/internal/notes"
	"notesift/internal/services"
	"notesift/internal/workflow"
)

func reviewState(n int) workflow.State {
	state := workflow.NewState()
	state.Stage = workflow.StageReview
	state.RawNotes = testNotes(n)
	state.FilteredNotes = testNotes(n)
	state.SelectedIDs = notes.IDs(state.FilteredNotes)
	return state
}

func TestAnswerQuestionsBuildsCompleteMatrix(t *testing.T) {
	ctrl := workflow.New(&fakeBackend{}, workflow.WithState(reviewState(3)))

	if err := ctrl.AnswerQuestions(context.Background(), "pricing?\npilot?\n"); err != nil {
		t.Fatalf("AnswerQuestions failed: %v", err)
	}
	state := ctrl.State()
	if state.Stage != workflow.StageResults {
		t.Fatalf("stage = %s, want results", state.Stage)
	}
	if len(state.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(state.Results))
	}
	cells := 0
	for _, result := range state.Results {
		if len(result.Answers) != len(state.Questions) {
			t.Fatalf("result %s has %d answers, want %d", result.NoteID, len(result.Answers), len(state.Questions))
		}
		cells += len(result.Answers)
	}
	if cells != 6 {
		t.Fatalf("cells = %d, want |selected|x|questions| = 6", cells)
	}
}

func TestAnswerQuestionsFailedPairGetsSentinel(t *testing.T) {
	backend := &fakeBackend{}
	base := &fakeBackend{}
	backend.answer = func(ctx context.Context, batch []notes.CustomerNote, questions []string) ([]notes.QAResult, error) {
		if batch[0].NoteID == "n1" && questions[0] == "q2" {
			return nil, errors.New("model unavailable")
		}
		return base.AnswerQuestions(ctx, batch, questions)
	}
	ctrl := workflow.New(backend, workflow.WithState(reviewState(2)))

	if err := ctrl.AnswerQuestions(context.Background(), "q1\nq2"); err != nil {
		t.Fatalf("a failed pair must not abort the pass: %v", err)
	}
	results := ctrl.State().Results

	sentinel := results[0].Answers[1]
	if sentinel.Answer != notes.AnswerNone || len(sentinel.Evidence) != 0 {
		t.Fatalf("failed pair = %#v, want sentinel", sentinel)
	}
	for _, cell := range []notes.QAAnswer{results[0].Answers[0], results[1].Answers[0], results[1].Answers[1]} {
		if cell.Answer != notes.AnswerYes {
			t.Fatalf("healthy cell lost its answer: %#v", cell)
		}
	}
}

func TestAnswerQuestionsEmptyResponseGetsSentinel(t *testing.T) {
	backend := &fakeBackend{
		answer: func(ctx context.Context, batch []notes.CustomerNote, questions []string) ([]notes.QAResult, error) {
			return []notes.QAResult{{NoteID: batch[0].NoteID, Answers: nil}}, nil
		},
	}
	ctrl := workflow.New(backend, workflow.WithState(reviewState(1)))

	if err := ctrl.AnswerQuestions(context.Background(), "q1"); err != nil {
		t.Fatalf("AnswerQuestions failed: %v", err)
	}
	answer := ctrl.State().Results[0].Answers[0]
	if !answer.IsSentinel() {
		t.Fatalf("expected sentinel for empty response, got %#v", answer)
	}
}

func TestAnswerQuestionsEmptyTextAborts(t *testing.T) {
	ctrl := workflow.New(&fakeBackend{}, workflow.WithState(reviewState(1)))

	err := ctrl.AnswerQuestions(context.Background(), "  \n\n ")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	state := ctrl.State()
	if state.Stage != workflow.StageReview || len(state.Questions) != 0 || len(state.Results) != 0 {
		t.Fatalf("state changed on empty question text: %+v", state)
	}
}

func TestAnswerQuestionsRequiresSelection(t *testing.T) {
	state := reviewState(2)
	state.SelectedIDs = nil
	ctrl := workflow.New(&fakeBackend{}, workflow.WithState(state))

	if err := ctrl.AnswerQuestions(context.Background(), "q1"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAnswerQuestionsRespectsSelection(t *testing.T) {
	state := reviewState(3)
	state.SelectedIDs = []string{"n1", "n3"}
	ctrl := workflow.New(&fakeBackend{}, workflow.WithState(state))

	if err := ctrl.AnswerQuestions(context.Background(), "q1"); err != nil {
		t.Fatalf("AnswerQuestions failed: %v", err)
	}
	results := ctrl.State().Results
	if len(results) != 2 || results[0].NoteID != "n1" || results[1].NoteID != "n3" {
		t.Fatalf("results = %#v", results)
	}
	if results[0].CustomerName != "Customer 1" || results[0].Date != "2025-01-01" {
		t.Fatalf("result metadata not carried over: %#v", results[0])
	}
}

func TestAnswerQuestionsProgressMonotonic(t *testing.T) {
	var mu sync.Mutex
	var ticks []workflow.Progress
	ctrl := workflow.New(&fakeBackend{},
		workflow.WithState(reviewState(2)),
		workflow.WithProgress(func(p workflow.Progress) {
			mu.Lock()
			ticks = append(ticks, p)
			mu.Unlock()
		}))

	if err := ctrl.AnswerQuestions(context.Background(), "q1\nq2\nq3"); err != nil {
		t.Fatalf("AnswerQuestions failed: %v", err)
	}
	if len(ticks) == 0 {
		t.Fatal("no progress reported")
	}
	last := -1
	for _, tick := range ticks {
		if tick.Total != 6 {
			t.Fatalf("total = %d, want 6", tick.Total)
		}
		if tick.Completed < last {
			t.Fatalf("progress regressed: %v", ticks)
		}
		last = tick.Completed
	}
	if last != 6 {
		t.Fatalf("final completed = %d, want 6", last)
	}
}

func TestAnswerQuestionsParallelMatchesSequential(t *testing.T) {
	answer := func(ctx context.Context, batch []notes.CustomerNote, questions []string) ([]notes.QAResult, error) {
		if batch[0].NoteID == "n2" && questions[0] == "q1" {
			return nil, errors.New("flaky pair")
		}
		evidence := fmt.Sprintf("%s answering %s", batch[0].NoteID, questions[0])
		return []notes.QAResult{{
			NoteID:  batch[0].NoteID,
			Answers: []notes.QAAnswer{{Answer: notes.AnswerMaybe, Evidence: []string{evidence}}},
		}}, nil
	}
	run := func(workers int) []notes.QAResult {
		ctrl := workflow.New(&fakeBackend{answer: answer},
			workflow.WithState(reviewState(3)),
			workflow.WithWorkers(workers))
		if err := ctrl.AnswerQuestions(context.Background(), "q1\nq2"); err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		return ctrl.State().Results
	}

	sequential := run(1)
	parallel := run(4)
	if !reflect.DeepEqual(sequential, parallel) {
		t.Fatalf("matrices diverged:\nsequential=%#v\nparallel=%#v", sequential, parallel)
	}
	if !sequential[1].Answers[0].IsSentinel() {
		t.Fatalf("expected sentinel for (n2, q1): %#v", sequential[1].Answers[0])
	}
}

func TestAnswerQuestionsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	backend := &fakeBackend{
		answer: func(ctx context.Context, batch []notes.CustomerNote, questions []string) ([]notes.QAResult, error) {
			calls++
			if calls == 2 {
				cancel()
			}
			return []notes.QAResult{{NoteID: batch[0].NoteID, Answers: []notes.QAAnswer{{Answer: notes.AnswerYes}}}}, nil
		},
	}
	ctrl := workflow.New(backend, workflow.WithState(reviewState(3)))

	err := ctrl.AnswerQuestions(ctx, "q1\nq2")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	state := ctrl.State()
	if state.Stage != workflow.StageReview || len(state.Results) != 0 {
		t.Fatalf("partial results committed: stage=%s results=%d", state.Stage, len(state.Results))
	}
}
