package session_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"notesift/internal/notes"
	"notesift/internal/services"
	"notesift/internal/session"
	"notesift/internal/workflow"
)

func openStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.OpenPath(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("session id empty")
	}
	if created.State.Stage != workflow.StageInput {
		t.Fatalf("new session stage = %s", created.State.Stage)
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("Get returned %#v", got)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	store := openStore(t)
	got, err := store.Get(context.Background(), "no-such-session")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing session, got %#v", got)
	}
}

func TestSaveRestoresFullState(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	sess.Query = notes.RelevanceQuery{
		Names:              []string{"Dana Scott"},
		DateRange:          notes.DateRange{StartMonth: "2025-01", EndMonth: "2025-03"},
		ProjectDescription: "analytics revamp",
	}
	sess.State.Stage = workflow.StageResults
	sess.State.RawNotes = []notes.CustomerNote{{NoteID: "n1", CustomerName: "Acme", NoteContent: "<p>hi</p>"}}
	sess.State.FilteredNotes = sess.State.RawNotes
	sess.State.SelectedIDs = []string{"n1"}
	sess.State.Questions = []string{"pricing?", "pilot?"}
	sess.State.Results = []notes.QAResult{{
		NoteID:       "n1",
		CustomerName: "Acme",
		Answers: []notes.QAAnswer{
			{Answer: notes.AnswerYes, Evidence: []string{"said so"}},
			notes.SentinelAnswer(),
		},
	}}

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got.Query, sess.Query) {
		t.Fatalf("query = %#v", got.Query)
	}
	if got.State.Stage != workflow.StageResults {
		t.Fatalf("stage = %s", got.State.Stage)
	}
	if !reflect.DeepEqual(got.State.Questions, sess.State.Questions) {
		t.Fatalf("questions = %#v", got.State.Questions)
	}
	if !reflect.DeepEqual(got.State.Results, sess.State.Results) {
		t.Fatalf("results = %#v", got.State.Results)
	}
	if !got.State.Results[0].Answers[1].IsSentinel() {
		t.Fatal("sentinel answer lost in round trip")
	}
}

func TestCurrentReturnsLatest(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Saving the first session makes it the most recently updated.
	first.State.Questions = []string{"q"}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	current, err := store.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if current == nil || current.ID != first.ID {
		t.Fatalf("current = %#v, want %s", current, first.ID)
	}
	_ = second
}

func TestCurrentEmptyStoreReturnsNil(t *testing.T) {
	store := openStore(t)
	current, err := store.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if current != nil {
		t.Fatalf("expected nil, got %#v", current)
	}
}

func TestResetKeepsDataClearsProgress(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	sess.State.Stage = workflow.StageReview
	sess.State.RawNotes = []notes.CustomerNote{{NoteID: "n1"}}
	sess.State.ProgressMessage = "Processing note 1 of 1"
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Reset(ctx, sess.ID); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.State.Stage != workflow.StageInput {
		t.Fatalf("stage after reset = %s", got.State.Stage)
	}
	if got.State.ProgressMessage != "" {
		t.Fatalf("progress not cleared: %q", got.State.ProgressMessage)
	}
	if len(got.State.RawNotes) != 1 {
		t.Fatal("fetched notes should survive a reset")
	}
}

func TestRemoveAndClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	removed, err := store.Remove(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !removed {
		t.Fatal("Remove reported nothing deleted")
	}

	if _, err := store.Create(ctx); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := store.Create(ctx); err != nil {
		t.Fatalf("Create: %v", err)
	}
	count, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if count != 2 {
		t.Fatalf("cleared %d sessions, want 2", count)
	}
}

func TestLockRejectsSecondHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.lock")

	first, err := session.AcquireLock(path)
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	defer first.Release()

	if _, err := session.AcquireLock(path); !errors.Is(err, services.ErrBusy) {
		t.Fatalf("expected busy error, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	second, err := session.AcquireLock(path)
	if err != nil {
		t.Fatalf("reacquire after release: %v", err)
	}
	_ = second.Release()
}
