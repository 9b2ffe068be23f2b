package workflow

import (
	"context"
	"log/slog"
	"sync"

	"notesift/internal/logging"
	"notesift/internal/notes"
	"notesift/internal/services"
	"notesift/internal/services/notesapi"
)

// Backend is the slice of the notes API the workflow drives. *notesapi.Client
// satisfies it; tests substitute fakes.
type Backend interface {
	FetchNotes(ctx context.Context, req notesapi.FetchRequest) ([]notes.CustomerNote, error)
	TransformNotes(ctx context.Context, batch []notes.CustomerNote) ([]notes.CustomerNote, error)
	FilterRelevance(ctx context.Context, batch []notes.CustomerNote, projectDescription string) ([]notes.CustomerNote, error)
	AnswerQuestions(ctx context.Context, batch []notes.CustomerNote, questions []string) ([]notes.QAResult, error)
}

// Controller owns the WorkflowState and drives the backend calls that move a
// session between stages. All methods are safe for concurrent use; a second
// network operation started while one is in flight is rejected with
// services.ErrBusy rather than queued.
type Controller struct {
	backend  Backend
	logger   *slog.Logger
	progress ProgressFunc
	workers  int

	mu    sync.Mutex
	state State
}

// Option customizes controller construction.
type Option func(*Controller)

// WithLogger attaches a logger. A nil logger falls back to a no-op.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithProgress attaches the progress callback used by the per-item passes.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Controller) {
		c.progress = fn
	}
}

// WithWorkers bounds the worker pool for the relevance and question passes.
// Values below 2 keep the passes strictly sequential.
func WithWorkers(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithState seeds the controller with previously persisted session state.
func WithState(state State) Option {
	return func(c *Controller) {
		state.Busy = false
		c.state = state
	}
}

// New constructs a controller around the backend.
func New(backend Backend, opts ...Option) *Controller {
	c := &Controller{
		backend: backend,
		logger:  logging.NewNop(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.state.Stage == "" {
		c.state = NewState()
	}
	return c
}

// State returns a copy of the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// CanAdvance reports whether the target stage is reachable right now.
func (c *Controller) CanAdvance(target Stage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.CanAdvance(target)
}

// Advance moves to the target stage when the guard allows it and reports
// whether the move happened. A disallowed transition is a no-op. Returning to
// the input stage clears transient progress state but keeps collected data.
func (c *Controller) Advance(target Stage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.CanAdvance(target) {
		c.logger.Debug("stage transition ignored",
			logging.String("from", string(c.state.Stage)),
			logging.String("to", string(target)))
		return false
	}
	c.state.Stage = target
	if target == StageInput {
		c.state.ProgressMessage = ""
	}
	return true
}

// ToggleSelection flips a note's membership in the selected set. Adding only
// succeeds when the id exists in the filtered notes; unknown ids are a no-op.
// No network call is involved.
func (c *Controller) ToggleSelection(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.IsSelected(id) {
		kept := make([]string, 0, len(c.state.SelectedIDs))
		for _, selected := range c.state.SelectedIDs {
			if selected != id {
				kept = append(kept, selected)
			}
		}
		c.state.SelectedIDs = kept
		return
	}
	if _, ok := notes.FindByID(c.state.FilteredNotes, id); !ok {
		return
	}
	// Rebuild in filtered order so selection order never depends on toggle
	// order.
	c.state.SelectedIDs = append(c.state.SelectedIDs, id)
	ordered := make([]string, 0, len(c.state.SelectedIDs))
	for _, note := range c.state.FilteredNotes {
		if c.state.IsSelected(note.NoteID) {
			ordered = append(ordered, note.NoteID)
		}
	}
	c.state.SelectedIDs = ordered
}

// SetSelection replaces the selected set wholesale. Unknown ids are dropped
// and the result is ordered by the filtered notes, preserving the subset
// invariant regardless of input.
func (c *Controller) SetSelection(ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	requested := make(map[string]bool, len(ids))
	for _, id := range ids {
		requested[id] = true
	}
	ordered := make([]string, 0, len(ids))
	for _, note := range c.state.FilteredNotes {
		if requested[note.NoteID] {
			ordered = append(ordered, note.NoteID)
		}
	}
	c.state.SelectedIDs = ordered
}

// Summary recomputes the per-question answer tallies from the current
// results. Nothing is cached.
func (c *Controller) Summary() []notes.AnswerTally {
	c.mu.Lock()
	defer c.mu.Unlock()
	return notes.Summarize(c.state.Questions, c.state.Results)
}

// begin marks the controller busy for a network operation and records the
// initial progress message. It fails when another operation is in flight.
func (c *Controller) begin(stage Stage, operation, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Busy {
		return services.Wrap(services.ErrBusy, string(stage), operation, "another operation is already running", nil)
	}
	c.state.Busy = true
	c.state.ProgressMessage = message
	return nil
}

// fail clears the busy flag without advancing the stage.
func (c *Controller) fail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Busy = false
	c.state.ProgressMessage = ""
}

func (c *Controller) setProgressMessage(message string) {
	c.mu.Lock()
	c.state.ProgressMessage = message
	c.mu.Unlock()
}

func (c *Controller) emit(progress Progress) {
	c.mu.Lock()
	c.state.ProgressMessage = progress.Label
	fn := c.progress
	c.mu.Unlock()
	if fn != nil {
		fn(progress)
	}
}
