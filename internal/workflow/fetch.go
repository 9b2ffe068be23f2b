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
	"notesift/internal/services/notesapi"
)

// FetchAndFilter runs the input-stage pipeline: fetch notes for the query,
// clean their HTML in one batch call, then keep the notes the backend judges
// relevant to the project description. On success every filtered note is
// selected and the session advances to the review stage.
//
// Fetch and transform failures are batch-fatal: the operation aborts and the
// stage is unchanged. A failed or empty relevance check drops only that note
// and never aborts the pass. The returned bool is false when the fetch
// completed but found nothing, which is not an error.
func (c *Controller) FetchAndFilter(ctx context.Context, query notes.RelevanceQuery) (bool, error) {
	if err := c.begin(StageInput, "fetch", "Fetching notes..."); err != nil {
		return false, err
	}

	requestID := uuid.NewString()
	ctx = services.WithRequestID(ctx, requestID)
	logger := c.logger.With(
		logging.String("operation", "fetch_and_filter"),
		logging.String("request_id", requestID),
	)
	logger.Info("fetching notes",
		logging.Int("names", len(query.Names)),
		logging.String("start_month", query.DateRange.StartMonth),
		logging.String("end_month", query.DateRange.EndMonth))

	fetched, err := c.backend.FetchNotes(ctx, notesapi.FetchRequest{
		Names:              query.Names,
		DateRange:          query.DateRange,
		ProjectDescription: query.ProjectDescription,
	})
	if err != nil {
		c.fail()
		logger.Error("note fetch failed", logging.Error(err))
		return false, services.Wrap(services.ErrBackend, string(StageInput), "fetch notes", "", err)
	}

	c.mu.Lock()
	c.state.RawNotes = fetched
	c.mu.Unlock()

	if len(fetched) == 0 {
		c.fail()
		logger.Info("no notes found for query")
		return false, nil
	}

	c.setProgressMessage("Cleaning note content...")
	cleaned, err := c.backend.TransformNotes(ctx, fetched)
	if err != nil {
		c.fail()
		logger.Error("note transform failed", logging.Error(err))
		return false, services.Wrap(services.ErrBackend, string(StageInput), "transform notes", "", err)
	}
	c.mu.Lock()
	c.state.RawNotes = cleaned
	c.mu.Unlock()

	kept, err := c.filterRelevance(ctx, logger, cleaned, query.ProjectDescription)
	if err != nil {
		c.fail()
		return false, err
	}

	c.mu.Lock()
	c.state.FilteredNotes = kept
	c.state.SelectedIDs = notes.IDs(kept)
	c.state.Stage = StageReview
	c.state.Busy = false
	c.state.ProgressMessage = ""
	c.mu.Unlock()

	logger.Info("fetch and filter complete",
		logging.Int("fetched", len(cleaned)),
		logging.Int("kept", len(kept)))
	return true, nil
}

// filterRelevance runs the per-note relevance pass. Each note goes to the
// backend as a singleton batch; an empty result or a failed call drops the
// note and the pass continues. Output preserves input order even when the
// pass runs on the worker pool.
func (c *Controller) filterRelevance(ctx context.Context, logger *slog.Logger, batch []notes.CustomerNote, projectDescription string) ([]notes.CustomerNote, error) {
	total := len(batch)
	decisions := make([]bool, total)

	check := func(i int) {
		singleton, err := c.backend.FilterRelevance(ctx, batch[i:i+1], projectDescription)
		if err != nil {
			logger.Warn("relevance check failed, dropping note",
				logging.String("note_id", batch[i].NoteID),
				logging.Error(err))
			return
		}
		decisions[i] = len(singleton) > 0
	}

	if c.workers > 1 {
		var mu sync.Mutex
		completed := 0
		p := pool.New().WithMaxGoroutines(c.workers)
		for i := range batch {
			p.Go(func() {
				if ctx.Err() != nil {
					return
				}
				check(i)
				mu.Lock()
				completed++
				done := completed
				mu.Unlock()
				c.emit(Progress{Completed: done, Total: total, Label: fmt.Sprintf("Processed note %d of %d", done, total)})
			})
		}
		p.Wait()
		if err := ctx.Err(); err != nil {
			return nil, services.Wrap(services.ErrTransient, string(StageInput), "relevance filter", "canceled", err)
		}
	} else {
		for i := range batch {
			if err := ctx.Err(); err != nil {
				return nil, services.Wrap(services.ErrTransient, string(StageInput), "relevance filter", "canceled", err)
			}
			c.emit(Progress{Completed: i, Total: total, Label: fmt.Sprintf("Processing note %d of %d", i+1, total)})
			check(i)
		}
		c.emit(Progress{Completed: total, Total: total, Label: "Relevance filtering complete"})
	}

	kept := make([]notes.CustomerNote, 0, total)
	for i, keep := range decisions {
		if keep {
			kept = append(kept, batch[i])
		}
	}
	return kept, nil
}
