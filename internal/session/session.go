package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"notesift/internal/notes"
	"notesift/internal/workflow"
)

// Session is one persisted research run: the query that started it plus the
// full workflow state.
type Session struct {
	ID        string
	Query     notes.RelevanceQuery
	State     workflow.State
	CreatedAt time.Time
	UpdatedAt time.Time
}

const sessionColumns = "id, stage, query_json, raw_notes_json, filtered_notes_json, selected_ids_json, questions_json, results_json, progress_message, created_at, updated_at"

// Create inserts a fresh session at the input stage and returns it.
func (s *Store) Create(ctx context.Context) (*Session, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	id := uuid.NewString()

	if _, err := s.execWithRetry(
		ctx,
		`INSERT INTO sessions (id, stage, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id,
		string(workflow.StageInput),
		timestamp,
		timestamp,
	); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	return s.Get(ctx, id)
}

// Get fetches a session by identifier. Returns nil when no row matches.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// Current returns the most recently updated session, or nil when none exist.
func (s *Store) Current(ctx context.Context) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions ORDER BY updated_at DESC, id LIMIT 1`)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("current session: %w", err)
	}
	return sess, nil
}

// List returns all sessions ordered newest first.
func (s *Store) List(ctx context.Context) ([]*Session, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM sessions ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Save persists the session's query and workflow state.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	if sess == nil {
		return errors.New("session is nil")
	}
	sess.UpdatedAt = time.Now().UTC()

	queryJSON, err := marshalNullable(sess.Query, len(sess.Query.Names) > 0 || sess.Query.ProjectDescription != "")
	if err != nil {
		return fmt.Errorf("marshal query: %w", err)
	}
	rawJSON, err := marshalNullable(sess.State.RawNotes, len(sess.State.RawNotes) > 0)
	if err != nil {
		return fmt.Errorf("marshal raw notes: %w", err)
	}
	filteredJSON, err := marshalNullable(sess.State.FilteredNotes, len(sess.State.FilteredNotes) > 0)
	if err != nil {
		return fmt.Errorf("marshal filtered notes: %w", err)
	}
	selectedJSON, err := marshalNullable(sess.State.SelectedIDs, len(sess.State.SelectedIDs) > 0)
	if err != nil {
		return fmt.Errorf("marshal selected ids: %w", err)
	}
	questionsJSON, err := marshalNullable(sess.State.Questions, len(sess.State.Questions) > 0)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	resultsJSON, err := marshalNullable(sess.State.Results, len(sess.State.Results) > 0)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if _, err := s.execWithRetry(
		ctx,
		`UPDATE sessions
         SET stage = ?, query_json = ?, raw_notes_json = ?, filtered_notes_json = ?,
             selected_ids_json = ?, questions_json = ?, results_json = ?,
             progress_message = ?, updated_at = ?
         WHERE id = ?`,
		string(sess.State.Stage),
		queryJSON,
		rawJSON,
		filteredJSON,
		selectedJSON,
		questionsJSON,
		resultsJSON,
		nullableString(sess.State.ProgressMessage),
		sess.UpdatedAt.Format(time.RFC3339Nano),
		sess.ID,
	); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// Reset returns a session to the input stage and clears transient progress
// state. Collected notes, questions, and results are kept so the user can
// navigate forward again without refetching.
func (s *Store) Reset(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.execWithRetry(
		ctx,
		`UPDATE sessions SET stage = ?, progress_message = NULL, updated_at = ? WHERE id = ?`,
		string(workflow.StageInput),
		now,
		id,
	); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	return nil
}

// Remove deletes a session by identifier.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Clear removes all sessions.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM sessions`)
	if err != nil {
		return 0, fmt.Errorf("clear sessions: %w", err)
	}
	return res.RowsAffected()
}

func scanSession(scanner interface{ Scan(dest ...any) error }) (*Session, error) {
	var (
		id              string
		stageStr        string
		queryRaw        sql.NullString
		rawNotesRaw     sql.NullString
		filteredRaw     sql.NullString
		selectedRaw     sql.NullString
		questionsRaw    sql.NullString
		resultsRaw      sql.NullString
		progressMessage sql.NullString
		createdRaw      sql.NullString
		updatedRaw      sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&stageStr,
		&queryRaw,
		&rawNotesRaw,
		&filteredRaw,
		&selectedRaw,
		&questionsRaw,
		&resultsRaw,
		&progressMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	sess := &Session{ID: id, State: workflow.NewState()}
	sess.State.Stage = workflow.Stage(stageStr)
	sess.State.ProgressMessage = progressMessage.String

	if err := unmarshalNullable(queryRaw, &sess.Query); err != nil {
		return nil, fmt.Errorf("decode query: %w", err)
	}
	if err := unmarshalNullable(rawNotesRaw, &sess.State.RawNotes); err != nil {
		return nil, fmt.Errorf("decode raw notes: %w", err)
	}
	if err := unmarshalNullable(filteredRaw, &sess.State.FilteredNotes); err != nil {
		return nil, fmt.Errorf("decode filtered notes: %w", err)
	}
	if err := unmarshalNullable(selectedRaw, &sess.State.SelectedIDs); err != nil {
		return nil, fmt.Errorf("decode selected ids: %w", err)
	}
	if err := unmarshalNullable(questionsRaw, &sess.State.Questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if err := unmarshalNullable(resultsRaw, &sess.State.Results); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		sess.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		sess.UpdatedAt = updated
	}
	return sess, nil
}

func marshalNullable(value any, present bool) (any, error) {
	if !present {
		return nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func unmarshalNullable(raw sql.NullString, target any) error {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw.String), target)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
