package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"notesift/internal/notes"
)

// BackendFixture configures the canned fake backend server.
type BackendFixture struct {
	// Notes returned by POST /notes/fetch.
	Notes []notes.CustomerNote
	// PMNames returned by GET /notes/pm-names.
	PMNames []string
	// RelevantIDs restricts which notes survive the relevance filter. Nil
	// keeps everything.
	RelevantIDs map[string]bool
	// Answer returned for every (note, question) pair. Zero value answers
	// "Yes" with a canned quote.
	Answer notes.QAAnswer
}

// NewBackendServer starts an httptest server speaking the notes backend
// contract and registers cleanup. Point a notesapi.Client at its URL.
func NewBackendServer(t testing.TB, fixture BackendFixture) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /notes/fetch", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, fixture.Notes)
	})
	mux.HandleFunc("GET /notes/pm-names", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, fixture.PMNames)
	})
	mux.HandleFunc("POST /notes/transform", func(w http.ResponseWriter, r *http.Request) {
		var batch []notes.CustomerNote
		decodeJSON(t, r, &batch)
		for i := range batch {
			batch[i].CleanedNoteContent = "cleaned " + batch[i].NoteID
		}
		writeJSON(t, w, batch)
	})
	mux.HandleFunc("POST /notes/filter-relevance", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Notes []notes.CustomerNote `json:"notes"`
		}
		decodeJSON(t, r, &req)
		kept := make([]notes.CustomerNote, 0, len(req.Notes))
		for _, note := range req.Notes {
			if fixture.RelevantIDs == nil || fixture.RelevantIDs[note.NoteID] {
				kept = append(kept, note)
			}
		}
		writeJSON(t, w, kept)
	})
	mux.HandleFunc("POST /notes/answer-questions", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Notes     []notes.CustomerNote `json:"notes"`
			Questions []string             `json:"questions"`
		}
		decodeJSON(t, r, &req)
		answer := fixture.Answer
		if answer.Answer == "" {
			answer = notes.QAAnswer{Answer: notes.AnswerYes, Evidence: []string{"canned quote"}}
		}
		results := make([]notes.QAResult, 0, len(req.Notes))
		for _, note := range req.Notes {
			answers := make([]notes.QAAnswer, 0, len(req.Questions))
			for range req.Questions {
				answers = append(answers, answer)
			}
			results = append(results, notes.QAResult{
				NoteID:             note.NoteID,
				CustomerName:       note.CustomerName,
				ProductManagerName: note.ProductManagerName,
				Date:               note.Date,
				Answers:            answers,
			})
		}
		writeJSON(t, w, results)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeJSON(t testing.TB, w http.ResponseWriter, value any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		t.Errorf("encode fake backend response: %v", err)
	}
}

func decodeJSON(t testing.TB, r *http.Request, target any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		t.Errorf("decode fake backend request: %v", err)
	}
}
