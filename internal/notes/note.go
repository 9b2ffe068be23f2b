package notes

import "strings"

// CustomerNote is a single customer interaction record as served by the
// backend. NoteContent holds the original HTML; CleanedNoteContent is empty
// until the transform endpoint populates it. Notes are never mutated after
// they are received.
type CustomerNote struct {
	CustomerName       string `json:"CustomerName"`
	ProductManagerName string `json:"ProductManagerName"`
	NoteID             string `json:"NoteID"`
	Date               string `json:"Date"`
	Subject            string `json:"Subject"`
	NoteContent        string `json:"NoteContent"`
	CleanedNoteContent string `json:"CleanedNoteContent"`
}

// DateRange bounds a fetch at calendar-month granularity (YYYY-MM).
type DateRange struct {
	StartMonth string `json:"startMonth"`
	EndMonth   string `json:"endMonth"`
}

// RelevanceQuery carries everything the fetch-and-filter pass needs. It is
// transient input; the workflow does not retain it past the operation.
type RelevanceQuery struct {
	Names              []string
	DateRange          DateRange
	ProjectDescription string
}

// Validate checks the query preconditions: at least one product-manager name,
// both months, and a project description. Values are only checked for
// non-emptiness; month formats are the backend's concern.
func (q RelevanceQuery) Validate() error {
	names := 0
	for _, name := range q.Names {
		if strings.TrimSpace(name) != "" {
			names++
		}
	}
	switch {
	case names == 0:
		return errMissingNames
	case strings.TrimSpace(q.DateRange.StartMonth) == "":
		return errMissingStartMonth
	case strings.TrimSpace(q.DateRange.EndMonth) == "":
		return errMissingEndMonth
	case strings.TrimSpace(q.ProjectDescription) == "":
		return errMissingProject
	}
	return nil
}

// IDs returns the note identifiers in input order.
func IDs(list []CustomerNote) []string {
	ids := make([]string, 0, len(list))
	for _, note := range list {
		ids = append(ids, note.NoteID)
	}
	return ids
}

// FindByID returns the first note with the given identifier.
func FindByID(list []CustomerNote, id string) (CustomerNote, bool) {
	for _, note := range list {
		if note.NoteID == id {
			return note, true
		}
	}
	return CustomerNote{}, false
}
