package workflow

import "notesift/internal/notes"

// State is the working data set of one wizard session. Exactly one instance
// exists per session; the Controller is its sole mutator.
type State struct {
	Stage           Stage
	RawNotes        []notes.CustomerNote
	FilteredNotes   []notes.CustomerNote
	SelectedIDs     []string
	Questions       []string
	Results         []notes.QAResult
	ProgressMessage string
	Busy            bool
}

// NewState returns an empty session state positioned at the input stage.
func NewState() State {
	return State{Stage: StageInput}
}

// CanAdvance reports whether the target stage is reachable. Backward and
// same-stage moves are always allowed; each forward target requires its
// prerequisite data. The review guard checks that a fetch ran and returned
// notes, not that any survived filtering.
func (s State) CanAdvance(target Stage) bool {
	targetIdx := target.Index()
	if targetIdx < 0 {
		return false
	}
	if targetIdx <= s.Stage.Index() {
		return true
	}
	switch target {
	case StageReview:
		return len(s.RawNotes) > 0
	case StageQuestions:
		return len(s.SelectedIDs) > 0
	case StageResults:
		return len(s.Results) > 0
	default:
		return false
	}
}

// IsSelected reports whether the note id is currently part of the selection.
func (s State) IsSelected(id string) bool {
	for _, selected := range s.SelectedIDs {
		if selected == id {
			return true
		}
	}
	return false
}

// SelectedNotes returns the selected subset of FilteredNotes in the filtered
// notes' original relative order, which keeps selection stable no matter the
// order ids were toggled in.
func (s State) SelectedNotes() []notes.CustomerNote {
	if len(s.SelectedIDs) == 0 {
		return nil
	}
	selected := make([]notes.CustomerNote, 0, len(s.SelectedIDs))
	for _, note := range s.FilteredNotes {
		if s.IsSelected(note.NoteID) {
			selected = append(selected, note)
		}
	}
	return selected
}

// Clone returns a deep enough copy for callers to inspect without aliasing
// the controller-owned slices.
func (s State) Clone() State {
	cp := s
	cp.RawNotes = append([]notes.CustomerNote(nil), s.RawNotes...)
	cp.FilteredNotes = append([]notes.CustomerNote(nil), s.FilteredNotes...)
	cp.SelectedIDs = append([]string(nil), s.SelectedIDs...)
	cp.Questions = append([]string(nil), s.Questions...)
	cp.Results = append([]notes.QAResult(nil), s.Results...)
	return cp
}
