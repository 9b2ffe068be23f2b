package workflow

import "strings"

// Stage identifies one step of the wizard.
type Stage string

const (
	StageInput     Stage = "input"
	StageReview    Stage = "review"
	StageQuestions Stage = "questions"
	StageResults   Stage = "results"
)

var stageOrder = []Stage{StageInput, StageReview, StageQuestions, StageResults}

var stageIndexes = func() map[Stage]int {
	indexes := make(map[Stage]int, len(stageOrder))
	for i, stage := range stageOrder {
		indexes[stage] = i
	}
	return indexes
}()

// AllStages returns the ordered stage list.
func AllStages() []Stage {
	cp := make([]Stage, len(stageOrder))
	copy(cp, stageOrder)
	return cp
}

// ParseStage converts a string into a known Stage.
func ParseStage(value string) (Stage, bool) {
	normalized := Stage(strings.ToLower(strings.TrimSpace(value)))
	_, ok := stageIndexes[normalized]
	return normalized, ok
}

// Index returns the stage's position on the linear path, or -1 for unknown
// stages.
func (s Stage) Index() int {
	if i, ok := stageIndexes[s]; ok {
		return i
	}
	return -1
}

// Label returns the stage name for display.
func (s Stage) Label() string {
	switch s {
	case StageInput:
		return "Input"
	case StageReview:
		return "Review"
	case StageQuestions:
		return "Questions"
	case StageResults:
		return "Results"
	default:
		return string(s)
	}
}
