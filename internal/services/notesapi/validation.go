package notesapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValidationIssue is one entry of the backend's 422 detail array. Loc holds a
// mix of path segments and indices, so entries stay untyped.
type ValidationIssue struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// ValidationError carries the decoded 422 response body.
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		loc := make([]string, 0, len(issue.Loc))
		for _, seg := range issue.Loc {
			loc = append(loc, fmt.Sprint(seg))
		}
		if len(loc) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(loc, "."), issue.Msg))
		} else {
			parts = append(parts, issue.Msg)
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func decodeValidationError(payload []byte) error {
	var body struct {
		Detail []ValidationIssue `json:"detail"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return fmt.Errorf("http 422: %s", strings.TrimSpace(string(payload)))
	}
	return &ValidationError{Issues: body.Detail}
}
