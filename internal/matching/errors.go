package matching

import (
	"errors"
	"fmt"
)

// ErrNilRecord is a contract violation: both sides of a match are mandatory.
var ErrNilRecord = errors.New("profile and target are required")

// ErrorKind classifies recoverable per-pair scoring failures.
type ErrorKind string

const KindMalformedExperience ErrorKind = "malformed_experience"

// ScoreError reports why a candidate/target pair could not be scored.
// Batch callers skip the pair and continue.
type ScoreError struct {
	Kind        ErrorKind
	CandidateID string
	TargetID    string
	Message     string
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("cannot score candidate %q against target %q: %s: %s",
		e.CandidateID, e.TargetID, e.Kind, e.Message)
}

// IsScoreError reports whether err is a recoverable per-pair failure.
func IsScoreError(err error) bool {
	var se *ScoreError
	return errors.As(err, &se)
}
