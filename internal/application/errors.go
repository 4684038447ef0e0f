package application

import (
	"errors"
	"fmt"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrUserNotFound  = errors.New("user not found")

	// ErrInvalidState marks an action attempted against a match in the
	// wrong lifecycle state, e.g. predicting on a finalized match.
	ErrInvalidState = errors.New("invalid match state")
)

// RecalculationError reports a scoring pass that could not be persisted. The
// transaction is rolled back entirely, so no prediction keeps a half-applied
// score; the failure is surfaced instead of recording zero points.
type RecalculationError struct {
	MatchID int
	Err     error
}

func (e *RecalculationError) Error() string {
	return fmt.Sprintf("recalculation failed for match %d: %v", e.MatchID, e.Err)
}

func (e *RecalculationError) Unwrap() error {
	return e.Err
}
