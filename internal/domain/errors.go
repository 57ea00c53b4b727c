package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProfileNotFound is returned when no profile exists for an id.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrMatchNotFound is returned when a connect targets a missing match row.
	ErrMatchNotFound = errors.New("match not found")
	// ErrEmailTaken is returned when a registration reuses an email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on a failed sign-in.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNoSession is returned when a request carries no live session.
	ErrNoSession = errors.New("no active session")
	// ErrAttemptNotFound is returned when a user acts on a quiz attempt they
	// never started (or that was lost to a restart; attempts are ephemeral).
	ErrAttemptNotFound = errors.New("quiz attempt not found")
	// ErrAttemptComplete is returned when an answer arrives after the final
	// transition.
	ErrAttemptComplete = errors.New("quiz attempt already complete")
	// ErrQuestionsNotFound indicates the question set could not be loaded.
	ErrQuestionsNotFound = errors.New("question set not found")
)

// PartialWriteError reports that some, but not all, of a batch of match rows
// were created. Match creation is a fan-out of independent writes with no
// all-or-nothing guarantee.
type PartialWriteError struct {
	Failed int
	Total  int
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("created %d of %d match rows", e.Total-e.Failed, e.Total)
}
