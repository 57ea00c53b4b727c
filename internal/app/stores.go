package app

import (
	"context"

	"quizmatch-service/internal/domain"
)

// ProfileStore abstracts the durable per-user record (Postgres in production,
// in-memory in tests).
type ProfileStore interface {
	// Create inserts a profile with its credential hash. Returns
	// domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, p domain.Profile, passwordHash string) error
	GetByID(ctx context.Context, id string) (domain.Profile, error)
	// Credentials resolves an email to (user id, password hash) for sign-in.
	Credentials(ctx context.Context, email string) (string, string, error)
	// Update overwrites only the fields present in the patch and returns the
	// updated profile.
	Update(ctx context.Context, id string, patch domain.ProfilePatch) (domain.Profile, error)
	// UpdateScore overwrites the score with the attempt's final tally.
	UpdateScore(ctx context.Context, id string, score int) (domain.Profile, error)
	// ListOtherThan returns up to limit profiles excluding id, ordered by
	// score descending with a deterministic tie-break (created_at, then id).
	ListOtherThan(ctx context.Context, id string, limit int) ([]domain.Profile, error)
}

// MatchStore abstracts durable match rows.
type MatchStore interface {
	Insert(ctx context.Context, userID, matchedUserID string, status domain.MatchStatus) error
	ListPendingFor(ctx context.Context, userID string) ([]domain.PendingMatch, error)
	// UpdateStatus unconditionally sets the status of the
	// (userID, matchedUserID) row; domain.ErrMatchNotFound when absent.
	UpdateStatus(ctx context.Context, userID, matchedUserID string, status domain.MatchStatus) error
}

// QuestionRepository loads question sets (from cache/backing store).
type QuestionRepository interface {
	GetQuestionSet(ctx context.Context, setID string) (domain.QuestionSet, error)
}

// SessionStore tracks live auth sessions by token id.
type SessionStore interface {
	Save(ctx context.Context, tokenID, userID string) error
	// Lookup returns the user id for a token, or domain.ErrNoSession.
	Lookup(ctx context.Context, tokenID string) (string, error)
	Delete(ctx context.Context, tokenID string) error
}

// AttemptStore holds in-flight quiz attempts. Attempts are ephemeral: no
// implementation persists them across restarts.
type AttemptStore interface {
	Put(userID string, a *Attempt)
	Get(userID string) (*Attempt, bool)
	Delete(userID string)
}
