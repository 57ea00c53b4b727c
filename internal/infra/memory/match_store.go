package memory

import (
	"context"
	"sync"
	"time"

	"quizmatch-service/internal/domain"
)

// MatchStore is an in-memory implementation of app.MatchStore. Rows are
// append-only except for status updates, matching the durable schema.
type MatchStore struct {
	profiles *ProfileStore
	clock    func() time.Time

	mu   sync.RWMutex
	rows []domain.Match
}

func NewMatchStore(profiles *ProfileStore) *MatchStore {
	return &MatchStore{profiles: profiles, clock: time.Now}
}

func (s *MatchStore) Insert(_ context.Context, userID, matchedUserID string, status domain.MatchStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, domain.Match{
		UserID:        userID,
		MatchedUserID: matchedUserID,
		Status:        status,
		CreatedAt:     s.clock(),
	})
	return nil
}

func (s *MatchStore) ListPendingFor(ctx context.Context, userID string) ([]domain.PendingMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pending := make([]domain.PendingMatch, 0)
	for _, row := range s.rows {
		if row.UserID != userID || row.Status != domain.MatchPending {
			continue
		}
		matched, err := s.profiles.GetByID(ctx, row.MatchedUserID)
		if err != nil {
			continue
		}
		pending = append(pending, domain.PendingMatch{MatchedUser: matched, CreatedAt: row.CreatedAt})
	}
	return pending, nil
}

func (s *MatchStore) UpdateStatus(_ context.Context, userID, matchedUserID string, status domain.MatchStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.rows {
		if s.rows[i].UserID == userID && s.rows[i].MatchedUserID == matchedUserID {
			s.rows[i].Status = status
			found = true
		}
	}
	if !found {
		return domain.ErrMatchNotFound
	}
	return nil
}

// Rows returns a copy of every match row, for tests.
func (s *MatchStore) Rows() []domain.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Match, len(s.rows))
	copy(out, s.rows)
	return out
}
