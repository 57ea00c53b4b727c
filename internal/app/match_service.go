package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	"quizmatch-service/internal/domain"
)

// MatchLimit caps how many candidates one quiz completion pairs a user with.
const MatchLimit = 5

// MatchService selects top-scoring candidates and manages match rows.
type MatchService struct {
	profiles ProfileStore
	matches  MatchStore
}

func NewMatchService(profiles ProfileStore, matches MatchStore) *MatchService {
	return &MatchService{profiles: profiles, matches: matches}
}

// CreateMatches queries up to MatchLimit other profiles ordered by score
// descending and inserts a pending match row for each. The inserts are
// issued as independent concurrent writes: a mid-batch failure leaves the
// already-written subset in place, reported via domain.PartialWriteError.
// Retakes are not deduplicated; a repeat completion may create duplicate
// rows for the same pair.
func (s *MatchService) CreateMatches(ctx context.Context, userID string) ([]domain.Profile, error) {
	candidates, err := s.profiles.ListOtherThan(ctx, userID, MatchLimit)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	errs := make([]error, len(candidates))
	var wg sync.WaitGroup
	for i, candidate := range candidates {
		wg.Add(1)
		go func(i int, matchedID string) {
			defer wg.Done()
			errs[i] = s.matches.Insert(ctx, userID, matchedID, domain.MatchPending)
		}(i, candidate.ID)
	}
	wg.Wait()

	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			log.Printf("match insert failed for %s -> %s: %v", userID, candidates[i].ID, err)
		}
	}
	if failed > 0 {
		return candidates, &domain.PartialWriteError{Failed: failed, Total: len(candidates)}
	}
	return candidates, nil
}

// PendingMatches lists the user's pending rows joined with the matched
// profiles.
func (s *MatchService) PendingMatches(ctx context.Context, userID string) ([]domain.PendingMatch, error) {
	return s.matches.ListPendingFor(ctx, userID)
}

// Connect flips the (userID, matchedUserID) row to connected. The update is
// unconditional, so re-connecting an already-connected row is a no-op rather
// than an error. The reverse pairing is left untouched.
func (s *MatchService) Connect(ctx context.Context, userID, matchedUserID string) error {
	return s.matches.UpdateStatus(ctx, userID, matchedUserID, domain.MatchConnected)
}
