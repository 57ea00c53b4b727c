package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"quizmatch-service/internal/domain"
)

// MatchStore persists directional match rows in the matches table.
type MatchStore struct {
	pool *pgxpool.Pool
}

func NewMatchStore(pool *pgxpool.Pool) *MatchStore {
	return &MatchStore{pool: pool}
}

func (s *MatchStore) Insert(ctx context.Context, userID, matchedUserID string, status domain.MatchStatus) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO matches (user_id, matched_user_id, status) VALUES ($1, $2, $3)`,
		userID, matchedUserID, string(status))
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (s *MatchStore) ListPendingFor(ctx context.Context, userID string) ([]domain.PendingMatch, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT u.id, u.name, u.email, u.score, u.created_at, m.created_at
		 FROM matches m
		 JOIN users u ON u.id = m.matched_user_id
		 WHERE m.user_id = $1 AND m.status = $2
		 ORDER BY m.created_at ASC`,
		userID, string(domain.MatchPending))
	if err != nil {
		return nil, fmt.Errorf("list pending matches: %w", err)
	}
	defer rows.Close()

	var pending []domain.PendingMatch
	for rows.Next() {
		var pm domain.PendingMatch
		if err := rows.Scan(
			&pm.MatchedUser.ID, &pm.MatchedUser.Name, &pm.MatchedUser.Email,
			&pm.MatchedUser.Score, &pm.MatchedUser.CreatedAt, &pm.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		pending = append(pending, pm)
	}
	return pending, rows.Err()
}

func (s *MatchStore) UpdateStatus(ctx context.Context, userID, matchedUserID string, status domain.MatchStatus) error {
	// unconditional write: already-connected rows are updated to the same
	// value, making a repeated connect a no-op instead of an error
	tag, err := s.pool.Exec(ctx,
		`UPDATE matches SET status = $3 WHERE user_id = $1 AND matched_user_id = $2`,
		userID, matchedUserID, string(status))
	if err != nil {
		return fmt.Errorf("update match status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}
