package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizmatch-service/internal/domain"
)

const uniqueViolation = "23505"

// ProfileStore persists user profiles and credentials in the users table.
type ProfileStore struct {
	pool *pgxpool.Pool
}

func NewProfileStore(pool *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{pool: pool}
}

func (s *ProfileStore) Create(ctx context.Context, p domain.Profile, passwordHash string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, score, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Email, passwordHash, p.Score, p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *ProfileStore) GetByID(ctx context.Context, id string) (domain.Profile, error) {
	var p domain.Profile
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, score, created_at FROM users WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Email, &p.Score, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) Credentials(ctx context.Context, email string) (string, string, error) {
	var id, hash string
	err := s.pool.QueryRow(ctx,
		`SELECT id, password_hash FROM users WHERE email = $1`, email).
		Scan(&id, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", domain.ErrProfileNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("get credentials: %w", err)
	}
	return id, hash, nil
}

func (s *ProfileStore) Update(ctx context.Context, id string, patch domain.ProfilePatch) (domain.Profile, error) {
	var p domain.Profile
	err := s.pool.QueryRow(ctx,
		`UPDATE users
		 SET name  = COALESCE($2, name),
		     email = COALESCE($3, email),
		     score = COALESCE($4, score)
		 WHERE id = $1
		 RETURNING id, name, email, score, created_at`,
		id, patch.Name, patch.Email, patch.Score).
		Scan(&p.ID, &p.Name, &p.Email, &p.Score, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Profile{}, domain.ErrEmailTaken
		}
		return domain.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) UpdateScore(ctx context.Context, id string, score int) (domain.Profile, error) {
	var p domain.Profile
	// full overwrite of the previous score, no accumulation
	err := s.pool.QueryRow(ctx,
		`UPDATE users SET score = $2 WHERE id = $1
		 RETURNING id, name, email, score, created_at`,
		id, score).
		Scan(&p.ID, &p.Name, &p.Email, &p.Score, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("update score: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) ListOtherThan(ctx context.Context, id string, limit int) ([]domain.Profile, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, score, created_at FROM users
		 WHERE id <> $1
		 ORDER BY score DESC, created_at ASC, id ASC
		 LIMIT $2`,
		id, limit)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Score, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
