package memory

import (
	"context"
	"sort"
	"sync"

	"quizmatch-service/internal/domain"
)

// ProfileStore is an in-memory implementation of app.ProfileStore. It backs
// tests and the no-database development mode.
type ProfileStore struct {
	mu        sync.RWMutex
	profiles  map[string]domain.Profile
	passwords map[string]string // user id -> bcrypt hash
	byEmail   map[string]string // email -> user id
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles:  make(map[string]domain.Profile),
		passwords: make(map[string]string),
		byEmail:   make(map[string]string),
	}
}

func (s *ProfileStore) Create(_ context.Context, p domain.Profile, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[p.Email]; ok {
		return domain.ErrEmailTaken
	}
	s.profiles[p.ID] = p
	s.passwords[p.ID] = passwordHash
	s.byEmail[p.Email] = p.ID
	return nil
}

func (s *ProfileStore) GetByID(_ context.Context, id string) (domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	return p, nil
}

func (s *ProfileStore) Credentials(_ context.Context, email string) (string, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return "", "", domain.ErrProfileNotFound
	}
	return id, s.passwords[id], nil
}

func (s *ProfileStore) Update(_ context.Context, id string, patch domain.ProfilePatch) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	if patch.Email != nil && *patch.Email != p.Email {
		if _, taken := s.byEmail[*patch.Email]; taken {
			return domain.Profile{}, domain.ErrEmailTaken
		}
		delete(s.byEmail, p.Email)
		s.byEmail[*patch.Email] = id
		p.Email = *patch.Email
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Score != nil {
		p.Score = *patch.Score
	}
	s.profiles[id] = p
	return p, nil
}

func (s *ProfileStore) UpdateScore(_ context.Context, id string, score int) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	p.Score = score
	s.profiles[id] = p
	return p, nil
}

func (s *ProfileStore) ListOtherThan(_ context.Context, id string, limit int) ([]domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	others := make([]domain.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		if p.ID != id {
			others = append(others, p)
		}
	}
	// score desc, then created_at asc, then id asc; keeps candidate order
	// reproducible when scores tie.
	sort.Slice(others, func(i, j int) bool {
		if others[i].Score != others[j].Score {
			return others[i].Score > others[j].Score
		}
		if !others[i].CreatedAt.Equal(others[j].CreatedAt) {
			return others[i].CreatedAt.Before(others[j].CreatedAt)
		}
		return others[i].ID < others[j].ID
	})

	if limit > 0 && len(others) > limit {
		others = others[:limit]
	}
	return others, nil
}
