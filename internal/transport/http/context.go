package http

import (
	"context"

	"quizmatch-service/internal/domain"
)

type contextKey int

const profileKey contextKey = iota

func withProfile(ctx context.Context, p domain.Profile) context.Context {
	return context.WithValue(ctx, profileKey, p)
}

func profileFrom(ctx context.Context) (domain.Profile, bool) {
	p, ok := ctx.Value(profileKey).(domain.Profile)
	return p, ok
}
