package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"quizmatch-service/internal/domain"
)

// AuthService owns registration, sign-in, token verification, and sign-out.
// Tokens are HS256 JWTs whose JTI must have a live entry in the session
// store, so sign-out actually revokes the token.
type AuthService struct {
	profiles ProfileStore
	sessions SessionStore
	secret   []byte
	tokenTTL time.Duration
	validate *validator.Validate
	now      func() time.Time
}

func NewAuthService(profiles ProfileStore, sessions SessionStore, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		profiles: profiles,
		sessions: sessions,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		validate: validator.New(),
		now:      time.Now,
	}
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Session pairs a signed token with the profile it belongs to.
type Session struct {
	Token   string         `json:"token"`
	Profile domain.Profile `json:"user"`
}

type tokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Register validates the input, creates a profile with score 0, and opens a
// session for the new user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (Session, error) {
	if err := s.validate.Struct(in); err != nil {
		return Session{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	profile := domain.Profile{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Score:     0,
		CreatedAt: s.now().UTC(),
	}
	if err := s.profiles.Create(ctx, profile, string(hash)); err != nil {
		return Session{}, err
	}
	return s.openSession(ctx, profile)
}

// SignIn verifies the password and opens a session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (Session, error) {
	userID, hash, err := s.profiles.Credentials(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return Session{}, domain.ErrInvalidCredentials
		}
		return Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return Session{}, domain.ErrInvalidCredentials
	}

	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	return s.openSession(ctx, profile)
}

// CurrentUser resolves a bearer token to its profile. Tokens with no live
// session entry (signed out or expired) yield domain.ErrNoSession.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (domain.Profile, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return domain.Profile{}, domain.ErrNoSession
	}

	userID, err := s.sessions.Lookup(ctx, claims.ID)
	if err != nil {
		return domain.Profile{}, err
	}
	if userID != claims.UserID {
		return domain.Profile{}, domain.ErrNoSession
	}
	return s.profiles.GetByID(ctx, userID)
}

// SignOut revokes the token's session. Revoking an already-dead session is
// not an error.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return domain.ErrNoSession
	}
	return s.sessions.Delete(ctx, claims.ID)
}

func (s *AuthService) openSession(ctx context.Context, profile domain.Profile) (Session, error) {
	now := s.now()
	claims := &tokenClaims{
		UserID: profile.ID,
		Email:  profile.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	if err := s.sessions.Save(ctx, claims.ID, profile.ID); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	return Session{Token: signed, Profile: profile}, nil
}

func (s *AuthService) parseToken(token string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrNoSession
	}
	return claims, nil
}
