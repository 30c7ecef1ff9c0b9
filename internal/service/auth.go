// Package service contains application services for authentication, projects,
// tasks and reports.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/rfreitas/task-tracker/internal/crypto"
	"github.com/rfreitas/task-tracker/internal/errs"
	"github.com/rfreitas/task-tracker/internal/limiter"
	"github.com/rfreitas/task-tracker/internal/model"
	"github.com/rfreitas/task-tracker/internal/repository"
	"github.com/rfreitas/task-tracker/internal/token"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt input limit
)

// AuthService defines registration, authentication and identity resolution.
type AuthService interface {
	// Register creates a new user with secure password hashing.
	Register(ctx context.Context, email, password, confirm string, agreeTerms bool) error
	// LoginWithIP applies rate limiting and authenticates the user, returning
	// a signed token. Never touches the resolve cache.
	LoginWithIP(ctx context.Context, email, password, ip string) (string, error)
	// Resolve turns a raw token string into a trusted identity, using the
	// cache when fresh and falling back to verify + user lookup.
	Resolve(ctx context.Context, tokenString string) (model.Identity, error)
	// ClearFirstAccess marks the user as no longer on their first access.
	ClearFirstAccess(ctx context.Context, userID uuid.UUID) error
}

type AuthServiceImpl struct {
	users repository.UserRepository
	codec *token.Codec
	cache *token.Cache
	lim   limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, codec *token.Codec, cache *token.Cache, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, codec: codec, cache: cache, lim: lim}
}

// Register validates registration input and creates the user record.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, confirm string, agreeTerms bool) error {
	if email == "" {
		return fmt.Errorf("%w: empty email", errs.ErrValidation)
	}
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return fmt.Errorf("%w: password length", errs.ErrValidation)
	}
	if !agreeTerms {
		return fmt.Errorf("%w: terms not accepted", errs.ErrValidation)
	}
	if password != confirm {
		return errs.ErrPasswordMismatch
	}

	uid, err := uuid.NewV4()
	if err != nil {
		return err
	}
	hash, err := pkgcrypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:          uid,
		Email:       email,
		PwdHash:     hash,
		FirstAccess: true,
	}
	return s.users.Create(ctx, u)
}

// LoginWithIP authenticates with rate limiting by (email, ip).
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, email, password, ip string) (string, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.VerifyPassword(password, u.PwdHash) {
		// Record failure; if threshold reached, surface the lockout.
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return "", errs.ErrRateLimited
		}
		// Wrong email and wrong password are indistinguishable to the caller.
		return "", errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	signed, _, err := s.codec.Sign(u.ID, u.Email)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Resolve implements the two-tier lookup: short-lived cache over a long-lived
// signed token. A cache hit skips both verification and the user lookup; a
// failed verification never populates the cache.
func (s *AuthServiceImpl) Resolve(ctx context.Context, tokenString string) (model.Identity, error) {
	if id, ok := s.cache.Get(tokenString); ok {
		return id, nil
	}

	claims, err := s.codec.Verify(tokenString)
	if err != nil {
		return model.Identity{}, errs.ErrUnauthorized
	}

	// The payload is not trusted beyond the id lookup: the user must still exist.
	u, err := s.users.GetByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Identity{}, errs.ErrUnauthorized
		}
		return model.Identity{}, err
	}

	id := model.Identity{
		UserID:    u.ID,
		Email:     u.Email,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	s.cache.Add(tokenString, id)
	return id, nil
}

// ClearFirstAccess flips the first_access flag; the only user mutation after
// registration.
func (s *AuthServiceImpl) ClearFirstAccess(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	return s.users.ClearFirstAccess(ctx, userID)
}
