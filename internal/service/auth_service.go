package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/weight-tracker/internal/auth"
	"github.com/spec-kit/weight-tracker/internal/config"
	"github.com/spec-kit/weight-tracker/internal/domain"
	"github.com/spec-kit/weight-tracker/internal/repository"
	apperrors "github.com/spec-kit/weight-tracker/pkg/util"
)

// AuthService verifies credentials and issues access tokens.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) (*AuthService, error) {
	tokenMgr, err := auth.NewTokenManager(cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenTTL())
	if err != nil {
		return nil, err
	}
	return &AuthService{users: users, tokenMgr: tokenMgr}, nil
}

// Authenticate verifies an email/password pair against the stored
// credential. Unknown email and wrong password fail identically so the
// response never reveals which part was wrong.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized(auth.MsgInvalidCredentials)
		}
		return nil, err
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorized(auth.MsgInvalidCredentials)
	}
	return user, nil
}

// IssueToken creates a bearer token whose subject is the user's email.
func (s *AuthService) IssueToken(user *domain.User) (string, time.Time, error) {
	return s.tokenMgr.Issue(user.Email, 0)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
