package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/webshop-api/internal/core/domain"
	"github.com/sirpyerre/webshop-api/internal/core/ports"
	"github.com/sirpyerre/webshop-api/pkg/logger"
)

// AuthService resolves Basic credentials against the user store.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, log: log}
}

// Authenticate returns the user owning email when password matches its hash.
// Unknown emails and wrong passwords both yield domain.ErrInvalidCredentials;
// only store failures surface as other errors.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Matches(user.PasswordHash, password) {
		logger.Ctx(ctx, s.log).Debug().Str("user_id", user.ID).Msg("password mismatch")
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
