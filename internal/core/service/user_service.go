package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/webshop-api/internal/core/domain"
	"github.com/sirpyerre/webshop-api/internal/core/ports"
	"github.com/sirpyerre/webshop-api/internal/pkg/validation"
	"github.com/sirpyerre/webshop-api/pkg/logger"
)

// UserService implements registration and admin user management.
type UserService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	validate *validation.Validator
	log      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, v *validation.Validator, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, validate: v, log: log}
}

// Register creates a customer account. An already registered email is
// rejected before any other validation.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := domain.NormalizeEmail(in.Email)
	if email != "" {
		_, err := s.repo.FindByEmail(ctx, email)
		switch {
		case err == nil:
			return nil, domain.ErrEmailInUse
		case !errors.Is(err, domain.ErrUserNotFound):
			return nil, fmt.Errorf("register: %w", err)
		}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	}
	if err := s.validate.Validate(user); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx, s.log).Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateRole changes another user's role. The submitted role is checked first,
// then the actor's privileges, then self-modification, then existence.
func (s *UserService) UpdateRole(ctx context.Context, actor *domain.User, id, role string) (*domain.User, error) {
	newRole, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if id == actor.ID {
		return nil, domain.ErrSelfUpdate
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateRole(ctx, id, newRole)
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx, s.log).Info().Str("user_id", id).Str("role", string(newRole)).Str("actor_id", actor.ID).Msg("user role updated")
	return updated, nil
}

// Delete removes another user and returns the removed record.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	if !actor.Role.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if id == actor.ID {
		return nil, domain.ErrSelfDelete
	}

	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	logger.Ctx(ctx, s.log).Info().Str("user_id", id).Str("actor_id", actor.ID).Msg("user deleted")
	return target, nil
}
