package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	userserrors "eliteclub/internal/users/errors"
	"eliteclub/internal/users/repository"
	"eliteclub/pkg/config"
	apperrors "eliteclub/pkg/errors"
	"eliteclub/pkg/model"
	"eliteclub/pkg/sanitizer"
)

// RegistrationResult discriminates between the two legal outcomes of a
// sign-in registration: a fresh user or a no-op for a known email.
type RegistrationResult struct {
	User    *model.User
	Created bool
}

type UserService interface {
	Register(ctx context.Context, user *model.User) (*RegistrationResult, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ListAll(ctx context.Context, limit int, offset int64) ([]*model.User, error)
	ListMembers(ctx context.Context) ([]*model.User, error)
}

type userService struct {
	repo     repository.UserRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewUserService(repo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// Register is create-if-absent: a second sign-in with a known email is a
// no-op, not an error.
func (s *userService) Register(ctx context.Context, user *model.User) (*RegistrationResult, error) {
	user.Email = sanitizer.NormalizeEmail(user.Email)
	user.Name = sanitizer.NormalizeName(user.Name)
	if user.Role == "" {
		user.Role = model.RoleUser
	}

	if err := s.validate.Struct(user); err != nil {
		s.cfg.Log.Warn("User validation failed", "error", err)
		return nil, apperrors.Validation("User validation failed", map[string]any{"error": err.Error()})
	}

	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err == nil {
		return &RegistrationResult{User: existing, Created: false}, nil
	}
	if !errors.Is(err, userserrors.ErrNotFound) {
		s.cfg.Log.Error("Failed to check user existence", "email", user.Email, "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateEmail) {
			// Lost the race against a concurrent registration; the
			// outcome is the same no-op.
			existing, findErr := s.repo.FindByEmail(ctx, user.Email)
			if findErr != nil {
				return nil, apperrors.Internal("Failed to create user", findErr)
			}
			return &RegistrationResult{User: existing, Created: false}, nil
		}
		s.cfg.Log.Error("Failed to create user", "email", user.Email, "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User registered", "id", user.ID, "email", user.Email)
	return &RegistrationResult{User: user, Created: true}, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.InvalidInput("Email query parameter is required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		s.cfg.Log.Error("Failed to fetch user by email", "email", email, "error", err)
		return nil, apperrors.Internal("Failed to fetch user", err)
	}
	return user, nil
}

func (s *userService) ListAll(ctx context.Context, limit int, offset int64) ([]*model.User, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	users, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to fetch users", err)
	}
	return users, nil
}

func (s *userService) ListMembers(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindByRole(ctx, model.RoleMember)
	if err != nil {
		s.cfg.Log.Error("Failed to list members", "error", err)
		return nil, apperrors.Internal("Failed to fetch members", err)
	}
	return users, nil
}
