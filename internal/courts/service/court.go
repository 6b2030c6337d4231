package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	courtserrors "eliteclub/internal/courts/errors"
	"eliteclub/internal/courts/repository"
	"eliteclub/pkg/config"
	apperrors "eliteclub/pkg/errors"
	"eliteclub/pkg/model"
	"eliteclub/pkg/sanitizer"
)

type CourtService interface {
	Create(ctx context.Context, court *model.Court) error
	List(ctx context.Context) ([]*model.Court, error)
	Update(ctx context.Context, id string, court *model.Court) error
	Delete(ctx context.Context, id string) error
}

type courtService struct {
	repo     repository.CourtRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewCourtService(repo repository.CourtRepository, cfg *config.Config) CourtService {
	return &courtService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *courtService) Create(ctx context.Context, court *model.Court) error {
	court.Name = sanitizer.NormalizeName(court.Name)
	court.Type = sanitizer.TrimAndNormalize(court.Type)

	if err := s.validate.Struct(court); err != nil {
		s.cfg.Log.Warn("Court validation failed", "error", err)
		return apperrors.Validation("Court validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, court); err != nil {
		s.cfg.Log.Error("Failed to create court", "name", court.Name, "error", err)
		return apperrors.Internal("Failed to create court", err)
	}

	s.cfg.Log.Info("Court created", "id", court.ID, "name", court.Name)
	return nil
}

func (s *courtService) List(ctx context.Context) ([]*model.Court, error) {
	courts, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list courts", "error", err)
		return nil, apperrors.Internal("Failed to fetch courts", err)
	}
	return courts, nil
}

func (s *courtService) Update(ctx context.Context, id string, court *model.Court) error {
	if id == "" {
		return apperrors.InvalidInput("Court ID cannot be empty")
	}
	court.Name = sanitizer.NormalizeName(court.Name)

	if err := s.repo.Update(ctx, id, court); err != nil {
		return s.translate(err, id, "update")
	}
	s.cfg.Log.Info("Court updated", "id", id)
	return nil
}

func (s *courtService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Court ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translate(err, id, "delete")
	}
	s.cfg.Log.Info("Court deleted", "id", id)
	return nil
}

func (s *courtService) translate(err error, id, op string) error {
	if errors.Is(err, courtserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Court", id)
	}
	if errors.Is(err, courtserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid court ID format")
	}
	s.cfg.Log.Error("Failed to "+op+" court", "id", id, "error", err)
	return apperrors.Internal("Failed to "+op+" court", err)
}
