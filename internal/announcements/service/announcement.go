package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	announcementserrors "eliteclub/internal/announcements/errors"
	"eliteclub/internal/announcements/repository"
	"eliteclub/pkg/config"
	apperrors "eliteclub/pkg/errors"
	"eliteclub/pkg/events"
	"eliteclub/pkg/model"
	"eliteclub/pkg/sanitizer"
)

type AnnouncementService interface {
	Publish(ctx context.Context, announcement *model.Announcement) error
	List(ctx context.Context) ([]*model.Announcement, error)
	Update(ctx context.Context, id string, announcement *model.Announcement) error
	Delete(ctx context.Context, id string) error
}

type announcementService struct {
	repo      repository.AnnouncementRepository
	validate  *validator.Validate
	publisher events.Publisher
	cfg       *config.Config
}

func NewAnnouncementService(repo repository.AnnouncementRepository, publisher events.Publisher, cfg *config.Config) AnnouncementService {
	return &announcementService{
		repo:      repo,
		validate:  validator.New(),
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *announcementService) Publish(ctx context.Context, announcement *model.Announcement) error {
	announcement.Title = sanitizer.NormalizeTitle(announcement.Title)
	announcement.Message = sanitizer.TrimAndNormalize(announcement.Message)

	if announcement.Title == "" || announcement.Message == "" {
		return apperrors.InvalidInput("Title and message are required")
	}
	if err := s.validate.Struct(announcement); err != nil {
		s.cfg.Log.Warn("Announcement validation failed", "error", err)
		return apperrors.Validation("Announcement validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, announcement); err != nil {
		s.cfg.Log.Error("Failed to create announcement", "error", err)
		return apperrors.Internal("Failed to create announcement", err)
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(events.AnnouncementPublished, announcement.ID, announcement)); err != nil {
		s.cfg.Log.Warn("Failed to publish event", "event_type", events.AnnouncementPublished, "key", announcement.ID, "error", err)
	}
	s.cfg.Log.Info("Announcement published", "id", announcement.ID, "title", announcement.Title)
	return nil
}

func (s *announcementService) List(ctx context.Context) ([]*model.Announcement, error) {
	announcements, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list announcements", "error", err)
		return nil, apperrors.Internal("Failed to fetch announcements", err)
	}
	return announcements, nil
}

func (s *announcementService) Update(ctx context.Context, id string, announcement *model.Announcement) error {
	if id == "" {
		return apperrors.InvalidInput("Announcement ID cannot be empty")
	}
	announcement.Title = sanitizer.NormalizeTitle(announcement.Title)
	announcement.Message = sanitizer.TrimAndNormalize(announcement.Message)

	if err := s.repo.Update(ctx, id, announcement); err != nil {
		return s.translate(err, id, "update")
	}
	s.cfg.Log.Info("Announcement updated", "id", id)
	return nil
}

func (s *announcementService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Announcement ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translate(err, id, "delete")
	}
	s.cfg.Log.Info("Announcement deleted", "id", id)
	return nil
}

func (s *announcementService) translate(err error, id, op string) error {
	if errors.Is(err, announcementserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Announcement", id)
	}
	if errors.Is(err, announcementserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid announcement ID format")
	}
	s.cfg.Log.Error("Failed to "+op+" announcement", "id", id, "error", err)
	return apperrors.Internal("Failed to "+op+" announcement", err)
}
