package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "eliteclub/internal/bookings/errors"
	"eliteclub/internal/bookings/repository"
	"eliteclub/internal/bookings/validator"
	userserrors "eliteclub/internal/users/errors"
	"eliteclub/pkg/config"
	apperrors "eliteclub/pkg/errors"
	"eliteclub/pkg/events"
	"eliteclub/pkg/model"
	"eliteclub/pkg/sanitizer"
)

// UserPromoter is the slice of the users repository the lifecycle engine
// needs for the approval side effect.
type UserPromoter interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Promote(ctx context.Context, email string, approvedAt time.Time) error
}

// ApprovalResult reports what the approval actually did: the booking
// write always happened, the promotion only if the user was not yet a
// member.
type ApprovalResult struct {
	Promoted      bool
	AlreadyMember bool
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	Approve(ctx context.Context, id string, req *model.ApprovalRequest) (*ApprovalResult, error)
	ListPending(ctx context.Context, ownerEmail string) ([]*model.Booking, error)
	ListPendingAll(ctx context.Context) ([]*model.Booking, error)
	ListApproved(ctx context.Context, ownerEmail string) ([]*model.Booking, error)
	ListConfirmed(ctx context.Context, ownerEmail string) ([]*model.Booking, error)
	ListConfirmedAll(ctx context.Context) ([]*model.Booking, error)
	Delete(ctx context.Context, id string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	users     UserPromoter
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	users UserPromoter,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		users:     users,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	booking.Email = sanitizer.NormalizeEmail(booking.Email)
	booking.CourtName = sanitizer.NormalizeName(booking.CourtName)

	// Every booking request starts its lifecycle as pending, whatever
	// the payload claims.
	booking.Status = model.BookingStatusPending
	booking.ApprovedAt = nil
	booking.PaidAt = nil

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return apperrors.Internal("Failed to book court", err)
	}

	s.emit(ctx, events.BookingCreated, booking.ID, booking)
	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"court_id", booking.CourtID,
		"email", booking.Email,
	)
	return nil
}

func (s *bookingService) Approve(ctx context.Context, id string, req *model.ApprovalRequest) (*ApprovalResult, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if err := s.validator.ValidateApproval(req); err != nil {
		s.cfg.Log.Warn("Approval validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid approval input", map[string]any{"error": err.Error()})
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateLookup(err, id)
	}

	if !model.CanTransition(booking.Status, req.Status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf(
			"Illegal status transition from %q to %q", booking.Status, req.Status,
		))
	}

	userEmail := sanitizer.NormalizeEmail(req.UserEmail)
	result := &ApprovalResult{}

	// Booking-status write and the role promotion commit together or
	// not at all.
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		approvedAt := req.ApprovedAt
		if err := s.repo.UpdateStatus(sessCtx, id, req.Status, &approvedAt); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to approve booking", err)
		}

		user, err := s.users.FindByEmail(sessCtx, userEmail)
		if err != nil {
			if errors.Is(err, userserrors.ErrNotFound) {
				// The requester may not have signed in yet; the
				// booking update still stands.
				return nil
			}
			return apperrors.Internal("Failed to look up user for promotion", err)
		}

		if user.Role == model.RoleMember {
			result.AlreadyMember = true
			return nil
		}

		if err := s.users.Promote(sessCtx, userEmail, req.ApprovedAt); err != nil {
			return apperrors.Internal("Failed to promote user", err)
		}
		result.Promoted = true
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to approve booking", "id", id, "error", err)
		return nil, err
	}

	s.emit(ctx, events.BookingApproved, id, map[string]any{
		"bookingId": id,
		"status":    req.Status,
		"userEmail": userEmail,
		"promoted":  result.Promoted,
	})
	s.cfg.Log.Info("Booking approved",
		"id", id,
		"status", req.Status,
		"user_email", userEmail,
		"promoted", result.Promoted,
	)
	return result, nil
}

func (s *bookingService) ListPending(ctx context.Context, ownerEmail string) ([]*model.Booking, error) {
	bookings, err := s.repo.FindPendingByOwner(ctx, sanitizer.NormalizeEmail(ownerEmail))
	if err != nil {
		s.cfg.Log.Error("Failed to list pending bookings", "email", ownerEmail, "error", err)
		return nil, apperrors.Internal("Failed to fetch pending bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListPendingAll(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.FindByStatus(ctx, model.BookingStatusPending)
	if err != nil {
		s.cfg.Log.Error("Failed to list all pending bookings", "error", err)
		return nil, apperrors.Internal("Failed to fetch pending bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListApproved(ctx context.Context, ownerEmail string) ([]*model.Booking, error) {
	bookings, err := s.repo.FindByStatusAndOwner(ctx, model.BookingStatusApproved, sanitizer.NormalizeEmail(ownerEmail))
	if err != nil {
		s.cfg.Log.Error("Failed to list approved bookings", "email", ownerEmail, "error", err)
		return nil, apperrors.Internal("Failed to fetch approved bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListConfirmed(ctx context.Context, ownerEmail string) ([]*model.Booking, error) {
	bookings, err := s.repo.FindByStatusAndOwner(ctx, model.BookingStatusConfirmed, sanitizer.NormalizeEmail(ownerEmail))
	if err != nil {
		s.cfg.Log.Error("Failed to list confirmed bookings", "email", ownerEmail, "error", err)
		return nil, apperrors.Internal("Failed to fetch confirmed bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListConfirmedAll(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.FindByStatus(ctx, model.BookingStatusConfirmed)
	if err != nil {
		s.cfg.Log.Error("Failed to list all confirmed bookings", "error", err)
		return nil, apperrors.Internal("Failed to fetch confirmed bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.emit(ctx, events.BookingDeleted, id, map[string]any{"bookingId": id})
	s.cfg.Log.Info("Booking deleted", "id", id)
	return nil
}

func (s *bookingService) translateLookup(err error, id string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	return apperrors.Internal("Failed to retrieve booking", err)
}

func (s *bookingService) emit(ctx context.Context, eventType, key string, payload any) {
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, key, payload)); err != nil {
		s.cfg.Log.Warn("Failed to publish event", "event_type", eventType, "key", key, "error", err)
	}
}
