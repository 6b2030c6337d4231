package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	userserrors "eliteclub/internal/users/errors"
	"eliteclub/pkg/config"
	mongotx "eliteclub/pkg/db/mongo"
	apperrors "eliteclub/pkg/errors"
	"eliteclub/pkg/events"
	"eliteclub/pkg/identity"
	"eliteclub/pkg/model"
)

// UserStore is the slice of the users repository removal needs.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	Delete(ctx context.Context, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

// BookingPurger deletes every booking owned by an email address and
// reports how many went.
type BookingPurger interface {
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

// RemovalResult reports what the cascade actually did. Warnings carry
// identity-provider trouble that did not stop the removal: the store
// writes are authoritative, the provider cleanup is advisory.
type RemovalResult struct {
	DeletedBookings int64    `json:"deletedBookings"`
	Warnings        []string `json:"warnings,omitempty"`
}

type MemberService interface {
	Remove(ctx context.Context, userID string) (*RemovalResult, error)
}

type memberService struct {
	users     UserStore
	bookings  BookingPurger
	provider  identity.Provider
	publisher events.Publisher
	cfg       *config.Config
}

func NewMemberService(
	users UserStore,
	bookings BookingPurger,
	provider identity.Provider,
	publisher events.Publisher,
	cfg *config.Config,
) MemberService {
	return &memberService{
		users:     users,
		bookings:  bookings,
		provider:  provider,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Remove deletes the user record and every booking they own in one
// transaction, then tears down their identity-provider account. A
// missing or failing provider account never fails the removal; it is
// reported as a warning.
func (s *memberService) Remove(ctx context.Context, userID string) (*RemovalResult, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", userID)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to look up user for removal", "id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	result := &RemovalResult{}

	// Provider lookup happens before the store writes so a deleted
	// record is never left pointing at a live account we could not
	// resolve. Lookup trouble downgrades to a warning.
	uid, err := s.provider.LookupByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, identity.ErrPrincipalNotFound) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("no identity account found for %s", user.Email))
		} else {
			s.cfg.Log.Warn("Identity lookup failed during removal", "email", user.Email, "error", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("identity lookup failed for %s", user.Email))
		}
		uid = ""
	}

	err = s.users.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.users.Delete(sessCtx, userID); err != nil {
			if errors.Is(err, userserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("User", userID)
			}
			return apperrors.Internal("Failed to delete user", err)
		}

		deleted, err := s.bookings.DeleteByEmail(sessCtx, user.Email)
		if err != nil {
			return apperrors.Internal("Failed to delete user bookings", err)
		}
		result.DeletedBookings = deleted
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to remove member", "id", userID, "error", err)
		return nil, err
	}

	if uid != "" {
		if err := s.provider.DeleteAccount(ctx, uid); err != nil {
			s.cfg.Log.Warn("Identity account deletion failed", "uid", uid, "email", user.Email, "error", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("identity account %s could not be deleted", uid))
		}
	}

	s.emit(ctx, events.MemberRemoved, userID, map[string]any{
		"userId":          userID,
		"email":           user.Email,
		"deletedBookings": result.DeletedBookings,
	})
	s.cfg.Log.Info("Member removed",
		"id", userID,
		"email", user.Email,
		"deleted_bookings", result.DeletedBookings,
		"warnings", len(result.Warnings),
	)
	return result, nil
}

func (s *memberService) emit(ctx context.Context, eventType, key string, payload any) {
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, key, payload)); err != nil {
		s.cfg.Log.Warn("Failed to publish event", "event_type", eventType, "key", key, "error", err)
	}
}
