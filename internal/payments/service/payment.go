package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"eliteclub/internal/payments/repository"
	"eliteclub/pkg/config"
	apperrors "eliteclub/pkg/errors"
	"eliteclub/pkg/events"
	"eliteclub/pkg/model"
	"eliteclub/pkg/sanitizer"
)

// BookingConfirmer is the slice of the bookings repository settlement
// needs: stamping the paid booking as confirmed inside the payment
// transaction.
type BookingConfirmer interface {
	Confirm(ctx context.Context, id string, paidAt time.Time) error
}

type PaymentService interface {
	Settle(ctx context.Context, payment *model.Payment) (string, error)
	ListByOwner(ctx context.Context, email string) ([]*model.Payment, error)
}

type paymentService struct {
	repo      repository.PaymentRepository
	bookings  BookingConfirmer
	validate  *validator.Validate
	publisher events.Publisher
	cfg       *config.Config
}

func NewPaymentService(
	repo repository.PaymentRepository,
	bookings BookingConfirmer,
	publisher events.Publisher,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		repo:      repo,
		bookings:  bookings,
		validate:  validator.New(),
		publisher: publisher,
		cfg:       cfg,
	}
}

// Settle records the payment and confirms the paid booking in one
// transaction. Preconditions are checked before anything is written: a
// payment with no booking reference, no owner or a null price is
// rejected with zero writes.
func (s *paymentService) Settle(ctx context.Context, payment *model.Payment) (string, error) {
	if payment.BookingID == "" || payment.Email == "" || payment.Price == nil {
		return "", apperrors.InvalidInput("Missing required payment data")
	}

	payment.Email = sanitizer.NormalizeEmail(payment.Email)
	payment.Coupon = sanitizer.NormalizeCouponCode(payment.Coupon)

	if err := s.validate.Struct(payment); err != nil {
		s.cfg.Log.Warn("Payment validation failed", "booking_id", payment.BookingID, "error", err)
		return "", apperrors.Validation("Payment validation failed", map[string]any{"error": err.Error()})
	}

	paidAt := time.Now().UTC().Truncate(time.Millisecond)
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Insert(sessCtx, payment); err != nil {
			return apperrors.Internal("Failed to save payment", err)
		}
		if err := s.bookings.Confirm(sessCtx, payment.BookingID, paidAt); err != nil {
			return apperrors.Internal("Failed to confirm booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to settle payment", "booking_id", payment.BookingID, "error", err)
		return "", err
	}

	s.emit(ctx, events.PaymentSettled, payment.ID, map[string]any{
		"paymentId": payment.ID,
		"bookingId": payment.BookingID,
		"email":     payment.Email,
		"price":     *payment.Price,
	})
	s.cfg.Log.Info("Payment settled",
		"id", payment.ID,
		"booking_id", payment.BookingID,
		"email", payment.Email,
	)
	return payment.ID, nil
}

func (s *paymentService) ListByOwner(ctx context.Context, email string) ([]*model.Payment, error) {
	payments, err := s.repo.FindByOwner(ctx, sanitizer.NormalizeEmail(email))
	if err != nil {
		s.cfg.Log.Error("Failed to list payments", "email", email, "error", err)
		return nil, apperrors.Internal("Failed to fetch payments", err)
	}
	return payments, nil
}

func (s *paymentService) emit(ctx context.Context, eventType, key string, payload any) {
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, key, payload)); err != nil {
		s.cfg.Log.Warn("Failed to publish event", "event_type", eventType, "key", key, "error", err)
	}
}
