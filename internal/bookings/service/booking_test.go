package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "eliteclub/internal/bookings/errors"
	"eliteclub/internal/bookings/validator"
	userserrors "eliteclub/internal/users/errors"
	"eliteclub/pkg/config"
	mongotx "eliteclub/pkg/db/mongo"
	apperrors "eliteclub/pkg/errors"
	"eliteclub/pkg/events"
	"eliteclub/pkg/logger"
	"eliteclub/pkg/model"
)

// Mock repository for testing
type mockBookingRepository struct {
	createFunc       func(ctx context.Context, booking *model.Booking) error
	findByIDFunc     func(ctx context.Context, id string) (*model.Booking, error)
	updateStatusFunc func(ctx context.Context, id, status string, approvedAt *time.Time) error
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindPendingByOwner(ctx context.Context, email string) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByStatusAndOwner(ctx context.Context, status, email string) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByStatus(ctx context.Context, status string) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id, status string, approvedAt *time.Time) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status, approvedAt)
	}
	return nil
}

func (m *mockBookingRepository) Confirm(ctx context.Context, id string, paidAt time.Time) error {
	return nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockUserPromoter struct {
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	promoteFunc     func(ctx context.Context, email string, approvedAt time.Time) error
}

func (m *mockUserPromoter) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserPromoter) Promote(ctx context.Context, email string, approvedAt time.Time) error {
	if m.promoteFunc != nil {
		return m.promoteFunc(ctx, email, approvedAt)
	}
	return nil
}

type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(_ context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestService(repo *mockBookingRepository, users *mockUserPromoter, pub *mockPublisher) BookingService {
	cfg := testConfig()
	return NewBookingService(repo, users, validator.NewBookingValidator(cfg.Log), pub, cfg)
}

func pendingBooking(id string) *model.Booking {
	return &model.Booking{
		ID:        id,
		CourtID:   "64f000000000000000000001",
		CourtName: "Center Court",
		Slots:     []string{"10:00 - 11:00"},
		Price:     40,
		Email:     "player@example.com",
		Status:    model.BookingStatusPending,
	}
}

func approvalRequest(status string) *model.ApprovalRequest {
	return &model.ApprovalRequest{
		Status:     status,
		ApprovedAt: time.Now().UTC(),
		UserEmail:  "player@example.com",
	}
}

func TestApprove_PromotesUser(t *testing.T) {
	var promotedEmail string
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return pendingBooking(id), nil
		},
	}
	users := &mockUserPromoter{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{Email: email, Role: model.RoleUser}, nil
		},
		promoteFunc: func(ctx context.Context, email string, approvedAt time.Time) error {
			promotedEmail = email
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(repo, users, pub)

	result, err := svc.Approve(context.Background(), "64f000000000000000000099", approvalRequest(model.BookingStatusApproved))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Promoted {
		t.Error("expected user to be promoted")
	}
	if result.AlreadyMember {
		t.Error("did not expect AlreadyMember")
	}
	if promotedEmail != "player@example.com" {
		t.Errorf("expected promotion for player@example.com, got %q", promotedEmail)
	}
	if len(pub.published) != 1 || pub.published[0].Type != events.BookingApproved {
		t.Errorf("expected one booking.approved event, got %v", pub.published)
	}
}

func TestApprove_AlreadyMemberSkipsPromotion(t *testing.T) {
	promoteCalled := false
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return pendingBooking(id), nil
		},
	}
	users := &mockUserPromoter{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{Email: email, Role: model.RoleMember}, nil
		},
		promoteFunc: func(ctx context.Context, email string, approvedAt time.Time) error {
			promoteCalled = true
			return nil
		},
	}
	svc := newTestService(repo, users, &mockPublisher{})

	result, err := svc.Approve(context.Background(), "64f000000000000000000099", approvalRequest(model.BookingStatusApproved))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.AlreadyMember {
		t.Error("expected AlreadyMember")
	}
	if result.Promoted {
		t.Error("did not expect promotion")
	}
	if promoteCalled {
		t.Error("Promote must not be called for an existing member")
	}
}

func TestApprove_UnknownUserStillApproves(t *testing.T) {
	statusWritten := ""
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return pendingBooking(id), nil
		},
		updateStatusFunc: func(ctx context.Context, id, status string, approvedAt *time.Time) error {
			statusWritten = status
			return nil
		},
	}
	users := &mockUserPromoter{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return nil, userserrors.ErrNotFound
		},
	}
	svc := newTestService(repo, users, &mockPublisher{})

	result, err := svc.Approve(context.Background(), "64f000000000000000000099", approvalRequest(model.BookingStatusApproved))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if statusWritten != model.BookingStatusApproved {
		t.Errorf("expected booking write to approved, got %q", statusWritten)
	}
	if result.Promoted || result.AlreadyMember {
		t.Errorf("expected no promotion outcome, got %+v", result)
	}
}

func TestApprove_IllegalTransitionRejected(t *testing.T) {
	updateCalled := false
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			b := pendingBooking(id)
			b.Status = model.BookingStatusConfirmed
			return b, nil
		},
		updateStatusFunc: func(ctx context.Context, id, status string, approvedAt *time.Time) error {
			updateCalled = true
			return nil
		},
	}
	svc := newTestService(repo, &mockUserPromoter{}, &mockPublisher{})

	_, err := svc.Approve(context.Background(), "64f000000000000000000099", approvalRequest(model.BookingStatusApproved))
	if err == nil {
		t.Fatal("expected an error for confirmed -> approved")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if updateCalled {
		t.Error("no status write may happen for an illegal transition")
	}
}

func TestApprove_BookingNotFound(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, bookingserrors.ErrNotFound
		},
	}
	svc := newTestService(repo, &mockUserPromoter{}, &mockPublisher{})

	_, err := svc.Approve(context.Background(), "64f000000000000000000099", approvalRequest(model.BookingStatusApproved))
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", apperrors.AsAppError(err).Code)
	}
}

func TestCreate_ForcesPendingStatus(t *testing.T) {
	var saved *model.Booking
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			saved = booking
			return nil
		},
	}
	svc := newTestService(repo, &mockUserPromoter{}, &mockPublisher{})

	now := time.Now()
	booking := pendingBooking("")
	booking.Status = model.BookingStatusConfirmed
	booking.ApprovedAt = &now
	booking.PaidAt = &now

	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Status != model.BookingStatusPending {
		t.Errorf("expected pending, got %q", saved.Status)
	}
	if saved.ApprovedAt != nil || saved.PaidAt != nil {
		t.Error("expected lifecycle timestamps to be cleared")
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	createCalled := false
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			createCalled = true
			return nil
		},
	}
	svc := newTestService(repo, &mockUserPromoter{}, &mockPublisher{})

	booking := pendingBooking("")
	booking.Email = "not-an-email"

	err := svc.Create(context.Background(), booking)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("expected VALIDATION_ERROR, got %s", apperrors.AsAppError(err).Code)
	}
	if createCalled {
		t.Error("invalid booking must not reach the repository")
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockBookingRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return bookingserrors.ErrNotFound
		},
	}
	svc := newTestService(repo, &mockUserPromoter{}, &mockPublisher{})

	err := svc.Delete(context.Background(), "64f000000000000000000099")
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", apperrors.AsAppError(err).Code)
	}
}
