package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	userserrors "eliteclub/internal/users/errors"
	"eliteclub/pkg/config"
	mongotx "eliteclub/pkg/db/mongo"
	apperrors "eliteclub/pkg/errors"
	"eliteclub/pkg/events"
	"eliteclub/pkg/identity"
	"eliteclub/pkg/logger"
	"eliteclub/pkg/model"
)

type mockUserStore struct {
	findByIDFunc func(ctx context.Context, id string) (*model.User, error)
	deleted      []string
}

func (m *mockUserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserStore) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockUserStore) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockBookingPurger struct {
	deletedFor []string
	count      int64
}

func (m *mockBookingPurger) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	m.deletedFor = append(m.deletedFor, email)
	return m.count, nil
}

type mockProvider struct {
	lookupFunc func(ctx context.Context, email string) (string, error)
	deleteFunc func(ctx context.Context, uid string) error
	deletedUID string
}

func (m *mockProvider) LookupByEmail(ctx context.Context, email string) (string, error) {
	if m.lookupFunc != nil {
		return m.lookupFunc(ctx, email)
	}
	return "uid-123", nil
}

func (m *mockProvider) DeleteAccount(ctx context.Context, uid string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, uid)
	}
	m.deletedUID = uid
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

func knownUser(id string) *model.User {
	return &model.User{
		ID:    id,
		Name:  "Jamie Park",
		Email: "jamie@example.com",
		Role:  model.RoleMember,
	}
}

func TestRemove_CascadesAndDeletesIdentity(t *testing.T) {
	users := &mockUserStore{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return knownUser(id), nil
		},
	}
	bookings := &mockBookingPurger{count: 3}
	provider := &mockProvider{}
	pub := &mockPublisher{}
	svc := NewMemberService(users, bookings, provider, pub, testConfig())

	result, err := svc.Remove(context.Background(), "64f000000000000000000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.DeletedBookings != 3 {
		t.Errorf("expected 3 deleted bookings, got %d", result.DeletedBookings)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
	if len(users.deleted) != 1 {
		t.Errorf("expected one user deletion, got %v", users.deleted)
	}
	if len(bookings.deletedFor) != 1 || bookings.deletedFor[0] != "jamie@example.com" {
		t.Errorf("expected booking purge for jamie@example.com, got %v", bookings.deletedFor)
	}
	if provider.deletedUID != "uid-123" {
		t.Errorf("expected identity account uid-123 to be deleted, got %q", provider.deletedUID)
	}
	if len(pub.published) != 1 || pub.published[0].Type != events.MemberRemoved {
		t.Errorf("expected one member.removed event, got %v", pub.published)
	}
}

func TestRemove_MissingIdentityAccountIsAdvisory(t *testing.T) {
	users := &mockUserStore{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return knownUser(id), nil
		},
	}
	provider := &mockProvider{
		lookupFunc: func(ctx context.Context, email string) (string, error) {
			return "", identity.ErrPrincipalNotFound
		},
	}
	svc := NewMemberService(users, &mockBookingPurger{count: 1}, provider, &mockPublisher{}, testConfig())

	result, err := svc.Remove(context.Background(), "64f000000000000000000001")
	if err != nil {
		t.Fatalf("a missing identity account must not fail the removal: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", result.Warnings)
	}
	if len(users.deleted) != 1 {
		t.Error("the store deletion must still happen")
	}
}

func TestRemove_IdentityDeleteFailureIsAdvisory(t *testing.T) {
	users := &mockUserStore{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return knownUser(id), nil
		},
	}
	provider := &mockProvider{
		deleteFunc: func(ctx context.Context, uid string) error {
			return errors.New("identity service down")
		},
	}
	svc := NewMemberService(users, &mockBookingPurger{}, provider, &mockPublisher{}, testConfig())

	result, err := svc.Remove(context.Background(), "64f000000000000000000001")
	if err != nil {
		t.Fatalf("an identity deletion failure must not fail the removal: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected one warning, got %v", result.Warnings)
	}
}

func TestRemove_UserNotFound(t *testing.T) {
	users := &mockUserStore{}
	bookings := &mockBookingPurger{}
	svc := NewMemberService(users, bookings, &mockProvider{}, &mockPublisher{}, testConfig())

	_, err := svc.Remove(context.Background(), "64f000000000000000000001")
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", apperrors.AsAppError(err).Code)
	}
	if len(users.deleted) != 0 || len(bookings.deletedFor) != 0 {
		t.Error("nothing may be deleted for an unknown user")
	}
}
