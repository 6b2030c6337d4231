package service

import (
	"context"
	"testing"
	"time"

	userserrors "eliteclub/internal/users/errors"
	"eliteclub/pkg/config"
	mongotx "eliteclub/pkg/db/mongo"
	apperrors "eliteclub/pkg/errors"
	"eliteclub/pkg/logger"
	"eliteclub/pkg/model"
)

type mockUserRepository struct {
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	insertFunc      func(ctx context.Context, user *model.User) error
	findAllFunc     func(ctx context.Context, limit int, offset int64) ([]*model.User, error)
}

func (m *mockUserRepository) Insert(ctx context.Context, user *model.User) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, user)
	}
	user.ID = "64f000000000000000000001"
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.User, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.User{}, nil
}

func (m *mockUserRepository) FindByRole(ctx context.Context, role string) ([]*model.User, error) {
	return []*model.User{}, nil
}

func (m *mockUserRepository) Promote(ctx context.Context, email string, approvedAt time.Time) error {
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockUserRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return nil
}

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

func newUser() *model.User {
	return &model.User{
		Name:  "Jamie Park",
		Email: "Jamie@Example.com",
	}
}

func TestRegister_CreatesNewUser(t *testing.T) {
	repo := &mockUserRepository{}
	svc := NewUserService(repo, testConfig())

	result, err := svc.Register(context.Background(), newUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Created {
		t.Error("expected Created for a fresh email")
	}
	if result.User.Email != "jamie@example.com" {
		t.Errorf("expected normalized email, got %q", result.User.Email)
	}
	if result.User.Role != model.RoleUser {
		t.Errorf("expected default role user, got %q", result.User.Role)
	}
}

func TestRegister_KnownEmailIsNoOp(t *testing.T) {
	existing := &model.User{ID: "64f000000000000000000001", Email: "jamie@example.com", Role: model.RoleMember}
	insertCalled := false
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return existing, nil
		},
		insertFunc: func(ctx context.Context, user *model.User) error {
			insertCalled = true
			return nil
		},
	}
	svc := NewUserService(repo, testConfig())

	result, err := svc.Register(context.Background(), newUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Created {
		t.Error("a second sign-in must not report Created")
	}
	if result.User != existing {
		t.Error("expected the stored user back")
	}
	if insertCalled {
		t.Error("no insert may happen for a known email")
	}
}

func TestRegister_LostInsertRaceStillSucceeds(t *testing.T) {
	existing := &model.User{ID: "64f000000000000000000001", Email: "jamie@example.com"}
	firstLookup := true
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			if firstLookup {
				firstLookup = false
				return nil, userserrors.ErrNotFound
			}
			return existing, nil
		},
		insertFunc: func(ctx context.Context, user *model.User) error {
			return userserrors.ErrDuplicateEmail
		},
	}
	svc := NewUserService(repo, testConfig())

	result, err := svc.Register(context.Background(), newUser())
	if err != nil {
		t.Fatalf("losing the insert race must not error: %v", err)
	}
	if result.Created {
		t.Error("the race loser must not report Created")
	}
	if result.User != existing {
		t.Error("expected the concurrently created user back")
	}
}

func TestGetByEmail_RequiresEmail(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, testConfig())

	_, err := svc.GetByEmail(context.Background(), "")
	if err == nil {
		t.Fatal("expected an error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if appErr.Message != "Email query parameter is required" {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
}

func TestListAll_NormalizesPagination(t *testing.T) {
	var gotLimit int
	var gotOffset int64
	repo := &mockUserRepository{
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.User, error) {
			gotLimit = limit
			gotOffset = offset
			return []*model.User{}, nil
		},
	}
	svc := NewUserService(repo, testConfig())

	if _, err := svc.ListAll(context.Background(), 0, -5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 10 || gotOffset != 0 {
		t.Errorf("expected defaults (10, 0), got (%d, %d)", gotLimit, gotOffset)
	}

	if _, err := svc.ListAll(context.Background(), 1000, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 100 || gotOffset != 3 {
		t.Errorf("expected the limit capped at 100, got (%d, %d)", gotLimit, gotOffset)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, testConfig())

	_, err := svc.GetByEmail(context.Background(), "nobody@example.com")
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", apperrors.AsAppError(err).Code)
	}
}
