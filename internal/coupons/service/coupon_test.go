package service

import (
	"context"
	"strings"
	"testing"
	"time"

	couponserrors "eliteclub/internal/coupons/errors"
	"eliteclub/pkg/config"
	apperrors "eliteclub/pkg/errors"
	"eliteclub/pkg/logger"
	"eliteclub/pkg/model"
)

// mockCouponRepository resolves codes the way the store does: whole-code
// match, case-insensitive for FindByCode and exact for FindByExactCode.
type mockCouponRepository struct {
	coupons   []*model.Coupon
	created   []*model.Coupon
	createErr error
}

func (m *mockCouponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, coupon)
	m.coupons = append(m.coupons, coupon)
	return nil
}

func (m *mockCouponRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	for _, c := range m.coupons {
		if strings.EqualFold(c.Code, code) {
			return c, nil
		}
	}
	return nil, couponserrors.ErrNotFound
}

func (m *mockCouponRepository) FindByExactCode(ctx context.Context, code string) (*model.Coupon, error) {
	for _, c := range m.coupons {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, couponserrors.ErrNotFound
}

func (m *mockCouponRepository) FindAll(ctx context.Context) ([]*model.Coupon, error) {
	return m.coupons, nil
}

func (m *mockCouponRepository) Update(ctx context.Context, id string, coupon *model.Coupon) error {
	return couponserrors.ErrNotFound
}

func (m *mockCouponRepository) Delete(ctx context.Context, id string) error {
	return couponserrors.ErrNotFound
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

func TestValidate_CaseInsensitiveWholeCodeMatch(t *testing.T) {
	repo := &mockCouponRepository{
		coupons: []*model.Coupon{
			{Code: "SAVE10", Discount: 10.0, Description: "Ten percent off"},
		},
	}
	svc := NewCouponService(repo, testConfig())

	for _, code := range []string{"SAVE10", "save10", "Save10", " save10 "} {
		result, err := svc.Validate(context.Background(), code)
		if err != nil {
			t.Fatalf("code %q: unexpected error: %v", code, err)
		}
		if result.Coupon != "SAVE10" {
			t.Errorf("code %q: expected stored code SAVE10, got %q", code, result.Coupon)
		}
		if result.Discount != 10.0 {
			t.Errorf("code %q: expected discount 10, got %v", code, result.Discount)
		}
	}

	// A prefix is not a match.
	if _, err := svc.Validate(context.Background(), "SAVE1"); err == nil {
		t.Error("expected SAVE1 to miss")
	} else if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND for SAVE1, got %s", apperrors.AsAppError(err).Code)
	}
}

func TestValidate_CoercesStringDiscount(t *testing.T) {
	repo := &mockCouponRepository{
		coupons: []*model.Coupon{
			{Code: "LEGACY", Discount: "15"},
			{Code: "WHOLE", Discount: int64(20)},
		},
	}
	svc := NewCouponService(repo, testConfig())

	result, err := svc.Validate(context.Background(), "legacy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Discount != 15.0 {
		t.Errorf("expected string discount coerced to 15, got %v", result.Discount)
	}

	result, err = svc.Validate(context.Background(), "whole")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Discount != 20.0 {
		t.Errorf("expected int64 discount coerced to 20, got %v", result.Discount)
	}
}

func TestValidate_EmptyCode(t *testing.T) {
	svc := NewCouponService(&mockCouponRepository{}, testConfig())

	_, err := svc.Validate(context.Background(), "   ")
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", apperrors.AsAppError(err).Code)
	}
}

func TestCreate_ExactDuplicateRejected(t *testing.T) {
	repo := &mockCouponRepository{
		coupons: []*model.Coupon{
			{Code: "SAVE10", Discount: 10.0},
		},
	}
	svc := NewCouponService(repo, testConfig())

	err := svc.Create(context.Background(), &model.Coupon{Code: "SAVE10", Discount: 10.0})
	if err == nil {
		t.Fatal("expected a duplicate error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected CONFLICT, got %s", appErr.Code)
	}
	if appErr.HTTPStatus != 400 {
		t.Errorf("duplicate coupons answer 400, got %d", appErr.HTTPStatus)
	}
	if len(repo.created) != 0 {
		t.Error("the duplicate must not be stored")
	}
}

func TestCreate_InsertRaceMapsToConflict(t *testing.T) {
	// A concurrent create can slip between the duplicate check and the
	// insert; the unique index turns that into ErrDuplicateCode, which
	// answers like any other duplicate rather than a 500.
	repo := &mockCouponRepository{createErr: couponserrors.ErrDuplicateCode}
	svc := NewCouponService(repo, testConfig())

	err := svc.Create(context.Background(), &model.Coupon{Code: "SAVE10", Discount: 10.0})
	if err == nil {
		t.Fatal("expected a duplicate error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected CONFLICT, got %s", appErr.Code)
	}
	if appErr.HTTPStatus != 400 {
		t.Errorf("duplicate coupons answer 400, got %d", appErr.HTTPStatus)
	}
}

func TestCreate_DuplicateCheckIsCaseSensitive(t *testing.T) {
	repo := &mockCouponRepository{
		coupons: []*model.Coupon{
			{Code: "SAVE10", Discount: 10.0},
		},
	}
	svc := NewCouponService(repo, testConfig())

	// Creation compares codes exactly, so the lower-case twin is
	// accepted even though validation resolves both to one coupon.
	if err := svc.Create(context.Background(), &model.Coupon{Code: "save10", Discount: 5.0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Errorf("expected the lower-case twin to be stored, got %d creations", len(repo.created))
	}
}
