package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "eliteclub/pkg/errors"
	"eliteclub/pkg/logger"
	"eliteclub/pkg/model"
)

// Mock service for testing
type mockCouponService struct {
	validateFunc func(ctx context.Context, code string) (*model.CouponValidation, error)
}

func (m *mockCouponService) Validate(ctx context.Context, code string) (*model.CouponValidation, error) {
	if m.validateFunc != nil {
		return m.validateFunc(ctx, code)
	}
	return nil, apperrors.NotFound("Coupon")
}

func (m *mockCouponService) Create(ctx context.Context, coupon *model.Coupon) error {
	return nil
}

func (m *mockCouponService) List(ctx context.Context) ([]*model.Coupon, error) {
	return nil, nil
}

func (m *mockCouponService) Update(ctx context.Context, id string, coupon *model.Coupon) error {
	return nil
}

func (m *mockCouponService) Delete(ctx context.Context, id string) error {
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func TestValidate_ReadsCodeQueryParameter(t *testing.T) {
	var receivedCode string
	mockService := &mockCouponService{
		validateFunc: func(ctx context.Context, code string) (*model.CouponValidation, error) {
			receivedCode = code
			return &model.CouponValidation{Coupon: code, Discount: 10}, nil
		},
	}

	handler := &CouponHandler{
		service: mockService,
		log:     testLogger(),
	}

	req := httptest.NewRequest(http.MethodGet, "/coupons/validate?code=SAVE10", nil)
	w := httptest.NewRecorder()

	handler.Validate(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	if receivedCode != "SAVE10" {
		t.Errorf("expected service to receive code SAVE10, got %q", receivedCode)
	}

	var response model.CouponValidation
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Coupon != "SAVE10" {
		t.Errorf("expected coupon SAVE10, got %q", response.Coupon)
	}
}

func TestValidate_MissingCodeParameter(t *testing.T) {
	mockService := &mockCouponService{
		validateFunc: func(ctx context.Context, code string) (*model.CouponValidation, error) {
			if code == "" {
				return nil, apperrors.InvalidInput("Coupon code is required")
			}
			return &model.CouponValidation{Coupon: code}, nil
		},
	}

	handler := &CouponHandler{
		service: mockService,
		log:     testLogger(),
	}

	tests := []struct {
		name        string
		queryString string
	}{
		{"no query string", ""},
		{"empty code", "?code="},
		{"wrong parameter name", "?coupon=SAVE10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/coupons/validate"+tt.queryString, nil)
			w := httptest.NewRecorder()

			handler.Validate(w, req, httprouter.Params{})

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestValidate_UnknownCode(t *testing.T) {
	handler := &CouponHandler{
		service: &mockCouponService{},
		log:     testLogger(),
	}

	req := httptest.NewRequest(http.MethodGet, "/coupons/validate?code=NOPE", nil)
	w := httptest.NewRecorder()

	handler.Validate(w, req, httprouter.Params{})

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}
