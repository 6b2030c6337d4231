package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"

	couponserrors "eliteclub/internal/coupons/errors"
	"eliteclub/internal/coupons/repository"
	"eliteclub/pkg/config"
	apperrors "eliteclub/pkg/errors"
	"eliteclub/pkg/model"
	"eliteclub/pkg/sanitizer"
)

type CouponService interface {
	Validate(ctx context.Context, code string) (*model.CouponValidation, error)
	Create(ctx context.Context, coupon *model.Coupon) error
	List(ctx context.Context) ([]*model.Coupon, error)
	Update(ctx context.Context, id string, coupon *model.Coupon) error
	Delete(ctx context.Context, id string) error
}

type couponService struct {
	repo     repository.CouponRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewCouponService(repo repository.CouponRepository, cfg *config.Config) CouponService {
	return &couponService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// Validate resolves a code case-insensitively and normalizes the stored
// discount to a float64 whatever shape it was written in.
func (s *couponService) Validate(ctx context.Context, code string) (*model.CouponValidation, error) {
	code = sanitizer.NormalizeCouponCode(code)
	if code == "" {
		return nil, apperrors.InvalidInput("Coupon code is required")
	}

	coupon, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, couponserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Coupon")
		}
		s.cfg.Log.Error("Failed to validate coupon", "code", code, "error", err)
		return nil, apperrors.Internal("Failed to validate coupon", err)
	}

	discount, err := coerceDiscount(coupon.Discount)
	if err != nil {
		s.cfg.Log.Error("Coupon carries an unusable discount", "code", coupon.Code, "error", err)
		return nil, apperrors.Internal("Failed to validate coupon", err)
	}

	return &model.CouponValidation{
		Coupon:      coupon.Code,
		Discount:    discount,
		Description: coupon.Description,
	}, nil
}

// Create rejects a duplicate by exact, case-sensitive code: "SAVE10"
// and "save10" may coexist in the store even though validation treats
// them as the same coupon.
func (s *couponService) Create(ctx context.Context, coupon *model.Coupon) error {
	coupon.Code = sanitizer.NormalizeCouponCode(coupon.Code)
	coupon.Description = sanitizer.TrimAndNormalize(coupon.Description)

	if err := s.validate.Struct(coupon); err != nil {
		s.cfg.Log.Warn("Coupon validation failed", "error", err)
		return apperrors.Validation("Coupon validation failed", map[string]any{"error": err.Error()})
	}

	_, err := s.repo.FindByExactCode(ctx, coupon.Code)
	if err == nil {
		return apperrors.Conflict("Coupon already exists.")
	}
	if !errors.Is(err, couponserrors.ErrNotFound) {
		s.cfg.Log.Error("Failed to check for existing coupon", "code", coupon.Code, "error", err)
		return apperrors.Internal("Failed to create coupon", err)
	}

	if err := s.repo.Create(ctx, coupon); err != nil {
		if errors.Is(err, couponserrors.ErrDuplicateCode) {
			return apperrors.Conflict("Coupon already exists.")
		}
		s.cfg.Log.Error("Failed to create coupon", "code", coupon.Code, "error", err)
		return apperrors.Internal("Failed to create coupon", err)
	}

	s.cfg.Log.Info("Coupon created", "id", coupon.ID, "code", coupon.Code)
	return nil
}

func (s *couponService) List(ctx context.Context) ([]*model.Coupon, error) {
	coupons, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list coupons", "error", err)
		return nil, apperrors.Internal("Failed to fetch coupons", err)
	}
	return coupons, nil
}

func (s *couponService) Update(ctx context.Context, id string, coupon *model.Coupon) error {
	if id == "" {
		return apperrors.InvalidInput("Coupon ID cannot be empty")
	}
	coupon.Code = sanitizer.NormalizeCouponCode(coupon.Code)

	if err := s.repo.Update(ctx, id, coupon); err != nil {
		if errors.Is(err, couponserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Coupon", id)
		}
		if errors.Is(err, couponserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid coupon ID format")
		}
		s.cfg.Log.Error("Failed to update coupon", "id", id, "error", err)
		return apperrors.Internal("Failed to update coupon", err)
	}
	s.cfg.Log.Info("Coupon updated", "id", id)
	return nil
}

func (s *couponService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Coupon ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, couponserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Coupon", id)
		}
		if errors.Is(err, couponserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid coupon ID format")
		}
		s.cfg.Log.Error("Failed to delete coupon", "id", id, "error", err)
		return apperrors.Internal("Failed to delete coupon", err)
	}
	s.cfg.Log.Info("Coupon deleted", "id", id)
	return nil
}

func coerceDiscount(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	case json.Number:
		return v.Float64()
	default:
		return 0, errors.New("unsupported discount type")
	}
}
