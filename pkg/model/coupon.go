package model

import "time"

// Coupon's discount is stored loosely: older documents carry it as a
// string ("15"), newer ones as a number. The validation endpoint always
// coerces it to a float64 before it reaches a caller.
type Coupon struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Code        string    `json:"coupon" bson:"coupon" validate:"required,min=2,max=40"`
	Discount    any       `json:"discount" bson:"discount" validate:"required"`
	Description string    `json:"description" bson:"description" validate:"omitempty,max=300"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" validate:"omitempty"`
}

// CouponValidation is the normalized result of GET /coupons/validate.
type CouponValidation struct {
	Coupon      string  `json:"coupon"`
	Discount    float64 `json:"discount"`
	Description string  `json:"description"`
}
