package model

import "time"

// Payment settlement requires bookingId, email and a non-null price; the
// remaining fields are descriptive and pass through as received.
type Payment struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BookingID     string    `json:"bookingId" bson:"bookingId" validate:"required,mongodb"`
	Email         string    `json:"email" bson:"email" validate:"required,email"`
	Price         *float64  `json:"price" bson:"price" validate:"required,gte=0"`
	CourtName     string    `json:"courtName,omitempty" bson:"courtName,omitempty" validate:"omitempty,max=100"`
	Slots         []string  `json:"slots,omitempty" bson:"slots,omitempty" validate:"omitempty,dive,min=2,max=40"`
	Coupon        string    `json:"coupon,omitempty" bson:"coupon,omitempty" validate:"omitempty,max=40"`
	TransactionID string    `json:"transactionId,omitempty" bson:"transactionId,omitempty" validate:"omitempty,max=100"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt" validate:"omitempty"`
}
