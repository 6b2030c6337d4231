package model

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusApproved  = "approved"
	BookingStatusConfirmed = "confirmed"
)

// bookingTransitions is the forward-only lifecycle table. Approval
// requests carrying an illegal move are rejected before any write
// happens; a status never re-enters pending.
var bookingTransitions = map[string][]string{
	BookingStatusPending:   {BookingStatusApproved, BookingStatusConfirmed},
	BookingStatusApproved:  {BookingStatusConfirmed},
	BookingStatusConfirmed: {},
}

func IsBookingStatus(status string) bool {
	_, ok := bookingTransitions[status]
	return ok
}

// CanTransition reports whether a booking may move from one status to
// another. Only forward moves are legal; a status never re-enters pending.
func CanTransition(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Booking struct {
	ID         string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CourtID    string     `json:"courtId" bson:"courtId" validate:"required,mongodb"`
	CourtName  string     `json:"courtName" bson:"courtName" validate:"required,min=2,max=100"`
	CourtType  string     `json:"courtType,omitempty" bson:"courtType,omitempty" validate:"omitempty,max=50"`
	Slots      []string   `json:"slots" bson:"slots" validate:"required,min=1,dive,min=2,max=40"`
	Price      float64    `json:"price" bson:"price" validate:"required,gt=0"`
	Email      string     `json:"email" bson:"email" validate:"required,email"`
	Status     string     `json:"status" bson:"status" validate:"omitempty,oneof=pending approved confirmed"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt" validate:"omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	PaidAt     *time.Time `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
}

// ApprovalRequest is the payload of PATCH /bookings/approve/:id.
type ApprovalRequest struct {
	Status     string    `json:"status" validate:"required,oneof=approved confirmed"`
	ApprovedAt time.Time `json:"approvedAt" validate:"required"`
	UserEmail  string    `json:"userEmail" validate:"required,email"`
}
