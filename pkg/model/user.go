package model

import "time"

const (
	RoleUser   = "user"
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type User struct {
	ID         string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name       string     `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email      string     `json:"email" bson:"email" validate:"required,email"`
	Role       string     `json:"role" bson:"role" validate:"omitempty,oneof=user member admin"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt" validate:"omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
}
