package usecase

import (
	"hotel-booking/internal/data/entity"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a booking operation.
type Actor struct {
	UserID uuid.UUID
	Role   entity.UserRole
}

func (a Actor) IsOperator() bool {
	return a.Role == entity.RoleAdmin
}

// CanAccess reports whether a may read or change b.
func (a Actor) CanAccess(b *entity.Booking) bool {
	return a.IsOperator() || a.UserID == b.UserID
}
