package entity

type UserRole string

const (
	RoleGuest UserRole = "guest"
	// RoleAdmin is the operator role: it may act on any booking and manage
	// the catalog.
	RoleAdmin UserRole = "admin"
)

type User struct {
	Base
	Name     string   `db:"name"`
	Email    string   `db:"email"`
	Phone    *string  `db:"phone"`
	Role     UserRole `db:"role"`
	IsActive bool     `db:"is_active"`
}
