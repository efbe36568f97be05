package domain

import (
	"context"
	"time"
)

// Role is the coarse-grained permission tag attached to every user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered user of the application.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the authenticated principal carried inside an access
// token. It holds everything the handlers need to authorize a request
// without touching the user store.
type Identity struct {
	UserID int64
	Email  string
	Role   Role
}

// UserRepository defines persistence operations for users.
// Create must fail with ErrDuplicateEmail when the (normalized) email
// is already taken; the uniqueness check belongs to the storage layer,
// not to callers.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id int64, role Role) (*User, error)
}
