package domain

import (
	"context"
	"errors"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var (
	// ErrDuplicateEmail is returned by UserRepository.Create when the store
	// already holds a user with the same email.
	ErrDuplicateEmail = errors.New("duplicate email")
	// ErrNotFound is returned by writes that target a missing record.
	ErrNotFound = errors.New("not found")
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Token        string    `json:"-"` // minted at registration, returned as-is at login
	Role         Role      `json:"role"`
	CartID       string    `json:"cart,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserRepository reports a missing user as (nil, nil).
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	SetCart(ctx context.Context, userID, cartID string) error
}
