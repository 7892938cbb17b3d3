package ports

import (
	"context"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

// CreateUserInput carries the fields of an admin-created user account.
type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	Role      domain.Role
	CompanyID string
}

// UpdateUserInput is the allow-listed patch for a user. Nil fields are
// untouched; Password, when set, is hashed before storage.
type UpdateUserInput struct {
	Username  *string
	Email     *string
	Password  *string
	Role      *domain.Role
	CompanyID *string
}

// ListUsersResult is one page of users with pagination metadata.
type ListUsersResult struct {
	Items      []domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService manages user accounts (admin operations).
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, page, limit int) (*ListUsersResult, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
