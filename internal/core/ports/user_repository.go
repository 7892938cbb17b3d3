package ports

import (
	"context"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

// UserPatch names exactly the mutable user fields. Nil means "leave as is".
// Password must already be hashed by the caller.
type UserPatch struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Role         *domain.Role
	CompanyID    *string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, page, limit int) ([]domain.User, int64, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
