package ports

import (
	"context"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

// SignupInput carries self-registration data. Role is a member of the closed
// role set; CompanyID is optional (its relevance depends on the role).
type SignupInput struct {
	Username  string
	Email     string
	Password  string
	Role      domain.Role
	CompanyID string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string
	User  *domain.User
}

// AuthService implements registration and login.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
