package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/freightline/shipment-tracker/internal/core/domain"
	"github.com/freightline/shipment-tracker/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users     ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Signup registers a new account. Uniqueness of username/email is enforced by
// the repository's unique indexes; a collision surfaces as a conflict.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		CompanyID:    input.CompanyID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user signed up")
	return created, nil
}

// Login verifies the credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		// Do not reveal whether the username or the password was wrong.
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Warn().Str("username", username).Msg("failed login attempt")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":        user.ID,
		"role":       string(user.Role),
		"company_id": user.CompanyID,
		"exp":        time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
