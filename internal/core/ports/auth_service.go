package ports

import (
	"context"
	"time"

	"github.com/leadvault/crm-api/internal/core/domain"
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

// UserSummary is the public projection of a user returned with a token.
type UserSummary struct {
	ID       string
	Email    string
	Name     string
	TenantID string
	Role     string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserSummary
}

// Profile is the caller's own user record with tenant details.
type Profile struct {
	UserSummary
	TenantName string
}

// AuthService defines registration, login and token lifecycle operations.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	Logout(ctx context.Context, identity domain.Identity) error
	Profile(ctx context.Context, identity domain.Identity) (*Profile, error)
}

// TokenVerifier resolves a bearer token into the caller identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// Authorizer answers permission checks for the caller.
type Authorizer interface {
	HasPermission(ctx context.Context, identity domain.Identity, permission string) (bool, error)
}
