package ports

import (
	"context"

	"github.com/leadvault/crm-api/internal/core/domain"
)

// UserService lists and reads the users of the caller's tenant.
type UserService interface {
	ListUsers(ctx context.Context, identity domain.Identity) ([]*domain.User, error)
	GetUser(ctx context.Context, identity domain.Identity, id string) (*domain.User, error)
}
