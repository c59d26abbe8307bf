package ports

import (
	"context"

	"github.com/leadvault/crm-api/internal/core/domain"
)

// UserRepository is the credential store. Lookups by email are global because
// email is unique across tenants; everything else is tenant scoped.
type UserRepository interface {
	// CreateWithTenant persists a new tenant and its first user atomically.
	// A duplicate email yields domain.ErrUserExists.
	CreateWithTenant(ctx context.Context, tenant *domain.Tenant, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID loads the user with its role and tenant.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindInTenant loads a user only when it belongs to the caller's tenant.
	FindInTenant(ctx context.Context, identity domain.Identity, id string) (*domain.User, error)
	ListInTenant(ctx context.Context, identity domain.Identity) ([]*domain.User, error)
}

// RoleRepository reads the static role/permission table.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	// PermissionsForUser returns the permission names granted to the caller's role.
	PermissionsForUser(ctx context.Context, identity domain.Identity) ([]string, error)
}
