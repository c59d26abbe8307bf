package ports

import (
	"context"

	"github.com/leadvault/crm-api/internal/core/domain"
)

// ImportRepository persists imports. Every read and write is restricted to the
// identity's tenant.
type ImportRepository interface {
	Create(ctx context.Context, imp *domain.Import) error
	// FindByID returns the import with its creator and row errors.
	FindByID(ctx context.Context, identity domain.Identity, id string) (*domain.Import, error)
	// Update writes the mutable fields of imp back; imp must already belong to the tenant.
	Update(ctx context.Context, identity domain.Identity, imp *domain.Import) error
	List(ctx context.Context, identity domain.Identity, page domain.Page) ([]*domain.Import, int64, error)
}
