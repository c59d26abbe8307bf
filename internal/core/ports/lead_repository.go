package ports

import (
	"context"

	"github.com/leadvault/crm-api/internal/core/domain"
)

// LeadFilter narrows a lead listing inside the caller's tenant.
type LeadFilter struct {
	ImportID string // optional
}

// LeadRepository persists leads, always restricted to the identity's tenant.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	FindByID(ctx context.Context, identity domain.Identity, id string) (*domain.Lead, error)
	// List returns one page ordered by created_at desc and the full matching count.
	List(ctx context.Context, identity domain.Identity, filter LeadFilter, page domain.Page) ([]*domain.Lead, int64, error)
}
