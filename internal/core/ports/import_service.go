package ports

import (
	"context"

	"github.com/leadvault/crm-api/internal/core/domain"
)

type CreateImportInput struct {
	FileName string
	FilePath string
}

// UpdateImportInput is a partial update; nil fields are left untouched.
type UpdateImportInput struct {
	FileName     *string
	FilePath     *string
	Status       *string
	TotalRecords *int
	ValidRecords *int
}

// ImportService defines tenant-scoped operations on imports.
type ImportService interface {
	ListImports(ctx context.Context, identity domain.Identity) ([]*domain.Import, error)
	GetImport(ctx context.Context, identity domain.Identity, id string) (*domain.Import, error)
	CreateImport(ctx context.Context, identity domain.Identity, input CreateImportInput) (*domain.Import, error)
	UpdateImport(ctx context.Context, identity domain.Identity, id string, input UpdateImportInput) (*domain.Import, error)
}
