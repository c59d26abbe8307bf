package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

type ImportService struct {
	repo   ports.ImportRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewImportService(repo ports.ImportRepository, logger zerolog.Logger) *ImportService {
	return &ImportService{repo: repo, logger: logger, now: time.Now}
}

// ListImports returns every import of the caller's tenant, newest first.
func (s *ImportService) ListImports(ctx context.Context, identity domain.Identity) ([]*domain.Import, error) {
	items, _, err := s.repo.List(ctx, identity, domain.AllRows)
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	return items, nil
}

func (s *ImportService) GetImport(ctx context.Context, identity domain.Identity, id string) (*domain.Import, error) {
	return s.repo.FindByID(ctx, identity, id)
}

// CreateImport registers a new pending import owned by the caller.
func (s *ImportService) CreateImport(ctx context.Context, identity domain.Identity, in ports.CreateImportInput) (*domain.Import, error) {
	fileName := strings.TrimSpace(in.FileName)
	filePath := strings.TrimSpace(in.FilePath)
	if fileName == "" || filePath == "" {
		return nil, domain.MissingFields("fileName", "filePath")
	}

	now := s.now().UTC()
	imp := &domain.Import{
		TenantID:  identity.TenantID,
		UserID:    identity.UserID,
		FileName:  fileName,
		FilePath:  filePath,
		Status:    domain.ImportPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, imp); err != nil {
		s.logger.Error().Err(err).Str("tenant_id", identity.TenantID).Msg("failed to create import")
		return nil, fmt.Errorf("create import: %w", err)
	}

	s.logger.Info().Str("import_id", imp.ID).Str("tenant_id", identity.TenantID).Msg("import created")
	return imp, nil
}

// UpdateImport applies a partial update after confirming the import belongs to
// the caller's tenant.
func (s *ImportService) UpdateImport(ctx context.Context, identity domain.Identity, id string, in ports.UpdateImportInput) (*domain.Import, error) {
	if err := validateImportPatch(in); err != nil {
		return nil, err
	}

	imp, err := s.repo.FindByID(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if in.FileName != nil {
		imp.FileName = strings.TrimSpace(*in.FileName)
	}
	if in.FilePath != nil {
		imp.FilePath = strings.TrimSpace(*in.FilePath)
	}
	if in.Status != nil {
		imp.Status = domain.ImportStatus(*in.Status)
	}
	if in.TotalRecords != nil {
		imp.TotalRecords = *in.TotalRecords
	}
	if in.ValidRecords != nil {
		imp.ValidRecords = *in.ValidRecords
	}
	imp.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, identity, imp); err != nil {
		return nil, fmt.Errorf("update import: %w", err)
	}
	return imp, nil
}

func validateImportPatch(in ports.UpdateImportInput) error {
	if in.FileName != nil && strings.TrimSpace(*in.FileName) == "" {
		return domain.NewValidationError("fileName must not be empty", "fileName")
	}
	if in.FilePath != nil && strings.TrimSpace(*in.FilePath) == "" {
		return domain.NewValidationError("filePath must not be empty", "filePath")
	}
	if in.Status != nil && !domain.ImportStatus(*in.Status).Valid() {
		return domain.NewValidationError("status must be one of: pending processing completed failed", "status")
	}
	if in.TotalRecords != nil && *in.TotalRecords < 0 {
		return domain.NewValidationError("totalRecords must not be negative", "totalRecords")
	}
	if in.ValidRecords != nil && *in.ValidRecords < 0 {
		return domain.NewValidationError("validRecords must not be negative", "validRecords")
	}
	return nil
}
