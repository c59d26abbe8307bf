package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

// ImportRepository implements ports.ImportRepository on gorm.
type ImportRepository struct {
	db *gorm.DB
}

func NewImportRepository(db *gorm.DB) ports.ImportRepository {
	return &ImportRepository{db: db}
}

func (r *ImportRepository) Create(ctx context.Context, imp *domain.Import) error {
	m := importModel{
		ID:           newID(),
		TenantID:     imp.TenantID,
		UserID:       imp.UserID,
		FileName:     imp.FileName,
		FilePath:     imp.FilePath,
		Status:       string(imp.Status),
		TotalRecords: imp.TotalRecords,
		ValidRecords: imp.ValidRecords,
		CreatedAt:    imp.CreatedAt,
		UpdatedAt:    imp.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return fmt.Errorf("insert import: %w", err)
	}
	imp.ID = m.ID
	return nil
}

func (r *ImportRepository) FindByID(ctx context.Context, identity domain.Identity, id string) (*domain.Import, error) {
	var m importModel
	err := r.db.WithContext(ctx).
		Scopes(ScopeToTenant(identity)).
		Preload("User").
		Preload("Errors", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Where("id = ?", id).
		Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrImportNotFound
		}
		return nil, fmt.Errorf("find import: %w", err)
	}
	return toImport(&m), nil
}

func (r *ImportRepository) Update(ctx context.Context, identity domain.Identity, imp *domain.Import) error {
	res := r.db.WithContext(ctx).
		Model(&importModel{}).
		Scopes(ScopeToTenant(identity)).
		Where("id = ?", imp.ID).
		Updates(map[string]any{
			"file_name":     imp.FileName,
			"file_path":     imp.FilePath,
			"status":        string(imp.Status),
			"total_records": imp.TotalRecords,
			"valid_records": imp.ValidRecords,
			"updated_at":    imp.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("update import: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrImportNotFound
	}
	return nil
}

func (r *ImportRepository) List(ctx context.Context, identity domain.Identity, page domain.Page) ([]*domain.Import, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&importModel{}).Scopes(ScopeToTenant(identity))
	}

	q := base().Preload("User").Order("created_at DESC").Order("id DESC")
	if !page.Unbounded() {
		q = q.Offset(page.Offset()).Limit(page.Size)
	}

	var rows []importModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list imports: %w", err)
	}

	total := int64(len(rows))
	if !page.Unbounded() {
		if err := base().Count(&total).Error; err != nil {
			return nil, 0, fmt.Errorf("count imports: %w", err)
		}
	}

	items := make([]*domain.Import, 0, len(rows))
	for i := range rows {
		items = append(items, toImport(&rows[i]))
	}
	return items, total, nil
}
