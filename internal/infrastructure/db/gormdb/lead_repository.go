package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

// LeadRepository implements ports.LeadRepository on gorm.
type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) ports.LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	m := fromLead(lead)
	m.ID = newID()
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	lead.ID = m.ID
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, identity domain.Identity, id string) (*domain.Lead, error) {
	var m leadModel
	err := r.db.WithContext(ctx).
		Scopes(ScopeToTenant(identity)).
		Where("id = ?", id).
		Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return toLead(&m), nil
}

// List counts the full match first, then fetches one page newest first.
func (r *LeadRepository) List(ctx context.Context, identity domain.Identity, f ports.LeadFilter, page domain.Page) ([]*domain.Lead, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&leadModel{}).Scopes(ScopeToTenant(identity))
		if f.ImportID != "" {
			q = q.Where("import_id = ?", f.ImportID)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	var rows []leadModel
	err := base().
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}

	items := make([]*domain.Lead, 0, len(rows))
	for i := range rows {
		items = append(items, toLead(&rows[i]))
	}
	return items, total, nil
}
