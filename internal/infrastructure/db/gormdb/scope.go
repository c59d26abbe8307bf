package gormdb

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/leadvault/crm-api/internal/core/domain"
)

// ScopeToTenant restricts a query on a tenant-owned table to the caller's
// tenant. Every tenant-scoped repository query goes through it; a missing
// tenant fails the query instead of matching nothing.
func ScopeToTenant(identity domain.Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if identity.TenantID == "" {
			_ = db.AddError(domain.ErrForbidden)
			return db
		}
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: "tenant_id"},
			Value:  identity.TenantID,
		})
	}
}
