package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

// RoleRepository reads roles and their permissions.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) ports.RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var m roleModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return toRole(&m), nil
}

// PermissionsForUser resolves caller -> role -> permissions. The user lookup
// goes through the tenant scope, so a token whose user moved tenants gets
// nothing.
func (r *RoleRepository) PermissionsForUser(ctx context.Context, identity domain.Identity) ([]string, error) {
	// Errors raised inside a subquery scope do not reach the outer statement.
	if identity.TenantID == "" {
		return nil, domain.ErrForbidden
	}
	db := r.db.WithContext(ctx)
	roleOfUser := db.Model(&userModel{}).
		Scopes(ScopeToTenant(identity)).
		Select("role_id").
		Where("id = ?", identity.UserID)

	var names []string
	err := db.Model(&permissionModel{}).
		Joins("JOIN role_has_permissions rp ON rp.permission_id = permissions.id").
		Where("rp.role_id IN (?)", roleOfUser).
		Order("permissions.name").
		Pluck("permissions.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("load permissions: %w", err)
	}
	return names, nil
}
