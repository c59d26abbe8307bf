package gormdb

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/leadvault/crm-api/internal/core/domain"
)

// SeedRoles upserts the static role/permission table. It is safe to run on
// every start.
func SeedRoles(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		permIDs := make(map[string]string, len(domain.PermissionCatalogue))
		for _, p := range domain.PermissionCatalogue {
			var m permissionModel
			err := tx.Where(permissionModel{Name: p.Name}).
				Attrs(permissionModel{ID: newID(), Description: p.Description}).
				FirstOrCreate(&m).Error
			if err != nil {
				return fmt.Errorf("seed permission %s: %w", p.Name, err)
			}
			permIDs[p.Name] = m.ID
		}

		for _, name := range domain.SeededRoles() {
			var role roleModel
			err := tx.Where(roleModel{Name: name}).
				Attrs(roleModel{ID: newID(), Description: domain.RoleDescriptions[name]}).
				FirstOrCreate(&role).Error
			if err != nil {
				return fmt.Errorf("seed role %s: %w", name, err)
			}

			links := make([]rolePermissionModel, 0, len(domain.RoleGrants[name]))
			for _, perm := range domain.RoleGrants[name] {
				links = append(links, rolePermissionModel{RoleID: role.ID, PermissionID: permIDs[perm]})
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
				return fmt.Errorf("seed grants for %s: %w", name, err)
			}
		}
		return nil
	})
}

// SeedDemo creates the demo tenant and its admin user when they are missing.
func SeedDemo(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var admin roleModel
		if err := tx.Where("name = ?", domain.RoleAdmin).Take(&admin).Error; err != nil {
			return fmt.Errorf("seed demo: admin role: %w", err)
		}

		now := time.Now().UTC()
		tenant := tenantModel{ID: domain.DemoTenantID, Name: domain.DemoTenantName, CreatedAt: now}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tenant).Error; err != nil {
			return fmt.Errorf("seed demo tenant: %w", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(domain.DemoPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed demo: hash: %w", err)
		}
		var user userModel
		err = tx.Where(userModel{Email: domain.DemoEmail}).
			Attrs(userModel{
				ID:           newID(),
				PasswordHash: string(hash),
				Name:         domain.DemoUserName,
				TenantID:     domain.DemoTenantID,
				RoleID:       admin.ID,
				CreatedAt:    now,
				UpdatedAt:    now,
			}).
			FirstOrCreate(&user).Error
		if err != nil {
			return fmt.Errorf("seed demo user: %w", err)
		}
		return nil
	})
}
