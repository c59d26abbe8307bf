package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

// UserRepository implements ports.UserRepository on gorm.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

// CreateWithTenant inserts the tenant and the user in one transaction.
func (r *UserRepository) CreateWithTenant(ctx context.Context, tenant *domain.Tenant, user *domain.User) error {
	tm := tenantModel{ID: newID(), Name: tenant.Name, CreatedAt: tenant.CreatedAt}
	um := userModel{
		ID:           newID(),
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Name:         user.Name,
		TenantID:     tm.ID,
		RoleID:       user.RoleID,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tm).Error; err != nil {
			return err
		}
		return tx.Create(&um).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	tenant.ID = tm.ID
	user.ID = um.ID
	user.TenantID = tm.ID
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("email = ?", email).
		Take(&m).Error
	if err != nil {
		return nil, userErr(err)
	}
	return toUser(&m), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Tenant").
		Where("id = ?", id).
		Take(&m).Error
	if err != nil {
		return nil, userErr(err)
	}
	return toUser(&m), nil
}

func (r *UserRepository) FindInTenant(ctx context.Context, identity domain.Identity, id string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).
		Scopes(ScopeToTenant(identity)).
		Preload("Role").
		Where("id = ?", id).
		Take(&m).Error
	if err != nil {
		return nil, userErr(err)
	}
	return toUser(&m), nil
}

func (r *UserRepository) ListInTenant(ctx context.Context, identity domain.Identity) ([]*domain.User, error) {
	var rows []userModel
	err := r.db.WithContext(ctx).
		Scopes(ScopeToTenant(identity)).
		Preload("Role").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, toUser(&rows[i]))
	}
	return users, nil
}

func userErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("find user: %w", err)
}
