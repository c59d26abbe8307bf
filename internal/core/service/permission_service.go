package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

// PermissionService resolves the caller's role permissions.
type PermissionService struct {
	roles ports.RoleRepository
}

func NewPermissionService(roles ports.RoleRepository) *PermissionService {
	return &PermissionService{roles: roles}
}

func (s *PermissionService) HasPermission(ctx context.Context, identity domain.Identity, permission string) (bool, error) {
	granted, err := s.roles.PermissionsForUser(ctx, identity)
	if err != nil {
		return false, fmt.Errorf("resolve permissions: %w", err)
	}
	return slices.Contains(granted, permission), nil
}
