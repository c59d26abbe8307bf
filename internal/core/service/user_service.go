package service

import (
	"context"
	"fmt"

	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) ListUsers(ctx context.Context, identity domain.Identity) ([]*domain.User, error) {
	users, err := s.repo.ListInTenant(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, identity domain.Identity, id string) (*domain.User, error) {
	return s.repo.FindInTenant(ctx, identity, id)
}
