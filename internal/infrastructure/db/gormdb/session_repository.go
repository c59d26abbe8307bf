package gormdb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

// SessionRepository appends login audit records to the sessions table.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) ports.SessionRecorder {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Record(ctx context.Context, s *domain.Session) error {
	m := sessionModel{
		ID:        newID(),
		UserID:    s.UserID,
		TenantID:  s.TenantID,
		IPAddress: s.IPAddress,
		UserAgent: s.UserAgent,
		CreatedAt: s.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	s.ID = m.ID
	return nil
}
