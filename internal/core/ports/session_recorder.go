package ports

import (
	"context"
	"time"

	"github.com/leadvault/crm-api/internal/core/domain"
)

// SessionRecorder stores login audit records.
type SessionRecorder interface {
	Record(ctx context.Context, session *domain.Session) error
}

// TokenRevoker keeps the list of token ids invalidated by logout.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
