package domain

import "time"

// Identity is the caller resolved from a verified bearer token. Every
// tenant-scoped read and write takes its tenant from here, never from the
// request payload.
type Identity struct {
	UserID    string
	TenantID  string
	TokenID   string
	ExpiresAt time.Time
}
