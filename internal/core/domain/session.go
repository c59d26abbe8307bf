package domain

import "time"

// Session is the audit record written on every successful login. It is
// write-only and never mutated.
type Session struct {
	ID        string
	UserID    string
	TenantID  string
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}
