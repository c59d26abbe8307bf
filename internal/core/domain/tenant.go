package domain

import "time"

// Tenant is the isolation boundary for all business records.
type Tenant struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// WorkspaceName is the name given to the tenant created on registration.
func WorkspaceName(owner string) string {
	return owner + "'s Workspace"
}

// Demo account created when SEED_DEMO is enabled.
const (
	DemoTenantID   = "default-tenant"
	DemoTenantName = "Default Organization"
	DemoEmail      = "demo@example.com"
	DemoPassword   = "password123"
	DemoUserName   = "Demo User"
)
