package ports

import (
	"context"
	"encoding/json"

	"github.com/leadvault/crm-api/internal/core/domain"
)

type CreateLeadInput struct {
	ImportID  string
	Phone     string
	Email     string
	FirstName string
	LastName  string
	DOB       string // YYYY-MM-DD or RFC 3339
	FICOScore *int
	City      string
	State     string
	ExtraData json.RawMessage
}

type ListLeadsInput struct {
	ImportID string
	Page     int
	Limit    int
}

// ListLeadsResult is one page of leads plus the pagination echo.
type ListLeadsResult struct {
	Items []*domain.Lead
	Total int64
	Page  int
	Limit int
}

// LeadService defines tenant-scoped operations on leads.
type LeadService interface {
	ListLeads(ctx context.Context, identity domain.Identity, input ListLeadsInput) (*ListLeadsResult, error)
	GetLead(ctx context.Context, identity domain.Identity, id string) (*domain.Lead, error)
	CreateLead(ctx context.Context, identity domain.Identity, input CreateLeadInput) (*domain.Lead, error)
}
