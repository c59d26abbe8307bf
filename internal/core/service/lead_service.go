package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

const dateOnly = "2006-01-02"

type LeadService struct {
	leads   ports.LeadRepository
	imports ports.ImportRepository
	logger  zerolog.Logger
	now     func() time.Time
}

func NewLeadService(leads ports.LeadRepository, imports ports.ImportRepository, logger zerolog.Logger) *LeadService {
	return &LeadService{leads: leads, imports: imports, logger: logger, now: time.Now}
}

// ListLeads returns one page of the tenant's leads, optionally narrowed to a
// single import.
func (s *LeadService) ListLeads(ctx context.Context, identity domain.Identity, in ports.ListLeadsInput) (*ports.ListLeadsResult, error) {
	page := domain.NewPage(in.Page, in.Limit)

	items, total, err := s.leads.List(ctx, identity, ports.LeadFilter{ImportID: in.ImportID}, page)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	return &ports.ListLeadsResult{
		Items: items,
		Total: total,
		Page:  page.Number,
		Limit: page.Size,
	}, nil
}

func (s *LeadService) GetLead(ctx context.Context, identity domain.Identity, id string) (*domain.Lead, error) {
	return s.leads.FindByID(ctx, identity, id)
}

// CreateLead stores a lead under an import of the caller's tenant.
func (s *LeadService) CreateLead(ctx context.Context, identity domain.Identity, in ports.CreateLeadInput) (*domain.Lead, error) {
	importID := strings.TrimSpace(in.ImportID)
	if importID == "" {
		return nil, domain.MissingFields("importId")
	}

	dob, err := parseDOB(in.DOB)
	if err != nil {
		return nil, err
	}
	if len(in.ExtraData) > 0 && !json.Valid(in.ExtraData) {
		return nil, domain.NewValidationError("extraData must be valid JSON", "extraData")
	}

	// A lead inherits its tenant from the import; an import of another tenant
	// is treated as if it did not exist.
	if _, err := s.imports.FindByID(ctx, identity, importID); err != nil {
		if errors.Is(err, domain.ErrImportNotFound) {
			return nil, domain.NewValidationError("importId does not reference an import of this tenant", "importId")
		}
		return nil, fmt.Errorf("create lead: lookup import: %w", err)
	}

	lead := &domain.Lead{
		TenantID:  identity.TenantID,
		ImportID:  importID,
		Phone:     in.Phone,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		DOB:       dob,
		FICOScore: in.FICOScore,
		City:      in.City,
		State:     in.State,
		ExtraData: in.ExtraData,
		CreatedAt: s.now().UTC(),
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		s.logger.Error().Err(err).Str("tenant_id", identity.TenantID).Msg("failed to create lead")
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

func parseDOB(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{dateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, domain.NewValidationError("dob must be a date (YYYY-MM-DD)", "dob")
}
