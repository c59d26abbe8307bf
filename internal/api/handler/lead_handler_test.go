package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

type stubLeadService struct {
	listFn   func(ctx context.Context, identity domain.Identity, in ports.ListLeadsInput) (*ports.ListLeadsResult, error)
	getFn    func(ctx context.Context, identity domain.Identity, id string) (*domain.Lead, error)
	createFn func(ctx context.Context, identity domain.Identity, in ports.CreateLeadInput) (*domain.Lead, error)
}

func (s *stubLeadService) ListLeads(ctx context.Context, identity domain.Identity, in ports.ListLeadsInput) (*ports.ListLeadsResult, error) {
	return s.listFn(ctx, identity, in)
}

func (s *stubLeadService) GetLead(ctx context.Context, identity domain.Identity, id string) (*domain.Lead, error) {
	return s.getFn(ctx, identity, id)
}

func (s *stubLeadService) CreateLead(ctx context.Context, identity domain.Identity, in ports.CreateLeadInput) (*domain.Lead, error) {
	return s.createFn(ctx, identity, in)
}

func sampleLead() *domain.Lead {
	dob := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	return &domain.Lead{
		ID:        "lead-1",
		TenantID:  testIdentity.TenantID,
		ImportID:  "imp-1",
		Email:     "lead@x.com",
		FirstName: "Lee",
		DOB:       &dob,
		FICOScore: intPtr(720),
		ExtraData: json.RawMessage(`{"source":"web"}`),
		CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestLeadHandler_List(t *testing.T) {
	stub := &stubLeadService{
		listFn: func(_ context.Context, _ domain.Identity, in ports.ListLeadsInput) (*ports.ListLeadsResult, error) {
			if in.ImportID != "imp-1" || in.Page != 2 || in.Limit != 10 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.ListLeadsResult{Items: []*domain.Lead{sampleLead()}, Total: 11, Page: 2, Limit: 10}, nil
		},
	}
	c, rec := newAuthedContext(http.MethodGet, "/api/leads?importId=imp-1&page=2&limit=10", "")

	if err := NewLeadHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp listLeadsResponse
	decode(t, rec, &resp)
	if resp.Pagination.Total != 11 || resp.Pagination.Page != 2 || resp.Pagination.Limit != 10 {
		t.Fatalf("unexpected pagination: %+v", resp.Pagination)
	}
	if len(resp.Leads) != 1 || resp.Leads[0].DOB == nil || *resp.Leads[0].DOB != "1990-04-12" {
		t.Fatalf("unexpected leads: %+v", resp.Leads)
	}
}

func TestLeadHandler_List_BadQuery(t *testing.T) {
	stub := &stubLeadService{
		listFn: func(context.Context, domain.Identity, ports.ListLeadsInput) (*ports.ListLeadsResult, error) {
			mustNotCall(t)
			return nil, nil
		},
	}
	c, _ := newAuthedContext(http.MethodGet, "/api/leads?page=two", "")

	err := NewLeadHandler(stub).List(c)
	assertStatusError(t, err, http.StatusBadRequest)
}

func TestLeadHandler_Get_NotFound(t *testing.T) {
	stub := &stubLeadService{
		getFn: func(context.Context, domain.Identity, string) (*domain.Lead, error) {
			return nil, domain.ErrLeadNotFound
		},
	}
	c, _ := newAuthedContext(http.MethodGet, "/api/leads/lead-b", "")
	c.SetParamNames("id")
	c.SetParamValues("lead-b")

	if err := NewLeadHandler(stub).Get(c); !errors.Is(err, domain.ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestLeadHandler_Create(t *testing.T) {
	stub := &stubLeadService{
		createFn: func(_ context.Context, _ domain.Identity, in ports.CreateLeadInput) (*domain.Lead, error) {
			if in.ImportID != "imp-1" || in.DOB != "1990-04-12" || in.FICOScore == nil || *in.FICOScore != 720 {
				t.Fatalf("unexpected input: %+v", in)
			}
			if string(in.ExtraData) != `{"source":"web"}` {
				t.Fatalf("extra data not forwarded: %s", in.ExtraData)
			}
			return sampleLead(), nil
		},
	}
	body := `{"importId":"imp-1","email":"lead@x.com","firstName":"Lee","dob":"1990-04-12","ficoScore":720,"extraData":{"source":"web"}}`
	c, rec := newAuthedContext(http.MethodPost, "/api/leads", body)

	if err := NewLeadHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	decode(t, rec, &resp)
	extra, ok := resp["extraData"].(map[string]any)
	if !ok || extra["source"] != "web" {
		t.Fatalf("expected extraData object, got %v", resp["extraData"])
	}
}

func TestLeadHandler_Create_MissingImport(t *testing.T) {
	stub := &stubLeadService{
		createFn: func(context.Context, domain.Identity, ports.CreateLeadInput) (*domain.Lead, error) {
			mustNotCall(t)
			return nil, nil
		},
	}
	c, _ := newAuthedContext(http.MethodPost, "/api/leads", `{"email":"lead@x.com"}`)

	err := NewLeadHandler(stub).Create(c)
	assertValidationError(t, err, "importId required")
}

func TestLeadHandler_Create_KeepsRawImportedValues(t *testing.T) {
	stub := &stubLeadService{
		createFn: func(_ context.Context, _ domain.Identity, in ports.CreateLeadInput) (*domain.Lead, error) {
			if in.Email != "n/a" {
				t.Fatalf("email rewritten: %q", in.Email)
			}
			if in.FICOScore == nil || *in.FICOScore != 0 {
				t.Fatalf("fico score sentinel lost: %v", in.FICOScore)
			}
			return sampleLead(), nil
		},
	}
	c, rec := newAuthedContext(http.MethodPost, "/api/leads", `{"importId":"imp-1","email":"n/a","ficoScore":0}`)

	if err := NewLeadHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}
