package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
	"github.com/leadvault/crm-api/internal/infrastructure/db/memory"
)

type leadFixture struct {
	imports *stubImportRepo
	leads   *stubLeadRepo
	svc     *LeadService
}

func newLeadFixture() *leadFixture {
	f := &leadFixture{imports: newStubImportRepo(), leads: &stubLeadRepo{}}
	f.svc = NewLeadService(f.leads, f.imports, discardLogger)
	return f
}

func (f *leadFixture) importFor(t *testing.T, tenantID string) string {
	t.Helper()
	imp := &domain.Import{TenantID: tenantID, UserID: "u", FileName: "f", FilePath: "p", Status: domain.ImportPending}
	if err := f.imports.Create(context.Background(), imp); err != nil {
		t.Fatalf("seed import: %v", err)
	}
	return imp.ID
}

func TestLeadService_Create_Success(t *testing.T) {
	f := newLeadFixture()
	importID := f.importFor(t, "t1")
	score := 720

	lead, err := f.svc.CreateLead(context.Background(), identityFor("t1", "u1"), ports.CreateLeadInput{
		ImportID:  importID,
		FirstName: "Ann",
		DOB:       "1990-04-12",
		FICOScore: &score,
		ExtraData: json.RawMessage(`{"source":"fair"}`),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if lead.TenantID != "t1" {
		t.Errorf("tenant not taken from identity: %q", lead.TenantID)
	}
	if lead.DOB == nil || lead.DOB.Format(dateOnly) != "1990-04-12" {
		t.Errorf("dob not parsed: %v", lead.DOB)
	}
	if lead.FICOScore == nil || *lead.FICOScore != 720 {
		t.Errorf("fico score lost: %v", lead.FICOScore)
	}
}

func TestLeadService_Create_RequiresImportID(t *testing.T) {
	f := newLeadFixture()

	_, err := f.svc.CreateLead(context.Background(), identityFor("t1", "u1"), ports.CreateLeadInput{FirstName: "Ann"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Error() != "importId required" {
		t.Fatalf("expected 'importId required', got %v", err)
	}
	if len(f.leads.items) != 0 {
		t.Fatal("nothing should be stored")
	}
}

func TestLeadService_Create_ImportOfOtherTenant(t *testing.T) {
	f := newLeadFixture()
	foreign := f.importFor(t, "t2")

	_, err := f.svc.CreateLead(context.Background(), identityFor("t1", "u1"), ports.CreateLeadInput{ImportID: foreign})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(f.leads.items) != 0 {
		t.Fatal("nothing should be stored")
	}
}

func TestLeadService_Create_BadInput(t *testing.T) {
	f := newLeadFixture()
	importID := f.importFor(t, "t1")

	inputs := []ports.CreateLeadInput{
		{ImportID: importID, DOB: "12/04/1990"},
		{ImportID: importID, ExtraData: json.RawMessage(`{broken`)},
	}
	for _, in := range inputs {
		var ve *domain.ValidationError
		if _, err := f.svc.CreateLead(context.Background(), identityFor("t1", "u1"), in); !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError for %+v, got %v", in, err)
		}
	}
}

func TestLeadService_List_SecondPage(t *testing.T) {
	f := newLeadFixture()
	importID := f.importFor(t, "t1")
	caller := identityFor("t1", "u1")
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// 25 leads, lead i created i minutes after base.
	for i := 0; i < 25; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		f.svc.now = func() time.Time { return ts }
		if _, err := f.svc.CreateLead(context.Background(), caller, ports.CreateLeadInput{ImportID: importID}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	res, err := f.svc.ListLeads(context.Background(), caller, ports.ListLeadsInput{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 25 {
		t.Errorf("expected total 25, got %d", res.Total)
	}
	if res.Page != 2 || res.Limit != 10 {
		t.Errorf("unexpected pagination echo: page=%d limit=%d", res.Page, res.Limit)
	}
	if len(res.Items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(res.Items))
	}
	// Newest first: items 11-20 are minutes 14 down to 5.
	if want := base.Add(14 * time.Minute); !res.Items[0].CreatedAt.Equal(want) {
		t.Errorf("first item created at %v, want %v", res.Items[0].CreatedAt, want)
	}
	if want := base.Add(5 * time.Minute); !res.Items[9].CreatedAt.Equal(want) {
		t.Errorf("last item created at %v, want %v", res.Items[9].CreatedAt, want)
	}
}

func TestLeadService_List_Defaults(t *testing.T) {
	f := newLeadFixture()

	res, err := f.svc.ListLeads(context.Background(), identityFor("t1", "u1"), ports.ListLeadsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Page != 1 || res.Limit != domain.DefaultPageSize {
		t.Fatalf("expected page 1 limit %d, got page %d limit %d", domain.DefaultPageSize, res.Page, res.Limit)
	}
}

func TestLeadService_List_LimitCappedAt100(t *testing.T) {
	f := newLeadFixture()

	res, _ := f.svc.ListLeads(context.Background(), identityFor("t1", "u1"), ports.ListLeadsInput{Limit: 5000})
	if res.Limit != domain.MaxPageSize {
		t.Fatalf("expected limit %d, got %d", domain.MaxPageSize, res.Limit)
	}
}

func TestLeadService_List_HugePageIsPastTheEnd(t *testing.T) {
	store := memory.New()
	svc := NewLeadService(store.Leads(), store.Imports(), discardLogger)
	ctx := context.Background()
	id := identityFor("t1", "u1")

	imp := &domain.Import{TenantID: "t1", UserID: "u1", FileName: "f", FilePath: "p", Status: domain.ImportPending}
	if err := store.Imports().Create(ctx, imp); err != nil {
		t.Fatalf("seed import: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := svc.CreateLead(ctx, id, ports.CreateLeadInput{ImportID: imp.ID}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	res, err := svc.ListLeads(ctx, id, ports.ListLeadsInput{Page: 1 << 62, Limit: 4})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Items) != 0 {
		t.Errorf("expected no items past the end, got %d", len(res.Items))
	}
	if res.Total != 5 {
		t.Errorf("expected total 5, got %d", res.Total)
	}
	if res.Page != domain.MaxPageNumber || res.Limit != 4 {
		t.Errorf("unexpected pagination echo: page=%d limit=%d", res.Page, res.Limit)
	}
}

func TestLeadService_TenantIsolation(t *testing.T) {
	f := newLeadFixture()
	a, b := identityFor("tA", "uA"), identityFor("tB", "uB")

	leadA, err := f.svc.CreateLead(context.Background(), a, ports.CreateLeadInput{ImportID: f.importFor(t, "tA")})
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	leadB, err := f.svc.CreateLead(context.Background(), b, ports.CreateLeadInput{ImportID: f.importFor(t, "tB")})
	if err != nil {
		t.Fatalf("create B: %v", err)
	}

	res, _ := f.svc.ListLeads(context.Background(), a, ports.ListLeadsInput{})
	if len(res.Items) != 1 || res.Items[0].ID != leadA.ID {
		t.Fatalf("tenant A should only see its own lead, got %+v", res.Items)
	}
	if _, err := f.svc.GetLead(context.Background(), a, leadB.ID); !errors.Is(err, domain.ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestLeadService_List_FilterByImport(t *testing.T) {
	f := newLeadFixture()
	caller := identityFor("t1", "u1")
	first, second := f.importFor(t, "t1"), f.importFor(t, "t1")

	_, _ = f.svc.CreateLead(context.Background(), caller, ports.CreateLeadInput{ImportID: first})
	_, _ = f.svc.CreateLead(context.Background(), caller, ports.CreateLeadInput{ImportID: second})

	res, _ := f.svc.ListLeads(context.Background(), caller, ports.ListLeadsInput{ImportID: second})
	if res.Total != 1 || res.Items[0].ImportID != second {
		t.Fatalf("import filter not applied: %+v", res.Items)
	}
}
