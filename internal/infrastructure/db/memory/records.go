package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

// --- imports ---

type importRepo struct{ s *Store }

func (r importRepo) Create(_ context.Context, imp *domain.Import) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	imp.ID = uuid.NewString()
	stored := *imp
	stored.User, stored.Errors = nil, nil
	r.s.imports[imp.ID] = stored
	r.s.importOrder = append(r.s.importOrder, imp.ID)
	return nil
}

func (r importRepo) FindByID(_ context.Context, identity domain.Identity, id string) (*domain.Import, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	imp, ok := r.s.imports[id]
	if !ok || !inTenant(identity, imp.TenantID) {
		return nil, domain.ErrImportNotFound
	}
	return r.withUser(imp), nil
}

func (r importRepo) Update(_ context.Context, identity domain.Identity, imp *domain.Import) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.imports[imp.ID]
	if !ok || !inTenant(identity, existing.TenantID) {
		return domain.ErrImportNotFound
	}
	existing.FileName = imp.FileName
	existing.FilePath = imp.FilePath
	existing.Status = imp.Status
	existing.TotalRecords = imp.TotalRecords
	existing.ValidRecords = imp.ValidRecords
	existing.UpdatedAt = imp.UpdatedAt
	r.s.imports[imp.ID] = existing
	return nil
}

func (r importRepo) List(_ context.Context, identity domain.Identity, page domain.Page) ([]*domain.Import, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []*domain.Import
	for _, id := range newestFirst(r.s.importOrder) {
		imp := r.s.imports[id]
		if inTenant(identity, imp.TenantID) {
			matched = append(matched, r.withUser(imp))
		}
	}
	return paginate(matched, page)
}

func (r importRepo) withUser(imp domain.Import) *domain.Import {
	if u, ok := r.s.users[imp.UserID]; ok {
		user := u
		imp.User = &user
	}
	return &imp
}

// --- leads ---

type leadRepo struct{ s *Store }

func (r leadRepo) Create(_ context.Context, lead *domain.Lead) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lead.ID = uuid.NewString()
	r.s.leads[lead.ID] = *lead
	r.s.leadOrder = append(r.s.leadOrder, lead.ID)
	return nil
}

func (r leadRepo) FindByID(_ context.Context, identity domain.Identity, id string) (*domain.Lead, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	lead, ok := r.s.leads[id]
	if !ok || !inTenant(identity, lead.TenantID) {
		return nil, domain.ErrLeadNotFound
	}
	return &lead, nil
}

func (r leadRepo) List(_ context.Context, identity domain.Identity, f ports.LeadFilter, page domain.Page) ([]*domain.Lead, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []*domain.Lead
	for _, id := range newestFirst(r.s.leadOrder) {
		lead := r.s.leads[id]
		if !inTenant(identity, lead.TenantID) {
			continue
		}
		if f.ImportID != "" && lead.ImportID != f.ImportID {
			continue
		}
		matched = append(matched, &lead)
	}
	return paginate(matched, page)
}

// newestFirst walks insertion order backwards, which matches created_at desc
// for records created through the services.
func newestFirst(order []string) []string {
	out := make([]string, len(order))
	for i, id := range order {
		out[len(order)-1-i] = id
	}
	return out
}

func paginate[T any](items []T, page domain.Page) ([]T, int64, error) {
	total := int64(len(items))
	if page.Unbounded() {
		if items == nil {
			items = []T{}
		}
		return items, total, nil
	}
	start := page.Offset()
	if start < 0 || start >= len(items) {
		return []T{}, total, nil
	}
	end := min(start+page.Size, len(items))
	return items[start:end], total, nil
}
