package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

var errStoreDown = errors.New("store unavailable")

type stubUserRepo struct {
	users   map[string]*domain.User
	tenants map[string]*domain.Tenant
	seq     int
	// raceOnCreate makes CreateWithTenant behave as if a concurrent insert won.
	raceOnCreate bool
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}, tenants: map[string]*domain.Tenant{}}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) CreateWithTenant(_ context.Context, tenant *domain.Tenant, user *domain.User) error {
	if r.raceOnCreate {
		return domain.ErrUserExists
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	r.seq++
	tenant.ID = fmt.Sprintf("tenant-%d", r.seq)
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.TenantID = tenant.ID
	t := *tenant
	r.tenants[tenant.ID] = &t
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := cloneUser(u)
	clone.Tenant = r.tenants[u.TenantID]
	return clone, nil
}

func (r *stubUserRepo) FindInTenant(_ context.Context, identity domain.Identity, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.TenantID != identity.TenantID {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) ListInTenant(_ context.Context, identity domain.Identity) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.TenantID == identity.TenantID {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// addUser inserts a user directly, bypassing registration.
func (r *stubUserRepo) addUser(u *domain.User) {
	r.users[u.ID] = cloneUser(u)
}

type stubRoleRepo struct {
	roles  map[string]*domain.Role
	grants map[string][]string // user id -> permissions
	err    error
}

func newStubRoleRepo() *stubRoleRepo {
	roles := map[string]*domain.Role{}
	for _, name := range domain.SeededRoles() {
		roles[name] = &domain.Role{ID: "role-" + name, Name: name}
	}
	return &stubRoleRepo{roles: roles, grants: map[string][]string{}}
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) PermissionsForUser(_ context.Context, identity domain.Identity) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.grants[identity.UserID], nil
}

type stubSessions struct {
	mu       sync.Mutex
	recorded []*domain.Session
	err      error
}

func (s *stubSessions) Record(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	clone := *session
	s.recorded = append(s.recorded, &clone)
	return nil
}

type stubRevoker struct {
	revoked map[string]time.Time
	err     error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: map[string]time.Time{}}
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[tokenID] = until
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[tokenID]
	return ok, nil
}

type stubImportRepo struct {
	items     map[string]*domain.Import
	seq       int
	createErr error
}

func newStubImportRepo() *stubImportRepo {
	return &stubImportRepo{items: map[string]*domain.Import{}}
}

func (r *stubImportRepo) Create(_ context.Context, imp *domain.Import) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	imp.ID = fmt.Sprintf("import-%d", r.seq)
	clone := *imp
	r.items[imp.ID] = &clone
	return nil
}

func (r *stubImportRepo) FindByID(_ context.Context, identity domain.Identity, id string) (*domain.Import, error) {
	imp, ok := r.items[id]
	if !ok || imp.TenantID != identity.TenantID {
		return nil, domain.ErrImportNotFound
	}
	clone := *imp
	return &clone, nil
}

func (r *stubImportRepo) Update(_ context.Context, identity domain.Identity, imp *domain.Import) error {
	existing, ok := r.items[imp.ID]
	if !ok || existing.TenantID != identity.TenantID {
		return domain.ErrImportNotFound
	}
	clone := *imp
	r.items[imp.ID] = &clone
	return nil
}

func (r *stubImportRepo) List(_ context.Context, identity domain.Identity, page domain.Page) ([]*domain.Import, int64, error) {
	var out []*domain.Import
	for _, imp := range r.items {
		if imp.TenantID == identity.TenantID {
			clone := *imp
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

type stubLeadRepo struct {
	items     []*domain.Lead
	seq       int
	createErr error
}

func (r *stubLeadRepo) Create(_ context.Context, lead *domain.Lead) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	lead.ID = fmt.Sprintf("lead-%d", r.seq)
	clone := *lead
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubLeadRepo) FindByID(_ context.Context, identity domain.Identity, id string) (*domain.Lead, error) {
	for _, l := range r.items {
		if l.ID == id && l.TenantID == identity.TenantID {
			clone := *l
			return &clone, nil
		}
	}
	return nil, domain.ErrLeadNotFound
}

// List mirrors the SQL repository: tenant filter, optional import filter,
// created_at desc, offset/limit.
func (r *stubLeadRepo) List(_ context.Context, identity domain.Identity, f ports.LeadFilter, page domain.Page) ([]*domain.Lead, int64, error) {
	var matched []*domain.Lead
	for _, l := range r.items {
		if l.TenantID != identity.TenantID {
			continue
		}
		if f.ImportID != "" && l.ImportID != f.ImportID {
			continue
		}
		clone := *l
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := page.Offset()
	if start < 0 || start > len(matched) {
		return []*domain.Lead{}, total, nil
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func identityFor(tenantID, userID string) domain.Identity {
	return domain.Identity{TenantID: tenantID, UserID: userID}
}

// fixedClock returns a controllable time source.
type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time         { return c.t }
func (c *fixedClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
