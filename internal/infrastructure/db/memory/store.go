// Package memory is a process-local implementation of every repository port.
// It backs DB_DRIVER=memory for local runs and the end-to-end HTTP tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

// Store keeps all records in maps guarded by a single RWMutex.
type Store struct {
	mu          sync.RWMutex
	tenants     map[string]domain.Tenant
	users       map[string]domain.User
	roles       map[string]domain.Role // by name
	grants      map[string][]string    // role name -> permissions
	sessions    []domain.Session
	imports     map[string]domain.Import
	leads       map[string]domain.Lead
	importOrder []string
	leadOrder   []string
}

// New returns a store with the static role/permission table already seeded.
func New() *Store {
	s := &Store{
		tenants: map[string]domain.Tenant{},
		users:   map[string]domain.User{},
		roles:   map[string]domain.Role{},
		grants:  map[string][]string{},
		imports: map[string]domain.Import{},
		leads:   map[string]domain.Lead{},
	}
	for _, name := range domain.SeededRoles() {
		s.roles[name] = domain.Role{ID: uuid.NewString(), Name: name, Description: domain.RoleDescriptions[name]}
		s.grants[name] = slices.Clone(domain.RoleGrants[name])
	}
	return s
}

// inTenant is the store's tenant policy; every scoped lookup goes through it.
func inTenant(identity domain.Identity, tenantID string) bool {
	return identity.TenantID != "" && identity.TenantID == tenantID
}

// Users returns the credential store view.
func (s *Store) Users() ports.UserRepository { return userRepo{s} }

// Roles returns the role/permission view.
func (s *Store) Roles() ports.RoleRepository { return roleRepo{s} }

// Imports returns the import repository view.
func (s *Store) Imports() ports.ImportRepository { return importRepo{s} }

// Leads returns the lead repository view.
func (s *Store) Leads() ports.LeadRepository { return leadRepo{s} }

// Sessions returns the audit sink view.
func (s *Store) Sessions() ports.SessionRecorder { return sessionRepo{s} }

// SessionCount reports how many login sessions were recorded.
func (s *Store) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// AssignRole changes a user's role; used to promote seeded accounts.
func (s *Store) AssignRole(userID, roleName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	role, ok := s.roles[roleName]
	if !ok {
		return domain.ErrRoleNotFound
	}
	u.RoleID = role.ID
	s.users[userID] = u
	return nil
}

func (s *Store) roleByID(id string) *domain.Role {
	for _, r := range s.roles {
		if r.ID == id {
			role := r
			return &role
		}
	}
	return nil
}

// withRelations returns a copy of u with role and tenant attached.
func (s *Store) withRelations(u domain.User) *domain.User {
	u.Role = s.roleByID(u.RoleID)
	if t, ok := s.tenants[u.TenantID]; ok {
		tenant := t
		u.Tenant = &tenant
	}
	return &u
}

// --- users ---

type userRepo struct{ s *Store }

func (r userRepo) CreateWithTenant(_ context.Context, tenant *domain.Tenant, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	tenant.ID = uuid.NewString()
	user.ID = uuid.NewString()
	user.TenantID = tenant.ID

	r.s.tenants[tenant.ID] = *tenant
	stored := *user
	stored.Role, stored.Tenant = nil, nil
	r.s.users[user.ID] = stored
	return nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return r.s.withRelations(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r userRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.s.withRelations(u), nil
}

func (r userRepo) FindInTenant(_ context.Context, identity domain.Identity, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok || !inTenant(identity, u.TenantID) {
		return nil, domain.ErrUserNotFound
	}
	return r.s.withRelations(u), nil
}

func (r userRepo) ListInTenant(_ context.Context, identity domain.Identity) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*domain.User{}
	for _, u := range r.s.users {
		if inTenant(identity, u.TenantID) {
			out = append(out, r.s.withRelations(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// --- roles ---

type roleRepo struct{ s *Store }

func (r roleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	role, ok := r.s.roles[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return &role, nil
}

func (r roleRepo) PermissionsForUser(_ context.Context, identity domain.Identity) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[identity.UserID]
	if !ok || !inTenant(identity, u.TenantID) {
		return nil, nil
	}
	role := r.s.roleByID(u.RoleID)
	if role == nil {
		return nil, nil
	}
	return slices.Clone(r.s.grants[role.Name]), nil
}

// --- sessions ---

type sessionRepo struct{ s *Store }

func (r sessionRepo) Record(_ context.Context, session *domain.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session.ID = uuid.NewString()
	r.s.sessions = append(r.s.sessions, *session)
	return nil
}

// SeedDemo adds the demo tenant and its admin user unless the email is taken.
func (s *Store) SeedDemo(_ context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(domain.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed demo: hash: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == domain.DemoEmail {
			return nil
		}
	}

	now := time.Now().UTC()
	s.tenants[domain.DemoTenantID] = domain.Tenant{ID: domain.DemoTenantID, Name: domain.DemoTenantName, CreatedAt: now}
	id := uuid.NewString()
	s.users[id] = domain.User{
		ID:           id,
		Email:        domain.DemoEmail,
		Name:         domain.DemoUserName,
		PasswordHash: string(hash),
		TenantID:     domain.DemoTenantID,
		RoleID:       s.roles[domain.RoleAdmin].ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return nil
}
