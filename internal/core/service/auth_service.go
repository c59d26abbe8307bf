package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

const dummyPassword = "not-a-real-password"

// AuthService implements registration, login, logout and token verification.
type AuthService struct {
	users      ports.UserRepository
	roles      ports.RoleRepository
	tokens     *TokenManager
	sessions   ports.SessionRecorder
	revoker    ports.TokenRevoker
	bcryptCost int
	log        zerolog.Logger
	now        func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

// AuthOption configures optional collaborators of AuthService.
type AuthOption func(*AuthService)

// WithSessionRecorder sets the sink that receives login audit records.
func WithSessionRecorder(r ports.SessionRecorder) AuthOption {
	return func(s *AuthService) { s.sessions = r }
}

// WithRevoker enables server-side logout through a revocation list.
func WithRevoker(r ports.TokenRevoker) AuthOption {
	return func(s *AuthService) { s.revoker = r }
}

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	tokens *TokenManager,
	log zerolog.Logger,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		users:      users,
		roles:      roles,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
		log:        log,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a tenant and its first user, then signs a token for it.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.NewValidationError("Email and password required", "email", "password")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup user: %w", err)
	}

	role, err := s.roles.FindByName(ctx, domain.DefaultRole)
	if err != nil {
		return nil, fmt.Errorf("register: default role %q: %w", domain.DefaultRole, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	name := strings.TrimSpace(in.Name)
	owner := name
	if owner == "" {
		owner = email
	}

	now := s.now().UTC()
	tenant := &domain.Tenant{Name: domain.WorkspaceName(owner), CreatedAt: now}
	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique index on email settles concurrent registrations that both
	// passed the lookup above.
	if err := s.users.CreateWithTenant(ctx, tenant, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("tenant_id", user.TenantID).Msg("user registered")

	return s.issue(user)
}

// Login checks credentials and issues a token. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.NewValidationError("Email and password required", "email", "password")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.burnCompare(in.Password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.recordSession(ctx, user, in)
	return result, nil
}

// Logout revokes the caller's token when a revocation list is configured.
// Without one, logout is stateless and the token stays valid until it expires.
func (s *AuthService) Logout(ctx context.Context, identity domain.Identity) error {
	if s.revoker == nil || identity.TokenID == "" {
		return nil
	}
	if err := s.revoker.Revoke(ctx, identity.TokenID, identity.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Str("user_id", identity.UserID).Msg("token revoked")
	return nil
}

// Verify parses a bearer token and checks it against the revocation list.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	identity, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	if s.revoker == nil || identity.TokenID == "" {
		return identity, nil
	}

	revoked, err := s.revoker.IsRevoked(ctx, identity.TokenID)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	return identity, nil
}

// Profile returns the caller's own user record.
func (s *AuthService) Profile(ctx context.Context, identity domain.Identity) (*ports.Profile, error) {
	user, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if user.TenantID != identity.TenantID {
		return nil, domain.ErrUserNotFound
	}

	profile := &ports.Profile{UserSummary: summarize(user)}
	if user.Tenant != nil {
		profile.TenantName = user.Tenant.Name
	}
	return profile, nil
}

func (s *AuthService) issue(user *domain.User) (*ports.AuthResult, error) {
	token, exp, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, ExpiresAt: exp, User: summarize(user)}, nil
}

func (s *AuthService) recordSession(ctx context.Context, user *domain.User, in ports.LoginInput) {
	if s.sessions == nil {
		return
	}
	session := &domain.Session{
		UserID:    user.ID,
		TenantID:  user.TenantID,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
		CreatedAt: s.now().UTC(),
	}
	// Audit is best effort: a failure here never fails the login.
	if err := s.sessions.Record(context.WithoutCancel(ctx), session); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record login session")
	}
}

// burnCompare runs a bcrypt comparison against a fixed hash so unknown emails
// take as long as wrong passwords.
func (s *AuthService) burnCompare(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(dummyPassword), s.bcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}

func summarize(u *domain.User) ports.UserSummary {
	return ports.UserSummary{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		TenantID: u.TenantID,
		Role:     u.RoleName(),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
