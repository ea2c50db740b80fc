// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/dalemusser/tujitume/internal/app/store/slots"
	"github.com/dalemusser/tujitume/internal/app/system/auditlog"
	"github.com/dalemusser/tujitume/internal/app/system/metrics"
	"github.com/dalemusser/tujitume/internal/app/system/ratelimit"
	"github.com/dalemusser/tujitume/internal/app/system/timeouts"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session state                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// State is the session manager's position in its lifecycle.
type State int

const (
	// StateUnknown: the persisted session has not been checked yet.
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Manager owns the signed-in admin. The user record and token are stored in
// two slots that are always written and cleared in one batch, so a stored
// session has both or neither.
type Manager struct {
	mu       sync.RWMutex
	slots    slots.Store
	provider IdentityProvider
	log      *zap.Logger
	audit    *auditlog.Logger
	metrics  *metrics.Metrics
	limiter  *ratelimit.LoginLimiter

	state State
	user  *models.AdminUser
}

type Option func(*Manager)

func WithAudit(a *auditlog.Logger) Option { return func(m *Manager) { m.audit = a } }
func WithMetrics(mt *metrics.Metrics) Option { return func(m *Manager) { m.metrics = mt } }
func WithLimiter(l *ratelimit.LoginLimiter) Option { return func(m *Manager) { m.limiter = l } }

// NewManager returns a manager in StateUnknown. Call Init before use.
func NewManager(st slots.Store, provider IdentityProvider, logger *zap.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{slots: st, provider: provider, log: logger}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

/*─────────────────────────────────────────────────────────────────────────────*
| Transitions                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// Init restores a persisted session. A complete pair whose token the
// provider accepts for the same user authenticates; a half pair, a malformed
// user record or a rejected token clears both slots. Every failure ends in
// StateAnonymous.
func (m *Manager) Init(ctx context.Context) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Slot(), m.log, "restore admin session")
	defer cancel()

	m.user = nil
	m.state = StateAnonymous

	rawUser, hasUser, err := m.slots.Get(ctx, slots.KeyAdminUser)
	if err != nil {
		m.log.Warn("read admin session", zap.Error(err))
		return m.state
	}
	rawToken, hasToken, err := m.slots.Get(ctx, slots.KeyAdminToken)
	if err != nil {
		m.log.Warn("read admin session token", zap.Error(err))
		return m.state
	}

	switch {
	case !hasUser && !hasToken:
		return m.state
	case hasUser != hasToken:
		m.clearLocked(ctx, "incomplete session")
		return m.state
	}

	var stored models.AdminUser
	if err := json.Unmarshal(rawUser, &stored); err != nil || !stored.Valid() {
		m.clearLocked(ctx, "malformed user record")
		return m.state
	}
	user, ok := m.provider.ValidateToken(ctx, string(rawToken))
	if !ok || user.ID != stored.ID {
		m.clearLocked(ctx, "token rejected")
		return m.state
	}

	m.user = &user
	m.state = StateAuthenticated
	m.audit.SessionRestored(ctx, user)
	return m.state
}

// Login authenticates email and password. It reports only success or
// failure: unknown email, wrong password and rate limiting look the same.
// On failure the current state is unchanged.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.limiter.Check(email) {
		m.metrics.Login("limited")
		m.audit.LoginFailedRateLimit(ctx, email)
		return false
	}

	user, ok := m.provider.VerifyCredentials(ctx, email, password)
	if !ok {
		m.log.Info("admin login failed",
			zap.String("email", email),
			zap.Int("attempts_left", m.limiter.Remaining(email)),
		)
		m.metrics.Login("failure")
		m.audit.LoginFailed(ctx, email)
		return false
	}

	token, err := m.provider.IssueToken(ctx, user)
	if err != nil {
		m.log.Error("issue admin token", zap.Error(err))
		m.metrics.Login("failure")
		return false
	}
	rawUser, err := json.Marshal(user)
	if err != nil {
		m.log.Error("encode admin user", zap.Error(err))
		m.metrics.Login("failure")
		return false
	}

	wctx, cancel := timeouts.WithTimeout(ctx, timeouts.Slot(), m.log, "persist admin session")
	defer cancel()
	batch := slots.NewBatch().
		Put(slots.KeyAdminUser, rawUser).
		Put(slots.KeyAdminToken, []byte(token))
	if err := m.slots.Apply(wctx, batch); err != nil {
		m.log.Error("persist admin session", zap.Error(err))
		m.metrics.PersistFailure(slots.KeyAdminUser)
		m.metrics.Login("failure")
		return false
	}

	m.user = &user
	m.state = StateAuthenticated
	m.limiter.ResetEmail(email)
	m.metrics.Login("success")
	m.audit.LoginSuccess(ctx, user)
	return true
}

// Logout clears the persisted session and the in-memory user. It always
// succeeds; a failed slot write is logged.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.user
	m.user = nil
	m.state = StateAnonymous

	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Slot(), m.log, "clear admin session")
	defer cancel()
	if err := m.slots.Apply(ctx, clearBatch()); err != nil {
		m.log.Error("clear admin session", zap.Error(err))
		m.metrics.PersistFailure(slots.KeyAdminUser)
	}
	if prev != nil {
		m.audit.Logout(ctx, *prev)
	}
}

func clearBatch() *slots.Batch {
	return slots.NewBatch().Delete(slots.KeyAdminUser).Delete(slots.KeyAdminToken)
}

func (m *Manager) clearLocked(ctx context.Context, reason string) {
	m.log.Info("discarding persisted admin session", zap.String("reason", reason))
	if err := m.slots.Apply(ctx, clearBatch()); err != nil {
		m.log.Error("clear admin session", zap.Error(err))
		m.metrics.PersistFailure(slots.KeyAdminUser)
	}
	m.audit.SessionCleared(ctx, reason)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Queries                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsAuthenticated reports whether an admin is signed in.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// CurrentUser returns the signed-in admin and a “found?” flag.
func (m *Manager) CurrentUser() (models.AdminUser, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return models.AdminUser{}, false
	}
	return *m.user, true
}

// HasRole reports whether the signed-in admin has one of the roles.
// Role names compare case-insensitively.
func (m *Manager) HasRole(allowed ...models.Role) bool {
	u, ok := m.CurrentUser()
	if !ok {
		return false
	}
	for _, r := range allowed {
		if strings.EqualFold(string(r), string(u.Role)) {
			return true
		}
	}
	return false
}
