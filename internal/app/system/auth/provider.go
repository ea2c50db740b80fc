// internal/app/system/auth/provider.go
package auth

import (
	"context"
	"crypto/sha256"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/tujitume/internal/domain/models"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/bcrypt"
)

// IdentityProvider checks credentials and issues and validates session
// tokens. The Manager never sees passwords or hashes beyond this interface.
type IdentityProvider interface {
	VerifyCredentials(ctx context.Context, email, secret string) (models.AdminUser, bool)
	ValidateToken(ctx context.Context, token string) (models.AdminUser, bool)
	IssueToken(ctx context.Context, user models.AdminUser) (string, error)
}

// Account is one admin known to a StaticProvider.
type Account struct {
	User         models.AdminUser
	PasswordHash []byte
}

// NewAccount hashes password with bcrypt.
func NewAccount(user models.AdminUser, password string) (Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}
	return Account{User: user, PasswordHash: hash}, nil
}

// DefaultAccounts returns the two built-in admin accounts.
func DefaultAccounts() ([]Account, error) {
	seed := []struct {
		user     models.AdminUser
		password string
	}{
		{models.AdminUser{ID: "1", Email: "admin@tujitume.org", Name: "Super Admin", Role: models.RoleSuperAdmin}, "admin123"},
		{models.AdminUser{ID: "2", Email: "staff@tujitume.org", Name: "Staff Admin", Role: models.RoleAdmin}, "staff123"},
	}
	accounts := make([]Account, 0, len(seed))
	for _, s := range seed {
		a, err := NewAccount(s.user, s.password)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 30 * 24 * time.Hour

const tokenName = "tujitume-admin-token"

type tokenClaims struct {
	UserID   string `json:"uid"`
	Email    string `json:"email"`
	IssuedAt int64  `json:"iat"`
	Nonce    string `json:"nonce"`
}

// StaticProvider authenticates against a fixed account list. Tokens are
// signed and encrypted with keys derived from the session key, so they can
// be validated without server-side state.
type StaticProvider struct {
	accounts  []Account
	codec     *securecookie.SecureCookie
	dummyHash []byte
	now       func() time.Time
}

// ErrEmptySessionKey is returned when no session key is configured.
var ErrEmptySessionKey = errors.New("auth: empty session key")

// NewStaticProvider builds a provider. ttl <= 0 uses DefaultTokenTTL.
func NewStaticProvider(sessionKey string, ttl time.Duration, accounts []Account) (*StaticProvider, error) {
	if strings.TrimSpace(sessionKey) == "" {
		return nil, ErrEmptySessionKey
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	hashKey := sha256.Sum256([]byte("hash:" + sessionKey))
	blockKey := sha256.Sum256([]byte("block:" + sessionKey))
	codec := securecookie.New(hashKey[:], blockKey[:])
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(ttl / time.Second))

	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	return &StaticProvider{accounts: accounts, codec: codec, dummyHash: dummy, now: time.Now}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *StaticProvider) byEmail(email string) (Account, bool) {
	email = normalizeEmail(email)
	for _, a := range p.accounts {
		if normalizeEmail(a.User.Email) == email {
			return a, true
		}
	}
	return Account{}, false
}

func (p *StaticProvider) byID(id string) (Account, bool) {
	for _, a := range p.accounts {
		if a.User.ID == id {
			return a, true
		}
	}
	return Account{}, false
}

// VerifyCredentials returns the account's user when email and secret match.
// Unknown emails still run a bcrypt comparison so both failures cost the same.
func (p *StaticProvider) VerifyCredentials(_ context.Context, email, secret string) (models.AdminUser, bool) {
	a, ok := p.byEmail(email)
	hash := p.dummyHash
	if ok {
		hash = a.PasswordHash
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(secret)); err != nil || !ok {
		return models.AdminUser{}, false
	}
	return a.User, true
}

// IssueToken returns a fresh token for user. Every call yields a different
// token.
func (p *StaticProvider) IssueToken(_ context.Context, user models.AdminUser) (string, error) {
	return p.codec.Encode(tokenName, tokenClaims{
		UserID:   user.ID,
		Email:    user.Email,
		IssuedAt: p.now().Unix(),
		Nonce:    uuid.NewString(),
	})
}

// ValidateToken checks the token's signature and age and returns the
// account it was issued for.
func (p *StaticProvider) ValidateToken(_ context.Context, token string) (models.AdminUser, bool) {
	var c tokenClaims
	if err := p.codec.Decode(tokenName, token, &c); err != nil {
		return models.AdminUser{}, false
	}
	a, ok := p.byID(c.UserID)
	if !ok || normalizeEmail(a.User.Email) != normalizeEmail(c.Email) {
		return models.AdminUser{}, false
	}
	return a.User, true
}

var _ IdentityProvider = (*StaticProvider)(nil)
