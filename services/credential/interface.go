// Package credential abstracts the external identity provider behind a
// capability interface. A single initialization-time probe selects either
// the live Firebase adapter or the deterministic local adapter; the chosen
// backend is injected into the session aggregate, which never checks
// availability itself.
package credential

import (
	"context"
	"sync"
)

// Identity is the minimal identity a backend reports for a signed-in user.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// Listener receives out-of-band identity change notifications. A nil
// identity means the backend reports signed-out.
type Listener func(identity *Identity)

// Backend is the credential-backend contract. Explicit operations return
// their identity directly to the caller; the listener channel carries only
// out-of-band reports (revocations, external sign-outs). One backend is
// shared by every session, so results of one session's operations must
// never be broadcast to the others.
type Backend interface {
	// CreateAccount registers a new account.
	CreateAccount(ctx context.Context, email, password, displayName string) (*Identity, error)
	// Verify checks credentials and returns the account's identity.
	Verify(ctx context.Context, email, password string) (*Identity, error)
	// SignOut revokes the account's session and reports signed-out to
	// listeners.
	SignOut(ctx context.Context, uid string) error
	// OnChange registers an out-of-band change listener and returns an
	// unsubscribe function.
	OnChange(l Listener) (unsubscribe func())
	// Token returns a renewable session token for the identity.
	Token(ctx context.Context, id *Identity) (string, error)
}

// notifier implements the OnChange listener registry shared by adapters.
type notifier struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
}

func (n *notifier) OnChange(l Listener) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.listeners == nil {
		n.listeners = make(map[int]Listener)
	}
	id := n.nextID
	n.nextID++
	n.listeners[id] = l
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}

func (n *notifier) notify(id *Identity) {
	n.mu.Lock()
	snapshot := make([]Listener, 0, len(n.listeners))
	for _, l := range n.listeners {
		snapshot = append(snapshot, l)
	}
	n.mu.Unlock()
	for _, l := range snapshot {
		l(id)
	}
}
