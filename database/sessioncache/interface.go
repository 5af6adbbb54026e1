// Package sessioncache provides the durable key-value storage that survives
// client reloads: the session token, the serialized current-user snapshot,
// and the serialized provider collection. The aggregates write through to
// this cache before returning to their caller.
package sessioncache

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key is absent.
var ErrNotFound = errors.New("cache key not found")

// Cache keys. Per-session keys are built with SessionKey.
const (
	KeyAuthToken = "auth-token"
	KeyUserData  = "user-data"
	KeyProviders = "service-providers"
)

// Cache is a durable string key-value store.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// SessionKey namespaces a cache key by client session ID.
func SessionKey(sessionID, key string) string {
	return key + ":" + sessionID
}
