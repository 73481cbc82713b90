package services

import (
	"context"
	"time"
)

// SessionStore is a session-scoped key-value capability with per-key TTL.
// An entry is present only while its expiry marker is absent or in the
// future; an expired entry is removed lazily at read time.
type SessionStore interface {
	Has(ctx context.Context, key string) bool
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SessionStores hands out the store scoped to one browser session.
// Stores of different sessions never share entries.
type SessionStores interface {
	ForSession(id string) SessionStore
}
