package cache

import (
	"context"
	"errors"
	"time"
)

// Cache key names shared with the frontend's previous localStorage/cookie
// layout, kept so existing clients keep their entries.
const (
	KeyTheme         = "stg-theme"
	KeyUserPrefs     = "stg-user-prefs"
	KeyCartCache     = "stg-cart-cache"
	KeySearchHistory = "stg-search-history"
)

// Entry lifetimes. Volatile entries pass TTL 0 (no expiry).
const (
	UserPrefsTTL    = 30 * 24 * time.Hour
	CartSnapshotTTL = 7 * 24 * time.Hour
)

// ErrNotFound signals an absent key. A miss is not a failure; callers fall
// back to the remote store.
var ErrNotFound = errors.New("cache: key not found")

// Store is a narrow key-value capability. Two implementations exist: a
// volatile in-process store and a durable store with per-entry expiry.
// Writes are best-effort; callers on non-critical paths ignore the error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}
