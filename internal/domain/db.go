package domain

import (
	"context"
	"encoding/json"
)

// Persisted snapshot keys, one JSON document each.
const (
	KeyUsers         = "users"
	KeySwapRequests  = "swapRequests"
	KeyRatings       = "ratings"
	KeyCurrentUser   = "currentUser"
	KeyAdminMessages = "adminMessages"
)

// SnapshotKeys lists every persisted key in load order.
var SnapshotKeys = []string{KeyUsers, KeySwapRequests, KeyRatings, KeyCurrentUser, KeyAdminMessages}

// SnapshotStore is durable key -> JSON storage for the application state.
// Get returns ErrNotFound for a key that was never written.
// Each implementation (SQLite, Redis, memory) owns its own setup.
type SnapshotStore interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Put(ctx context.Context, key string, value json.RawMessage) error
	Delete(ctx context.Context, keys ...string) error
}

// Database defines lifecycle operations for a snapshot backend.
type Database interface {
	SnapshotStore
	Migrate(ctx context.Context) error
	Close() error
}
