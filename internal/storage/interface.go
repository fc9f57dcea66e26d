package storage

import "context"

// Well-known keys for persisted session state. A restored session is only
// valid when both are present.
const (
	TokenKey = "auth_token"
	UserKey  = "current_user"
)

// Store is best-effort persistent key-value state for the client: the bearer
// token and cached user between runs. Values are JSON-encoded by the
// implementation.
//
// Persistence is never load-bearing for the in-memory session: every
// implementation contains its own failures (I/O errors, serialization
// problems, an unreachable backend) and degrades to a no-op or an absence
// report instead of propagating.
type Store interface {
	// Set persists value under key. Failures are swallowed.
	Set(ctx context.Context, key string, value any)

	// Get decodes the value under key into dest and reports whether a
	// usable value was found. Missing or corrupt entries report false.
	Get(ctx context.Context, key string, dest any) bool

	// Remove deletes the value under key, if any.
	Remove(ctx context.Context, key string)

	// Clear removes all persisted state.
	Clear(ctx context.Context)
}
