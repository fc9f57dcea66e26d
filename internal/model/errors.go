package model

import "errors"

// Errors shared across controllers.
var (
	// ErrUnauthorized means the backend rejected our token. Any occurrence
	// tears down the local session.
	ErrUnauthorized = errors.New("session expired, please log in again")

	// ErrNotAuthenticated means an operation that requires a session was
	// attempted without one.
	ErrNotAuthenticated = errors.New("you must log in first")

	// ErrPlayerNotCached means a player id was referenced that is not part
	// of the currently fetched page.
	ErrPlayerNotCached = errors.New("player not found on the current page")
)
