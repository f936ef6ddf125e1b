package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so callers can branch with errors.Is; validation failures use
// pkg/domain-errors instead.
var (
	// ErrNotFound reports that a case does not exist in the store.
	ErrNotFound = errors.New("not found")
)
