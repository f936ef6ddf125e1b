// Package casefile persists saved cases: an immutable snapshot of a client
// profile and the recommendation set it produced.
package casefile

import (
	"time"

	"github.com/google/uuid"

	"advisor/internal/intake"
	"advisor/internal/recommend"
)

// Case is one saved profile/results snapshot. Cases are created on explicit
// save and never mutated afterwards; loading one hands the caller copies to
// make active, it does not expose store internals. JSON field names are the
// persisted wire format.
type Case struct {
	ID              string               `json:"id"`
	CreatedAt       time.Time            `json:"createdAt"`
	FormData        intake.ClientProfile `json:"formData"`
	Recommendations []recommend.Item     `json:"recommendations"`
	Leftover        float64              `json:"leftover"`
}

// NewCase stamps a fresh case. IDs are uuids rather than timestamps so two
// saves in the same tick cannot collide.
func NewCase(profile intake.ClientProfile, results []recommend.Item, now time.Time) Case {
	return Case{
		ID:              uuid.NewString(),
		CreatedAt:       now.UTC(),
		FormData:        profile,
		Recommendations: append([]recommend.Item(nil), results...),
		Leftover:        profile.LeftoverFunds(),
	}
}
