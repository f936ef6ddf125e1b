package casefile

import (
	"context"

	"advisor/internal/intake"
	"advisor/internal/recommend"
)

// Store is durable keyed CRUD over saved cases.
//
// Semantics shared by all implementations:
//   - Save stamps identity and creation time and appends; it never updates
//     an existing record.
//   - List degrades to an empty slice when the backing collection is
//     missing or unreadable; corruption is never fatal.
//   - Load returns sentinel.ErrNotFound (wrapped) for unknown IDs and does
//     not mutate the store; making the result the active session state is
//     the caller's job.
//   - Delete is destructive and irreversible; obtaining user confirmation
//     first is the presentation layer's responsibility.
type Store interface {
	Save(ctx context.Context, profile intake.ClientProfile, results []recommend.Item) (Case, error)
	List(ctx context.Context) ([]Case, error)
	Load(ctx context.Context, id string) (Case, error)
	Delete(ctx context.Context, id string) error
}
