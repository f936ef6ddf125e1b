// Package session holds the working state of one advisor session: the active
// profile, the active recommendation set, and the comparison selection. The
// presentation layer owns a Session and passes it around explicitly; nothing
// here lives in ambient package state.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"advisor/internal/casefile"
	"advisor/internal/compare"
	"advisor/internal/intake"
	"advisor/internal/portals"
	"advisor/internal/recommend"
)

//go:generate mockgen -source=session.go -destination=mocks_test.go -package=session

// Recommender is the port to the external recommendation service.
type Recommender interface {
	Recommend(ctx context.Context, req intake.Request) ([]recommend.Item, error)
}

// Option configures a Session.
type Option func(*Session)

// WithLogger attaches a logger for submission lifecycle events.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.log = logger }
}

// WithPortals backfills portal URLs on incoming recommendations.
func WithPortals(d *portals.Directory) Option {
	return func(s *Session) { s.portals = d }
}

// WithClock overrides the time source; tests pin it.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session is safe for concurrent use, though a single user drives it; the
// locking exists because a submission may still be in flight when the next
// one starts.
type Session struct {
	mu       sync.Mutex
	profile  intake.ClientProfile
	results  *recommend.ResultSet
	selector *compare.Selector

	rec     Recommender
	store   casefile.Store
	portals *portals.Directory
	log     *log.Logger
	now     func() time.Time

	// pendingCancel aborts the in-flight submission; generation identifies
	// whose response may still claim the session.
	pendingCancel context.CancelFunc
	generation    uint64
}

func New(rec Recommender, store casefile.Store, opts ...Option) *Session {
	s := &Session{
		rec:      rec,
		store:    store,
		selector: compare.NewSelector(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Profile returns a copy of the active profile.
func (s *Session) Profile() intake.ClientProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// SetProfile replaces the active profile, rederiving age from date of birth.
// The age field is never trusted independently while a DOB is present.
func (s *Session) SetProfile(p intake.ClientProfile) {
	intake.RecomputeAge(&p, s.now())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

// Results returns the active result set, or nil when none is loaded.
func (s *Session) Results() *recommend.ResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Selector returns the comparison selection for the active result set.
func (s *Session) Selector() *compare.Selector {
	return s.selector
}

// Submit validates the active profile, calls the recommender, and installs
// the response as the active result set.
//
// A new submission supersedes any still-pending one: the older call is
// canceled and its response, should it arrive anyway, is discarded rather
// than racing the newer one. On a service failure the prior result set is
// cleared, never left stale.
func (s *Session) Submit(ctx context.Context) (*recommend.ResultSet, error) {
	s.mu.Lock()
	profile := s.profile
	s.mu.Unlock()

	req, err := intake.BuildRequest(profile)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.pendingCancel != nil {
		s.pendingCancel()
		s.logf("session: superseding pending recommendation request")
	}
	s.generation++
	gen := s.generation
	callCtx, cancel := context.WithCancel(ctx)
	s.pendingCancel = cancel
	s.mu.Unlock()

	items, err := s.rec.Recommend(callCtx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		// A newer submission owns the session now.
		return nil, context.Canceled
	}
	s.pendingCancel = nil
	cancel()

	if err != nil {
		s.results = nil
		s.selector.Clear()
		return nil, err
	}

	if s.portals != nil {
		items = s.portals.Backfill(items)
	}
	s.results = recommend.NewResultSet(items)
	s.selector.Clear()
	return s.results, nil
}

// SaveCase snapshots the active profile and results into the store.
func (s *Session) SaveCase(ctx context.Context) (casefile.Case, error) {
	s.mu.Lock()
	profile := s.profile
	var items []recommend.Item
	if s.results != nil {
		items = s.results.Items()
	}
	s.mu.Unlock()

	return s.store.Save(ctx, profile, items)
}

// LoadCase makes a stored case the active session state. The stored record
// itself is never mutated; the session works on copies.
func (s *Session) LoadCase(ctx context.Context, id string) (casefile.Case, error) {
	c, err := s.store.Load(ctx, id)
	if err != nil {
		return casefile.Case{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = c.FormData
	s.results = recommend.NewResultSet(c.Recommendations)
	s.selector.Clear()
	return c, nil
}

// DeleteCase removes a stored case. Destructive and irreversible; the
// presentation layer confirms with the user first.
func (s *Session) DeleteCase(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Cases lists all stored cases.
func (s *Session) Cases(ctx context.Context) ([]casefile.Case, error) {
	return s.store.List(ctx)
}

func (s *Session) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Printf(format, args...)
	}
}
