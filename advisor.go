// Package advisor wires the intake, recommendation, comparison, and case
// management components into a ready-to-embed session. Presentation layers
// call NewSession once at startup and drive everything through the returned
// session object.
package advisor

import (
	"advisor/internal/casefile"
	"advisor/internal/platform/config"
	"advisor/internal/platform/logger"
	"advisor/internal/portals"
	"advisor/internal/recommend"
	"advisor/internal/recommend/metrics"
	"advisor/internal/session"
)

// NewSession assembles a session from configuration. Metrics register in the
// default prometheus registry, so call this once per process.
func NewSession(cfg config.Core) *session.Session {
	log := logger.New()
	client := recommend.NewClient(cfg.RecommenderURL, cfg.RequestTimeout, log, metrics.New())
	store := casefile.NewFileStore(cfg.CaseFile, log)
	links := portals.Load(cfg.PortalLinks, log)

	return session.New(client, store,
		session.WithLogger(log),
		session.WithPortals(links),
	)
}
