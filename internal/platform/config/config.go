package config

import (
	"os"
	"time"
)

// Core captures configuration for the advisor library. The embedding
// presentation layer calls FromEnv once and threads the struct through
// construction; nothing in the core reads the environment directly.
type Core struct {
	// RecommenderURL is the base URL of the external recommendation service.
	RecommenderURL string
	// RequestTimeout bounds a single recommendation call.
	RequestTimeout time.Duration
	// CaseFile is the path of the persisted case collection.
	CaseFile string
	// PortalLinks is the path of the carrier portal directory JSON.
	PortalLinks string
}

// FromEnv builds a Core config from environment variables so callers stay lean.
func FromEnv() Core {
	url := os.Getenv("ADVISOR_RECOMMENDER_URL")
	if url == "" {
		url = "http://localhost:8000"
	}

	timeout := 30 * time.Second
	if raw := os.Getenv("ADVISOR_REQUEST_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
	}

	caseFile := os.Getenv("ADVISOR_CASE_FILE")
	if caseFile == "" {
		caseFile = "data/cases.json"
	}

	portalLinks := os.Getenv("ADVISOR_PORTAL_LINKS")
	if portalLinks == "" {
		portalLinks = "config/portal_links.json"
	}

	return Core{
		RecommenderURL: url,
		RequestTimeout: timeout,
		CaseFile:       caseFile,
		PortalLinks:    portalLinks,
	}
}
