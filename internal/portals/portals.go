// Package portals maps carrier names to agent portal URLs. The directory is
// advisory: a missing or unreadable file means items simply keep whatever
// portal URL the recommender supplied.
package portals

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"advisor/internal/recommend"
)

// Directory is an immutable carrier → portal URL lookup.
type Directory struct {
	links map[string]string
	log   *log.Logger
}

// Load reads a JSON object of carrier names to URLs. Any read or decode
// failure degrades to an empty directory. logger may be nil.
func Load(path string, logger *log.Logger) *Directory {
	d := &Directory{links: map[string]string{}, log: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		d.logf("portal directory: read %s: %v; lookups disabled", path, err)
		return d
	}
	if err := json.Unmarshal(data, &d.links); err != nil {
		d.logf("portal directory: decode %s: %v; lookups disabled", path, err)
		d.links = map[string]string{}
		return d
	}
	d.logf("portal directory: loaded %d links from %s", len(d.links), path)
	return d
}

// Lookup resolves a carrier name to its portal URL: exact match first, then
// case-insensitive, then partial containment either way.
func (d *Directory) Lookup(carrier string) (string, bool) {
	if url, ok := d.links[carrier]; ok {
		return url, true
	}

	lower := strings.ToLower(carrier)
	for name, url := range d.links {
		if strings.ToLower(name) == lower {
			return url, true
		}
	}
	for name, url := range d.links {
		nameLower := strings.ToLower(name)
		if strings.Contains(nameLower, lower) || strings.Contains(lower, nameLower) {
			return url, true
		}
	}
	return "", false
}

// Backfill fills in portal URLs on items that arrived without one. Items
// that already carry a URL are left alone.
func (d *Directory) Backfill(items []recommend.Item) []recommend.Item {
	out := append([]recommend.Item(nil), items...)
	for i := range out {
		if out[i].PortalURL != "" {
			continue
		}
		if url, ok := d.Lookup(out[i].Carrier); ok {
			out[i].PortalURL = url
		}
	}
	return out
}

func (d *Directory) logf(format string, args ...any) {
	if d.log != nil {
		d.log.Printf(format, args...)
	}
}
