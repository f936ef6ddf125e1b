package recommend

import (
	"math"
	"sort"
	"strings"

	pstrings "advisor/pkg/platform/strings"
)

// Band classifies a normalized score for display.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandPoor      Band = "poor"
)

// Percent converts a normalized score to a rounded whole percentage.
func Percent(normalized float64) int {
	return int(math.Round(normalized * 100))
}

// QualityBand maps a normalized score to its display band. Pure and total
// over [0,1]: excellent at 90% and above, good at 80%, fair at 70%, else
// poor.
func QualityBand(normalized float64) Band {
	percent := Percent(normalized)
	switch {
	case percent >= 90:
		return BandExcellent
	case percent >= 80:
		return BandGood
	case percent >= 70:
		return BandFair
	default:
		return BandPoor
	}
}

// ResultSet wraps an ordered recommendation list and exposes derived views.
// All views are non-destructive: Filter and Sort return new sets and never
// touch the receiver's order.
type ResultSet struct {
	items []Item
}

// NewResultSet copies items into a fresh set, preserving order.
func NewResultSet(items []Item) *ResultSet {
	return &ResultSet{items: append([]Item(nil), items...)}
}

// Items returns a copy of the set in its current order.
func (rs *ResultSet) Items() []Item {
	return append([]Item(nil), rs.items...)
}

// Len returns the number of items in the set.
func (rs *ResultSet) Len() int {
	return len(rs.items)
}

// FilterCriteria narrows a result set. Empty or "all" values are no-ops.
// Carrier matches exactly; ProductType and UnderwritingType match as
// case-insensitive substrings.
type FilterCriteria struct {
	Carrier          string
	ProductType      string
	UnderwritingType string
}

func (c FilterCriteria) matches(item Item) bool {
	if active(c.Carrier) && item.Carrier != c.Carrier {
		return false
	}
	if active(c.ProductType) && !containsFold(item.ProductType, c.ProductType) {
		return false
	}
	if active(c.UnderwritingType) && !containsFold(item.UnderwritingType, c.UnderwritingType) {
		return false
	}
	return true
}

func active(criterion string) bool {
	return criterion != "" && !strings.EqualFold(criterion, "all")
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Filter returns a new set holding the items matching all active criteria,
// in their original order. Filtering an already-filtered set with the same
// criteria yields the same result.
func (rs *ResultSet) Filter(criteria FilterCriteria) *ResultSet {
	filtered := make([]Item, 0, len(rs.items))
	for _, item := range rs.items {
		if criteria.matches(item) {
			filtered = append(filtered, item)
		}
	}
	return &ResultSet{items: filtered}
}

// SortKey selects a result ordering.
type SortKey string

const (
	SortByScore   SortKey = "score"   // descending by normalized score, stable
	SortByCarrier SortKey = "carrier" // ascending by carrier name
	SortByPremium SortKey = "premium" // ascending by premium tier ordinal
)

// Sort returns a new set in the requested order. Score sorting is stable:
// items with equal normalized scores keep their original relative order.
// Unknown keys return the set unchanged.
func (rs *ResultSet) Sort(key SortKey) *ResultSet {
	sorted := rs.Items()
	switch key {
	case SortByScore:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Confidence > sorted[j].Confidence
		})
	case SortByCarrier:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Carrier < sorted[j].Carrier
		})
	case SortByPremium:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].PremiumTier.ordinal() < sorted[j].PremiumTier.ordinal()
		})
	}
	return &ResultSet{items: sorted}
}

// UniqueCarriers returns distinct carrier names in first-occurrence order.
// Presentation layers use it to populate filter options.
func (rs *ResultSet) UniqueCarriers() []string {
	names := make([]string, 0, len(rs.items))
	for _, item := range rs.items {
		names = append(names, item.Carrier)
	}
	return pstrings.Distinct(names)
}
