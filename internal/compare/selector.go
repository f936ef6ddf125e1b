// Package compare holds the bounded selection of recommendations a user has
// marked for side-by-side review.
package compare

import (
	"advisor/internal/recommend"
	dErrors "advisor/pkg/domain-errors"
)

// MaxSelections bounds the comparison set. Side-by-side review is only
// readable up to three products.
const MaxSelections = 3

// Selector is an ordered set of at most MaxSelections recommendation items.
// Identity is the (carrier, product) pair, not struct equality; toggling a
// re-decoded copy of a selected item deselects it.
//
// Selector is not safe for concurrent use; each session owns its own.
type Selector struct {
	items []recommend.Item
}

// NewSelector returns an empty selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Toggle flips an item's membership. Removal always succeeds; addition fails
// with CodeCapacityExceeded when the set is full, and nothing is evicted to
// make room.
func (s *Selector) Toggle(item recommend.Item) error {
	for i, selected := range s.items {
		if selected.SameProduct(item) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	if len(s.items) >= MaxSelections {
		return dErrors.Newf(dErrors.CodeCapacityExceeded, "you can compare up to %d products at a time", MaxSelections)
	}
	s.items = append(s.items, item)
	return nil
}

// IsSelected reports membership by (carrier, product) identity.
func (s *Selector) IsSelected(item recommend.Item) bool {
	for _, selected := range s.items {
		if selected.SameProduct(item) {
			return true
		}
	}
	return false
}

// Items returns the current selection in insertion order.
func (s *Selector) Items() []recommend.Item {
	return append([]recommend.Item(nil), s.items...)
}

// Len returns the current selection size.
func (s *Selector) Len() int {
	return len(s.items)
}

// Comparable reports whether the selection is large enough to display a
// side-by-side comparison.
func (s *Selector) Comparable() bool {
	return len(s.items) >= 2
}

// Clear empties the selection, e.g. when a new result set replaces the old.
func (s *Selector) Clear() {
	s.items = nil
}
