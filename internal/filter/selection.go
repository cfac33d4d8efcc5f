// Package filter derives the visible product list from an original fetched
// list without ever mutating the source data. All functions in this package
// are pure: equal inputs produce value-equal outputs.
package filter

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortDefault      SortKey = "default"
	SortPriceLowHigh SortKey = "price_low_high"
	SortPriceHighLow SortKey = "price_high_low"
	SortNewest       SortKey = "newest"

	// SortPopularity has no real popularity signal behind it; it orders by
	// listing ID lexicographically. Kept for compatibility with the UI's
	// sort menu until the backend exposes a view-count signal.
	SortPopularity SortKey = "popularity"
)

// Selection holds the active filter and sort choices for one scope.
// Empty condition/selling-type sets mean no filtering on that axis.
type Selection struct {
	Conditions   []string
	SellingTypes []string // may include the synthetic "free" pseudo-type
	Sort         SortKey
}

// DefaultSelection returns the selection with no filters and default ordering.
func DefaultSelection() Selection {
	return Selection{Sort: SortDefault}
}

// IsEmpty reports whether the selection filters or reorders anything.
func (s Selection) IsEmpty() bool {
	return len(s.Conditions) == 0 && len(s.SellingTypes) == 0 &&
		(s.Sort == SortDefault || s.Sort == "")
}

// hasCondition reports whether the condition is in the selected set.
func (s Selection) hasCondition(condition string) bool {
	for _, c := range s.Conditions {
		if c == condition {
			return true
		}
	}
	return false
}

// hasSellingType reports whether the selling type is in the selected set.
func (s Selection) hasSellingType(sellingType string) bool {
	for _, st := range s.SellingTypes {
		if st == sellingType {
			return true
		}
	}
	return false
}
