package filter

import "market-client/internal/domain/entity"

// DeriveVisible applies the selection's filters and sort to the original
// list and returns a new slice. The original slice and its elements are
// never modified; the result shares no backing storage with the input.
func DeriveVisible(original []entity.Product, sel Selection) []entity.Product {
	visible := make([]entity.Product, 0, len(original))
	for _, p := range original {
		if !matchesCondition(p, sel) {
			continue
		}
		if !matchesSellingType(p, sel) {
			continue
		}
		visible = append(visible, p)
	}

	sortProducts(visible, sel.Sort)
	return visible
}

// matchesCondition keeps the item iff its condition is selected.
// An empty condition set disables condition filtering.
func matchesCondition(p entity.Product, sel Selection) bool {
	if len(sel.Conditions) == 0 {
		return true
	}
	return sel.hasCondition(p.Condition)
}

// matchesSellingType keeps the item iff its selling type is selected, or the
// synthetic "free" pseudo-type is selected and the item costs nothing.
// An empty selling-type set disables selling-type filtering. Items of an
// unlisted selling type are excluded once the filter is active.
func matchesSellingType(p entity.Product, sel Selection) bool {
	if len(sel.SellingTypes) == 0 {
		return true
	}
	if sel.hasSellingType(p.SellingType) {
		return true
	}
	if sel.hasSellingType(entity.SellingTypeFree) && p.IsFree() {
		return true
	}
	return false
}
