package filter

import (
	"sort"

	"market-client/internal/domain/entity"
)

// sortProducts reorders the slice in place according to the sort key.
// All orderings are stable so that equal items keep their fetch order.
// SortDefault (and unknown keys) leave the fetch order untouched.
func sortProducts(items []entity.Product, key SortKey) {
	switch key {
	case SortPriceLowHigh:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].PriceValue() < items[j].PriceValue()
		})
	case SortPriceHighLow:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].PriceValue() > items[j].PriceValue()
		})
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].PostedTime().After(items[j].PostedTime())
		})
	case SortPopularity:
		// No popularity signal exists; ID order is a deterministic stand-in.
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].ID < items[j].ID
		})
	}
}
