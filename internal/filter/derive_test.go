package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"market-client/internal/domain/entity"
)

func sampleProducts() []entity.Product {
	return []entity.Product{
		{ID: "a", Name: "Desk", Price: "40.00", Condition: "used", SellingType: entity.SellingTypeSell},
		{ID: "b", Name: "Lamp", Price: "0", Condition: "new", SellingType: entity.SellingTypeRent},
		{ID: "c", Name: "Chair", Price: "15.50", Condition: "new", SellingType: entity.SellingTypeSell},
		{ID: "d", Name: "Books", Price: "5.00", Condition: "used", SellingType: entity.SellingTypeRent},
	}
}

func TestDeriveVisible_NoFilters(t *testing.T) {
	original := sampleProducts()
	visible := DeriveVisible(original, DefaultSelection())

	assert.Empty(t, cmp.Diff(original, visible))
}

func TestDeriveVisible_ConditionFilter(t *testing.T) {
	visible := DeriveVisible(sampleProducts(), Selection{
		Conditions: []string{"new"},
		Sort:       SortDefault,
	})

	ids := idsOf(visible)
	assert.Equal(t, []string{"b", "c"}, ids)
}

func TestDeriveVisible_SellingTypeFilter(t *testing.T) {
	visible := DeriveVisible(sampleProducts(), Selection{
		SellingTypes: []string{entity.SellingTypeRent},
	})

	assert.Equal(t, []string{"b", "d"}, idsOf(visible))
}

func TestDeriveVisible_FreePseudoType(t *testing.T) {
	// "b" is a rent listing priced at zero: the free pseudo-type must catch
	// it even though "rent" is not in the selected set.
	visible := DeriveVisible(sampleProducts(), Selection{
		SellingTypes: []string{entity.SellingTypeFree},
	})

	assert.Equal(t, []string{"b"}, idsOf(visible))
}

func TestDeriveVisible_UnlistedSellingTypeExcluded(t *testing.T) {
	original := append(sampleProducts(), entity.Product{
		ID: "e", Name: "Sublet", Price: "700", SellingType: "sublease",
	})

	visible := DeriveVisible(original, Selection{
		SellingTypes: []string{entity.SellingTypeSell, entity.SellingTypeFree},
	})

	assert.Equal(t, []string{"a", "b", "c"}, idsOf(visible))
}

func TestDeriveVisible_Purity(t *testing.T) {
	original := sampleProducts()
	snapshot := sampleProducts()

	sel := Selection{
		Conditions:   []string{"used"},
		SellingTypes: []string{entity.SellingTypeSell},
		Sort:         SortPriceHighLow,
	}

	first := DeriveVisible(original, sel)
	second := DeriveVisible(original, sel)

	// Original untouched, repeated calls value-equal.
	assert.Empty(t, cmp.Diff(snapshot, original))
	assert.Empty(t, cmp.Diff(first, second))
}

func TestDeriveVisible_ClearFiltersRoundTrip(t *testing.T) {
	original := sampleProducts()

	_ = DeriveVisible(original, Selection{
		Conditions: []string{"new"},
		Sort:       SortPriceLowHigh,
	})

	restored := DeriveVisible(original, DefaultSelection())
	assert.Empty(t, cmp.Diff(original, restored))
}

func idsOf(items []entity.Product) []string {
	ids := make([]string, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	return ids
}
