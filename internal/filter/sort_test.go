package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"market-client/internal/domain/entity"
)

func TestSort_PriceLowHigh_Stable(t *testing.T) {
	items := []entity.Product{
		{ID: "a", Price: "10.00"},
		{ID: "b", Price: "5.00"},
		{ID: "c", Price: "5.00"},
		{ID: "d", Price: "20.00"},
	}

	visible := DeriveVisible(items, Selection{Sort: SortPriceLowHigh})

	prices := make([]string, 0, len(visible))
	for _, p := range visible {
		prices = append(prices, p.Price)
	}
	assert.Equal(t, []string{"5.00", "5.00", "10.00", "20.00"}, prices)

	// b and c share a price and must keep their relative fetch order.
	assert.Equal(t, []string{"b", "c", "a", "d"}, idsOf(visible))
}

func TestSort_PriceHighLow(t *testing.T) {
	items := []entity.Product{
		{ID: "a", Price: "10.00"},
		{ID: "b", Price: "5.00"},
		{ID: "d", Price: "20.00"},
	}

	visible := DeriveVisible(items, Selection{Sort: SortPriceHighLow})
	assert.Equal(t, []string{"d", "a", "b"}, idsOf(visible))
}

func TestSort_UnparseablePriceTreatedAsZero(t *testing.T) {
	items := []entity.Product{
		{ID: "a", Price: "10.00"},
		{ID: "b", Price: "call me"},
		{ID: "c", Price: "5.00"},
	}

	visible := DeriveVisible(items, Selection{Sort: SortPriceLowHigh})
	assert.Equal(t, []string{"b", "c", "a"}, idsOf(visible))
}

func TestSort_Newest(t *testing.T) {
	items := []entity.Product{
		{ID: "a", PostingDate: "2025-01-10T00:00:00Z"},
		{ID: "b", PostingDate: "2025-03-01T00:00:00Z"},
		{ID: "c", PostingDate: "not-a-date"}, // sorts as epoch, oldest
		{ID: "d", PostingDate: "2025-02-15T00:00:00Z"},
	}

	visible := DeriveVisible(items, Selection{Sort: SortNewest})
	assert.Equal(t, []string{"b", "d", "a", "c"}, idsOf(visible))
}

func TestSort_Popularity_FallsBackToID(t *testing.T) {
	items := []entity.Product{
		{ID: "z"}, {ID: "a"}, {ID: "m"},
	}

	visible := DeriveVisible(items, Selection{Sort: SortPopularity})
	assert.Equal(t, []string{"a", "m", "z"}, idsOf(visible))
}

func TestSort_DefaultPreservesFetchOrder(t *testing.T) {
	items := []entity.Product{
		{ID: "z", Price: "9"}, {ID: "a", Price: "1"}, {ID: "m", Price: "5"},
	}

	visible := DeriveVisible(items, Selection{Sort: SortDefault})
	assert.Equal(t, []string{"z", "a", "m"}, idsOf(visible))
}

func TestDecidePlacement(t *testing.T) {
	tests := []struct {
		name        string
		accumulated int
		hasMore     bool
		want        Placement
	}{
		{"small fully loaded list", 120, false, PlacementClient},
		{"small list still paginating", 120, true, PlacementServer},
		{"large list", 800, false, PlacementServer},
		{"at threshold", 500, false, PlacementServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecidePlacement(tt.accumulated, tt.hasMore, DefaultClientFilterThreshold)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecidePlacement_ZeroThresholdUsesDefault(t *testing.T) {
	assert.Equal(t, PlacementClient, DecidePlacement(10, false, 0))
}
