package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-client/internal/common/pagination"
	"market-client/internal/domain/entity"
	"market-client/internal/filter"
)

func TestDeriveKey_Idempotent(t *testing.T) {
	// Equal but independently constructed inputs must derive the same key.
	selA := filter.Selection{
		Conditions:   []string{"new", "used"},
		SellingTypes: []string{"sell"},
		Sort:         filter.SortNewest,
	}
	selB := filter.Selection{
		Conditions:   []string{"new", "used"},
		SellingTypes: []string{"sell"},
		Sort:         filter.SortNewest,
	}

	keyA, okA := DeriveKey(NamespaceListing, entity.CategoryScope("electronics"), selA, "", pagination.Start())
	keyB, okB := DeriveKey(NamespaceListing, entity.CategoryScope("electronics"), selB, "", pagination.Start())

	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, keyA, keyB)
}

func TestDeriveKey_OrderIndependent(t *testing.T) {
	selA := filter.Selection{Conditions: []string{"new", "used"}}
	selB := filter.Selection{Conditions: []string{"used", "new"}}

	keyA, _ := DeriveKey(NamespaceListing, entity.FeaturedScope(), selA, "", pagination.Start())
	keyB, _ := DeriveKey(NamespaceListing, entity.FeaturedScope(), selB, "", pagination.Start())

	assert.Equal(t, keyA, keyB)
}

func TestDeriveKey_DistinctInputsDistinctKeys(t *testing.T) {
	base, _ := DeriveKey(NamespaceListing, entity.CategoryScope("electronics"), filter.DefaultSelection(), "", pagination.Start())

	otherScope, _ := DeriveKey(NamespaceListing, entity.CategoryScope("furniture"), filter.DefaultSelection(), "", pagination.Start())
	assert.NotEqual(t, base, otherScope)

	otherKind, _ := DeriveKey(NamespaceListing, entity.CityScope("electronics"), filter.DefaultSelection(), "", pagination.Start())
	assert.NotEqual(t, base, otherKind)

	otherSel, _ := DeriveKey(NamespaceListing, entity.CategoryScope("electronics"),
		filter.Selection{Conditions: []string{"new"}}, "", pagination.Start())
	assert.NotEqual(t, base, otherSel)

	otherNamespace, _ := DeriveKey(NamespaceProfile, entity.CategoryScope("electronics"), filter.DefaultSelection(), "", pagination.Start())
	assert.NotEqual(t, base, otherNamespace)
}

func TestDeriveKey_KeywordDisablesCaching(t *testing.T) {
	_, ok := DeriveKey(NamespaceListing, entity.FeaturedScope(), filter.DefaultSelection(), "bike", pagination.Start())
	assert.False(t, ok)
}

func TestDeriveKey_OnlyFirstPageCacheable(t *testing.T) {
	_, ok := DeriveKey(NamespaceListing, entity.FeaturedScope(), filter.DefaultSelection(), "", pagination.PageCursor(2))
	assert.False(t, ok)

	_, ok = DeriveKey(NamespaceListing, entity.FeaturedScope(), filter.DefaultSelection(), "", pagination.TokenCursor("tok1"))
	assert.False(t, ok)
}

func TestDeriveKey_NamespacePrefix(t *testing.T) {
	key, ok := DeriveKey(NamespaceListing, entity.FeaturedScope(), filter.DefaultSelection(), "", pagination.Start())
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(key, NamespaceListing+":"))
}
