package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-client/internal/cache"
	"market-client/internal/domain/entity"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		scope     entity.Scope
		wantPath  string
		wantStyle PaginationStyle
	}{
		{
			name:      "featured",
			scope:     entity.FeaturedScope(),
			wantPath:  "/api/v1/products/featured",
			wantStyle: StyleToken,
		},
		{
			name:      "new arrivals all campuses",
			scope:     entity.NewArrivalsScope(""),
			wantPath:  "/api/v1/products/new-arrivals",
			wantStyle: StyleToken,
		},
		{
			name:      "university",
			scope:     entity.UniversityScope("State University"),
			wantPath:  "/api/v1/products/university/State%20University",
			wantStyle: StyleOffset,
		},
		{
			name:      "city",
			scope:     entity.CityScope("Springfield"),
			wantPath:  "/api/v1/products/city/Springfield",
			wantStyle: StyleOffset,
		},
		{
			name:      "category",
			scope:     entity.CategoryScope("electronics"),
			wantPath:  "/api/v1/products/category/electronics",
			wantStyle: StyleOffset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, err := Resolve(tt.scope)

			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, route.Path)
			assert.Equal(t, tt.wantStyle, route.Style)
			assert.Equal(t, cache.NamespaceListing, route.CacheNamespace)
		})
	}
}

func TestResolve_NewArrivalsUniversityParam(t *testing.T) {
	route, err := Resolve(entity.NewArrivalsScope("State University"))

	require.NoError(t, err)
	assert.Equal(t, "State University", route.Query.Get("university"))
}

// A scope whose display label looks like a special section must still route
// by its kind tag.
func TestResolve_LabelNeverInfluencesRouting(t *testing.T) {
	route, err := Resolve(entity.UniversityScope("Featured Products University"))

	require.NoError(t, err)
	assert.Equal(t, "/api/v1/products/university/Featured%20Products%20University", route.Path)
	assert.Equal(t, StyleOffset, route.Style)
}

func TestResolve_InvalidScopes(t *testing.T) {
	tests := []struct {
		name  string
		scope entity.Scope
	}{
		{name: "zero value", scope: entity.Scope{}},
		{name: "category without name", scope: entity.Scope{Kind: entity.ScopeCategory}},
		{name: "unknown kind", scope: entity.Scope{Kind: "profile"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.scope)
			assert.Error(t, err)
		})
	}
}
