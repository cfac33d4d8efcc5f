// Package scope maps browsing contexts to backend fetch routes.
//
// Resolution is driven entirely by the scope's explicit kind tag. Display
// labels never participate: a university named "Featured Products" browses
// the university endpoint, not the featured one.
package scope

import (
	"fmt"
	"net/url"

	"market-client/internal/cache"
	"market-client/internal/domain/entity"
)

// PaginationStyle identifies which pagination parameters a route accepts.
type PaginationStyle string

const (
	// StyleOffset routes paginate with page/size query parameters.
	StyleOffset PaginationStyle = "offset"

	// StyleToken routes paginate with pageToken/size query parameters.
	StyleToken PaginationStyle = "token"
)

// Route describes how to fetch products for one scope: the endpoint path,
// query parameters the scope itself contributes, the pagination style the
// endpoint speaks, and the cache namespace its results belong to.
type Route struct {
	Path           string
	Query          url.Values
	Style          PaginationStyle
	CacheNamespace string
}

// Resolve maps a scope to its backend route. The error wraps the scope's
// validation failure when the scope is malformed.
func Resolve(s entity.Scope) (Route, error) {
	if err := s.Validate(); err != nil {
		return Route{}, fmt.Errorf("resolve scope: %w", err)
	}

	switch s.Kind {
	case entity.ScopeFeatured:
		return Route{
			Path:           "/api/v1/products/featured",
			Query:          url.Values{},
			Style:          StyleToken,
			CacheNamespace: cache.NamespaceListing,
		}, nil

	case entity.ScopeNewArrivals:
		query := url.Values{}
		if s.University != "" {
			query.Set("university", s.University)
		}
		return Route{
			Path:           "/api/v1/products/new-arrivals",
			Query:          query,
			Style:          StyleToken,
			CacheNamespace: cache.NamespaceListing,
		}, nil

	case entity.ScopeUniversity:
		return Route{
			Path:           "/api/v1/products/university/" + url.PathEscape(s.Name),
			Query:          url.Values{},
			Style:          StyleOffset,
			CacheNamespace: cache.NamespaceListing,
		}, nil

	case entity.ScopeCity:
		return Route{
			Path:           "/api/v1/products/city/" + url.PathEscape(s.Name),
			Query:          url.Values{},
			Style:          StyleOffset,
			CacheNamespace: cache.NamespaceListing,
		}, nil

	case entity.ScopeCategory:
		return Route{
			Path:           "/api/v1/products/category/" + url.PathEscape(s.Name),
			Query:          url.Values{},
			Style:          StyleOffset,
			CacheNamespace: cache.NamespaceListing,
		}, nil

	default:
		return Route{}, fmt.Errorf("resolve scope: unknown kind %q: %w", s.Kind, entity.ErrInvalidScope)
	}
}
