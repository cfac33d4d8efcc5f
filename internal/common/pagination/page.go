// Package pagination provides the normalized page shape shared by all
// product-fetch paths, plus cursor handling for the two pagination styles
// the backend has historically used (offset and opaque token).
package pagination

import "market-client/internal/domain/entity"

// Cursor identifies the position of the next page to fetch. Exactly one of
// the two styles is in play for a given scope: an opaque token issued by the
// backend, or a 0-based page index for offset pagination. The zero value is
// the start of the list.
type Cursor struct {
	Token string // opaque token, when the backend paginates by token
	Page  int    // 0-based page index, when the backend paginates by offset
}

// Start returns the cursor for the first page.
func Start() Cursor {
	return Cursor{}
}

// TokenCursor returns a cursor for token-style pagination.
func TokenCursor(token string) Cursor {
	return Cursor{Token: token}
}

// PageCursor returns a cursor for offset-style pagination.
func PageCursor(page int) Cursor {
	return Cursor{Page: page}
}

// IsStart reports whether the cursor points at the first page.
// Only first-page results are eligible for caching.
func (c Cursor) IsStart() bool {
	return c.Token == "" && c.Page == 0
}

// Page is the normalized outcome of one product fetch, regardless of which
// response shape the backend produced.
type Page struct {
	Items      []entity.Product
	TotalCount *int // total across all pages when the backend reports it
	NextCursor Cursor
	HasMore    bool
}

// Normalize reconciles HasMore with the cursor. The backend has been observed
// reporting a token alongside hasMore=false and vice versa; a usable token
// wins, and HasMore=false clears any leftover cursor.
func (p *Page) Normalize() {
	if p.NextCursor.Token != "" {
		p.HasMore = true
		return
	}
	if !p.HasMore {
		p.NextCursor = Cursor{}
	}
}
