package listing

import (
	"context"

	"market-client/internal/common/pagination"
	"market-client/internal/domain/entity"
	"market-client/internal/filter"
)

// FetchRequest describes one page fetch. Selection is only populated when
// filtering has been pushed server-side; a zero Selection means the backend
// returns the scope's unfiltered listing.
type FetchRequest struct {
	Scope     entity.Scope
	Cursor    pagination.Cursor
	PageSize  int
	Selection filter.Selection
	Keyword   string
}

// ProductFetcher fetches one normalized page of products from the backend.
// Implementations classify failures as NetworkError, ServerError, or
// DecodeError.
type ProductFetcher interface {
	FetchPage(ctx context.Context, req FetchRequest) (pagination.Page, error)
}
