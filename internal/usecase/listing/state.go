package listing

import (
	"market-client/internal/common/pagination"
	"market-client/internal/domain/entity"
	"market-client/internal/filter"
)

// scopeState is the pagination state for one scope. States for different
// scopes are fully independent: switching away retains the old state and a
// later switch back resumes where the user left off.
//
// The three loading flags are mutually exclusive; busy() is the serialization
// guard for all engine operations on the scope.
type scopeState struct {
	scope       entity.Scope
	accumulated []entity.Product
	cursor      pagination.Cursor
	hasMore     bool
	totalCount  *int

	selection filter.Selection
	placement filter.Placement
	keyword   string

	isLoadingInitial bool
	isLoadingMore    bool
	isRefreshing     bool

	err    error
	loaded bool

	// generation increments when the scope is navigated away from; a fetch
	// completing against a stale generation clears its loading flag but
	// never applies its result.
	generation uint64
}

func newScopeState(scope entity.Scope) *scopeState {
	return &scopeState{
		scope:     scope,
		selection: filter.DefaultSelection(),
	}
}

func (s *scopeState) busy() bool {
	return s.isLoadingInitial || s.isLoadingMore || s.isRefreshing
}

// applyFirstPage replaces the accumulated list wholesale with a first-page
// result.
func (s *scopeState) applyFirstPage(page pagination.Page) {
	s.accumulated = page.Items
	s.cursor = page.NextCursor
	s.hasMore = page.HasMore
	s.totalCount = page.TotalCount
	s.loaded = true
	s.err = nil
}

// applyNextPage appends a load-more result. Earlier items are never touched.
func (s *scopeState) applyNextPage(page pagination.Page) {
	s.accumulated = append(s.accumulated, page.Items...)
	s.cursor = page.NextCursor
	s.hasMore = page.HasMore
	if page.TotalCount != nil {
		s.totalCount = page.TotalCount
	}
	s.err = nil
}
