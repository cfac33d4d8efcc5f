// Package listing implements the pagination engine behind product browsing:
// per-scope accumulated lists, load-more/refresh semantics, cache
// integration with force-refresh escalation, and filter placement.
package listing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"market-client/internal/cache"
	"market-client/internal/common/pagination"
	"market-client/internal/domain/entity"
	"market-client/internal/filter"
)

// loadMode distinguishes the three first-page entry points for busy-flag
// and metrics purposes.
type loadMode string

const (
	modeInitial loadMode = "initial"
	modeMore    loadMode = "more"
	modeRefresh loadMode = "refresh"
)

// EngineConfig tunes engine behavior.
type EngineConfig struct {
	// PageSize is the page size requested from the backend. Default: 20.
	PageSize int

	// ClientFilterThreshold is the accumulated size past which filter
	// changes refetch server-side. Default: filter.DefaultClientFilterThreshold.
	ClientFilterThreshold int

	// RefreshEscalation is the consecutive-refresh count that activates
	// the global cache bypass. Default: DefaultRefreshEscalation.
	RefreshEscalation int
}

// Engine drives product browsing for any number of scopes. All methods are
// safe for concurrent use; operations on the same scope serialize through
// its loading flags, operations on different scopes run independently.
//
// The cache store is optional: a nil store turns every read into a miss and
// every write into a no-op, which is also the degraded behavior when the
// store's backend is down.
type Engine struct {
	fetcher ProductFetcher
	cache   *cache.Store
	refresh *RefreshCoordinator
	logger  *slog.Logger

	pageSize        int
	filterThreshold int

	// flight collapses concurrent identical first-page fetches, e.g. a
	// double-mount racing a prefetch for the same scope.
	flight singleflight.Group

	mu      sync.Mutex
	states  map[string]*scopeState
	current string
}

// NewEngine creates an engine over the given fetcher and cache store.
func NewEngine(fetcher ProductFetcher, cacheStore *cache.Store, cfg EngineConfig, logger *slog.Logger) *Engine {
	if cfg.PageSize <= 0 {
		cfg.PageSize = pagination.DefaultConfig().PageSize
	}
	if cfg.ClientFilterThreshold <= 0 {
		cfg.ClientFilterThreshold = filter.DefaultClientFilterThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		fetcher:         fetcher,
		cache:           cacheStore,
		refresh:         NewRefreshCoordinator(cfg.RefreshEscalation),
		logger:          logger,
		pageSize:        cfg.PageSize,
		filterThreshold: cfg.ClientFilterThreshold,
		states:          make(map[string]*scopeState),
	}
}

// LoadInitial makes scope the current scope and loads its first page.
// A call while the scope's initial load is already in flight is a no-op,
// so duplicate mount events cannot double-fetch.
//
// The cache is consulted for page 0 unless a keyword is active or the
// refresh coordinator has escalated to force-refresh; on a hit the state is
// populated without touching the network. On a fetch the result is written
// through to the cache before the call returns.
func (e *Engine) LoadInitial(ctx context.Context, scope entity.Scope) error {
	if err := scope.Validate(); err != nil {
		return fmt.Errorf("load initial: %w", err)
	}
	id := scope.Identifier()

	e.mu.Lock()
	if e.current != "" && e.current != id {
		// Navigating away: anything still in flight for the old scope must
		// not apply its result when it lands.
		if prev, ok := e.states[e.current]; ok {
			prev.generation++
		}
	}
	st, ok := e.states[id]
	if !ok {
		st = newScopeState(scope)
		e.states[id] = st
	}
	e.current = id

	if st.isLoadingInitial {
		e.mu.Unlock()
		return nil
	}
	if st.busy() {
		e.mu.Unlock()
		return ErrBusy
	}
	e.mu.Unlock()

	return e.loadFirstPage(ctx, st, modeInitial, false)
}

// LoadMore fetches the next page for the current scope and appends it.
// A no-op while any operation is in flight or when no more pages exist.
// On failure the accumulated list is preserved; only the error surfaces.
func (e *Engine) LoadMore(ctx context.Context) error {
	e.mu.Lock()
	st, err := e.currentStateLocked()
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if st.busy() || !st.hasMore {
		e.mu.Unlock()
		return nil
	}
	st.isLoadingMore = true
	st.err = nil
	gen := st.generation
	req := e.requestLocked(st, st.cursor)
	e.mu.Unlock()

	page, fetchErr := e.fetchPage(ctx, req, modeMore)

	e.mu.Lock()
	defer e.mu.Unlock()
	st.isLoadingMore = false
	if st.generation != gen {
		// Scope changed while the fetch was in flight; drop the result.
		return nil
	}
	if fetchErr != nil {
		st.err = fetchErr
		return fetchErr
	}
	st.applyNextPage(page)
	return nil
}

// Refresh refetches the current scope from the start, bypassing the cache
// read, and replaces the accumulated list wholesale on success. On failure
// the previous list is preserved.
//
// Each refresh counts toward the force-refresh escalation; once the user
// has refreshed twice in a row without a completed cache write in between,
// cache reads are bypassed everywhere until a write lands.
func (e *Engine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	st, err := e.currentStateLocked()
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if st.busy() {
		e.mu.Unlock()
		return ErrBusy
	}
	e.mu.Unlock()

	e.refresh.NoteRefresh()
	return e.loadFirstPage(ctx, st, modeRefresh, true)
}

// SetFilters applies a new filter selection to the current scope.
//
// Small, fully-loaded datasets keep filtering client-side: the selection is
// recorded and the next Snapshot derives the visible list locally. Larger
// or still-paginating datasets push the constraints to the backend and
// refetch from the start, so matches that were never paged in can appear.
func (e *Engine) SetFilters(ctx context.Context, sel filter.Selection) error {
	e.mu.Lock()
	st, err := e.currentStateLocked()
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if st.busy() {
		e.mu.Unlock()
		return ErrBusy
	}
	st.selection = sel
	st.placement = filter.DecidePlacement(len(st.accumulated), st.hasMore, e.filterThreshold)
	serverSide := st.placement == filter.PlacementServer
	e.mu.Unlock()

	if !serverSide {
		return nil
	}
	return e.loadFirstPage(ctx, st, modeInitial, false)
}

// ClearFilters resets the current scope to the default selection. When the
// active filters had been pushed server-side the scope refetches from the
// start; otherwise the full original list is immediately visible again.
func (e *Engine) ClearFilters(ctx context.Context) error {
	e.mu.Lock()
	st, err := e.currentStateLocked()
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if st.busy() {
		e.mu.Unlock()
		return ErrBusy
	}
	wasServerSide := st.placement == filter.PlacementServer
	st.selection = filter.DefaultSelection()
	st.placement = filter.PlacementClient
	e.mu.Unlock()

	if !wasServerSide {
		return nil
	}
	return e.loadFirstPage(ctx, st, modeInitial, false)
}

// SetKeyword sets a free-text search term for the current scope and
// refetches from the start. Keyword results are never cached, so the cache
// is skipped in both directions. An empty keyword clears the search.
func (e *Engine) SetKeyword(ctx context.Context, keyword string) error {
	e.mu.Lock()
	st, err := e.currentStateLocked()
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if st.busy() {
		e.mu.Unlock()
		return ErrBusy
	}
	st.keyword = keyword
	e.mu.Unlock()

	return e.loadFirstPage(ctx, st, modeInitial, false)
}

// loadFirstPage is the shared first-page path behind LoadInitial, Refresh,
// and server-side filter changes. bypassCacheRead skips the cache lookup
// (refresh); the write-through still happens so fresh data repopulates the
// cache.
func (e *Engine) loadFirstPage(ctx context.Context, st *scopeState, mode loadMode, bypassCacheRead bool) error {
	e.mu.Lock()
	if st.busy() {
		e.mu.Unlock()
		return ErrBusy
	}
	switch mode {
	case modeRefresh:
		st.isRefreshing = true
	default:
		st.isLoadingInitial = true
	}
	st.err = nil
	gen := st.generation
	scope := st.scope
	sel := st.selection
	keyword := st.keyword
	req := e.requestLocked(st, pagination.Start())
	e.mu.Unlock()

	clearFlag := func() {
		switch mode {
		case modeRefresh:
			st.isRefreshing = false
		default:
			st.isLoadingInitial = false
		}
	}

	key, cacheable := cache.DeriveKey(cache.NamespaceListing, scope, sel, keyword, pagination.Start())

	if cacheable && !bypassCacheRead && e.cache != nil && !e.refresh.ForceActive() {
		if entry, ok := e.cache.Get(ctx, key); ok {
			e.mu.Lock()
			defer e.mu.Unlock()
			clearFlag()
			if st.generation != gen {
				return nil
			}
			st.applyFirstPage(pagination.Page{
				Items:      entry.Items,
				TotalCount: entry.TotalCount,
				NextCursor: entry.NextCursor,
				HasMore:    entry.HasMore,
			})
			return nil
		}
	}

	page, fetchErr := e.fetchPage(ctx, req, mode)

	e.mu.Lock()
	clearFlag()
	if st.generation != gen {
		e.mu.Unlock()
		return nil
	}
	if fetchErr != nil {
		if mode != modeRefresh {
			// First-page failure leaves nothing trustworthy to show.
			st.accumulated = nil
			st.cursor = pagination.Start()
			st.hasMore = false
		}
		st.err = fetchErr
		e.mu.Unlock()
		return fetchErr
	}
	st.applyFirstPage(page)
	e.mu.Unlock()

	if cacheable && e.cache != nil {
		// The write must complete before this call returns so that an
		// immediately following mount reads what was just fetched.
		if e.cache.Set(ctx, key, cache.Entry{
			Items:      page.Items,
			NextCursor: page.NextCursor,
			HasMore:    page.HasMore,
			TotalCount: page.TotalCount,
		}) {
			e.refresh.NoteCompletedWrite()
		}
	}
	return nil
}

// fetchPage calls the fetcher with metrics and, for first pages, request
// collapsing.
func (e *Engine) fetchPage(ctx context.Context, req FetchRequest, mode loadMode) (pagination.Page, error) {
	start := time.Now()

	var page pagination.Page
	var err error
	if req.Cursor.IsStart() && mode == modeInitial {
		flightKey := req.Scope.Identifier() + "|" + req.Keyword
		var v interface{}
		v, err, _ = e.flight.Do(flightKey, func() (interface{}, error) {
			return e.fetcher.FetchPage(ctx, req)
		})
		if err == nil {
			page = v.(pagination.Page)
		}
	} else {
		page, err = e.fetcher.FetchPage(ctx, req)
	}

	pagination.RecordDuration(string(mode), time.Since(start).Seconds())
	if err != nil {
		pagination.RecordError(classify(err))
		e.logger.Warn("product page fetch failed",
			slog.String("scope", req.Scope.Identifier()),
			slog.String("mode", string(mode)),
			slog.Any("error", err))
		return pagination.Page{}, err
	}

	page.Normalize()
	pagination.RecordPageFetched(string(req.Scope.Kind), string(mode))
	return page, nil
}

// requestLocked builds the fetch request for the scope's current settings.
// The selection travels to the backend only when placement is server-side.
func (e *Engine) requestLocked(st *scopeState, cursor pagination.Cursor) FetchRequest {
	req := FetchRequest{
		Scope:    st.scope,
		Cursor:   cursor,
		PageSize: e.pageSize,
		Keyword:  st.keyword,
	}
	if st.placement == filter.PlacementServer {
		req.Selection = st.selection
	}
	return req
}

func (e *Engine) currentStateLocked() (*scopeState, error) {
	if e.current == "" {
		return nil, ErrNoScope
	}
	st, ok := e.states[e.current]
	if !ok {
		return nil, ErrNoScope
	}
	return st, nil
}
