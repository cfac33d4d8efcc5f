package listing

import (
	"market-client/internal/domain/entity"
	"market-client/internal/filter"
)

// ViewModel is what the UI layer renders for one scope: the derived visible
// list plus the loading and error state. It carries no behavior.
type ViewModel struct {
	VisibleItems     []entity.Product
	TotalCount       *int
	IsInitialLoading bool
	IsLoadingMore    bool
	IsRefreshing     bool
	HasMore          bool
	Err              error
}

// Snapshot projects the current scope's state into a view model. Before any
// LoadInitial it returns a zero view model.
//
// The visible list is derived fresh on every call: the accumulated list is
// never mutated and never shared with the caller.
func (e *Engine) Snapshot() ViewModel {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := e.currentStateLocked()
	if err != nil {
		return ViewModel{}
	}
	return projectLocked(st)
}

// SnapshotFor projects the state of a specific scope, whether or not it is
// current. Useful for rendering a backgrounded scope, e.g. a tab the user
// switched away from.
func (e *Engine) SnapshotFor(scope entity.Scope) ViewModel {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.states[scope.Identifier()]
	if !ok {
		return ViewModel{}
	}
	return projectLocked(st)
}

func projectLocked(st *scopeState) ViewModel {
	return ViewModel{
		VisibleItems:     filter.DeriveVisible(st.accumulated, st.selection),
		TotalCount:       st.totalCount,
		IsInitialLoading: st.isLoadingInitial,
		IsLoadingMore:    st.isLoadingMore,
		IsRefreshing:     st.isRefreshing,
		HasMore:          st.hasMore,
		Err:              st.err,
	}
}
