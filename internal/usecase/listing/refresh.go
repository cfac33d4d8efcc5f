package listing

import "sync"

// DefaultRefreshEscalation is the number of consecutive refreshes after
// which cache reads are bypassed until a cache write completes.
const DefaultRefreshEscalation = 2

// RefreshCoordinator tracks consecutive manual refreshes across all scopes.
// When the user refreshes repeatedly, a stale cache must not keep masking
// their explicit intent: once the count reaches the escalation threshold,
// every cache read is skipped until some completed cache write proves fresh
// data landed.
type RefreshCoordinator struct {
	mu          sync.Mutex
	consecutive int
	threshold   int
}

// NewRefreshCoordinator creates a coordinator with the given escalation
// threshold. A threshold below 1 uses DefaultRefreshEscalation.
func NewRefreshCoordinator(threshold int) *RefreshCoordinator {
	if threshold < 1 {
		threshold = DefaultRefreshEscalation
	}
	return &RefreshCoordinator{threshold: threshold}
}

// NoteRefresh records one manual refresh.
func (c *RefreshCoordinator) NoteRefresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consecutive++
}

// NoteCompletedWrite records a cache write that completed, resetting the
// escalation. Only completed writes reset: a swallowed write failure keeps
// the bypass active.
func (c *RefreshCoordinator) NoteCompletedWrite() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consecutive = 0
}

// ForceActive reports whether cache reads should currently be bypassed.
func (c *RefreshCoordinator) ForceActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.consecutive >= c.threshold
}
