package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefreshCoordinator_EscalatesAtThreshold(t *testing.T) {
	c := NewRefreshCoordinator(2)

	assert.False(t, c.ForceActive())
	c.NoteRefresh()
	assert.False(t, c.ForceActive())
	c.NoteRefresh()
	assert.True(t, c.ForceActive())
}

func TestRefreshCoordinator_CompletedWriteResets(t *testing.T) {
	c := NewRefreshCoordinator(2)

	c.NoteRefresh()
	c.NoteRefresh()
	assert.True(t, c.ForceActive())

	c.NoteCompletedWrite()
	assert.False(t, c.ForceActive())

	// The count restarts from zero, not from where it left off.
	c.NoteRefresh()
	assert.False(t, c.ForceActive())
}

func TestRefreshCoordinator_DefaultThreshold(t *testing.T) {
	c := NewRefreshCoordinator(0)

	c.NoteRefresh()
	assert.False(t, c.ForceActive())
	c.NoteRefresh()
	assert.True(t, c.ForceActive())
}
