package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	io_prometheus_client "github.com/prometheus/client_model/go"

	"market-client/internal/domain/entity"
	"market-client/internal/infra/kvstore"
)

// failingKV forces backend errors to exercise the degrade-to-miss policy.
type failingKV struct{ err error }

func (f *failingKV) Get(context.Context, string) (string, error)     { return "", f.err }
func (f *failingKV) Set(context.Context, string, string, time.Duration) error {
	return f.err
}
func (f *failingKV) Delete(context.Context, string) error            { return f.err }
func (f *failingKV) DeleteByPrefix(context.Context, string) (int, error) {
	return 0, f.err
}
func (f *failingKV) DeleteExpired(context.Context) (int, error) { return 0, f.err }

func testEntry() Entry {
	return Entry{
		Items: []entity.Product{
			{ID: "p1", Name: "Desk", Price: "20.00"},
			{ID: "p2", Name: "Lamp", Price: "0"},
		},
		HasMore: true,
	}
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	store := NewStore(kvstore.NewMemoryStore(), DefaultConfig(), nil)
	ctx := context.Background()

	require.True(t, store.Set(ctx, "listing:abc", testEntry()))

	got, ok := store.Get(ctx, "listing:abc")
	require.True(t, ok)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, "p1", got.Items[0].ID)
	assert.True(t, got.HasMore)
	assert.False(t, got.StoredAt.IsZero())
}

func TestStore_GetMiss(t *testing.T) {
	store := NewStore(kvstore.NewMemoryStore(), DefaultConfig(), nil)

	_, ok := store.Get(context.Background(), "listing:absent")
	assert.False(t, ok)
}

func TestStore_TTLExpiry(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	store := NewStore(kv, DefaultConfig(), nil)
	ctx := context.Background()

	require.True(t, store.Set(ctx, "listing:abc", testEntry()))

	// Advance the clock past the listing TTL.
	store.now = func() time.Time { return time.Now().Add(6 * time.Minute) }

	_, ok := store.Get(ctx, "listing:abc")
	assert.False(t, ok)

	// Expired entries are invalidated on read.
	assert.Equal(t, 0, kv.Len())
}

func TestStore_ProfileTTLIsLonger(t *testing.T) {
	store := NewStore(kvstore.NewMemoryStore(), DefaultConfig(), nil)
	ctx := context.Background()

	require.True(t, store.Set(ctx, "profile:abc", testEntry()))

	// 6 minutes is past the listing TTL but within the profile TTL.
	store.now = func() time.Time { return time.Now().Add(6 * time.Minute) }

	_, ok := store.Get(ctx, "profile:abc")
	assert.True(t, ok)
}

func TestStore_WriteFailureSwallowed(t *testing.T) {
	store := NewStore(&failingKV{err: errors.New("disk full")}, DefaultConfig(), nil)

	ok := store.Set(context.Background(), "listing:abc", testEntry())
	assert.False(t, ok)
}

func TestStore_ReadFailureIsMiss(t *testing.T) {
	store := NewStore(&failingKV{err: errors.New("connection reset")}, DefaultConfig(), nil)

	_, ok := store.Get(context.Background(), "listing:abc")
	assert.False(t, ok)
}

func TestStore_UndecodableEntryInvalidated(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	store := NewStore(kv, DefaultConfig(), nil)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "listing:abc", "not json", 0))

	_, ok := store.Get(ctx, "listing:abc")
	assert.False(t, ok)
	assert.Equal(t, 0, kv.Len())
}

func TestStore_InvalidateAll(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	store := NewStore(kv, DefaultConfig(), nil)
	ctx := context.Background()

	require.True(t, store.Set(ctx, "listing:a", testEntry()))
	require.True(t, store.Set(ctx, "listing:b", testEntry()))
	require.True(t, store.Set(ctx, "profile:a", testEntry()))

	store.InvalidateAll(ctx, NamespaceListing)

	_, ok := store.Get(ctx, "listing:a")
	assert.False(t, ok)
	_, ok = store.Get(ctx, "profile:a")
	assert.True(t, ok)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CACHE_LISTING_TTL", "90s")
	t.Setenv("CACHE_PROFILE_TTL", "30m")
	t.Setenv("CACHE_WRITE_TIMEOUT", "broken")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, 90*time.Second, cfg.ListingTTL)
	assert.Equal(t, 30*time.Minute, cfg.ProfileTTL)
	assert.Equal(t, DefaultConfig().WriteTimeout, cfg.WriteTimeout)
}

func TestRecordHit_Metric(t *testing.T) {
	before := counterValue(t)
	RecordHit()

	assert.Equal(t, before+1, counterValue(t))
}

func counterValue(t *testing.T) float64 {
	t.Helper()
	metric := &io_prometheus_client.Metric{}
	if err := HitsTotal.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return metric.GetCounter().GetValue()
}
