package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

func TestConfigStore_SeedIsCopied(t *testing.T) {
	seed := map[string]any{"mapping.system": "v3"}
	store := NewConfigStore(seed)

	seed["mapping.system"] = "v4"

	assert.Equal(t, "v3", store.GetString("mapping.system"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"mapping.system":          "auto",
		"mapping.v4_enabled":      true,
		"mapping.rollout_percent": int64(40),
		"batch.workers":           8,
		"batch.rate_per_second":   2.5,
	})

	assert.Equal(t, "auto", store.GetString("mapping.system"))
	assert.True(t, store.GetBool("mapping.v4_enabled"))
	assert.Equal(t, 40, store.GetInt("mapping.rollout_percent"))
	assert.Equal(t, 2, store.GetInt("batch.rate_per_second"))
	assert.InDelta(t, 8.0, store.GetFloat("batch.workers"), 1e-9)
	assert.InDelta(t, 2.5, store.GetFloat("batch.rate_per_second"), 1e-9)
}

func TestConfigStore_WrongTypesReturnZero(t *testing.T) {
	store := NewConfigStore(map[string]any{"batch.workers": "eight"})

	assert.Zero(t, store.GetInt("batch.workers"))
	assert.Zero(t, store.GetFloat("batch.workers"))
	assert.False(t, store.GetBool("batch.workers"))
	assert.Empty(t, store.GetString("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_Set(t *testing.T) {
	store := NewConfigStore(nil)

	require.NoError(t, store.Set("catalog.data_dir", "/srv/devmap"))
	require.NoError(t, store.Set("catalog.data_dir", "/tmp/devmap"))
	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, "/tmp/devmap", store.GetString("catalog.data_dir"))
	assert.Equal(t, 2, store.Writes())
	assert.Equal(t, map[string]any{"catalog.data_dir": "/tmp/devmap"}, store.Snapshot())
}

func TestConfigStore_Set_EmptyKey(t *testing.T) {
	store := NewConfigStore(nil)

	err := store.Set("", "value")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, store.Writes())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore(nil)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("batch.workers", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("batch.workers")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, store.Writes())
}
