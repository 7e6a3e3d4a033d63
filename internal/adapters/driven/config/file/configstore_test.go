package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, env map[string]string) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	store.lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestStore(t, nil)
	require.NoError(t, store.Set("mapping.system", "auto"))
	require.NoError(t, store.Set("mapping.rollout_percent", 40))
	require.NoError(t, store.Set("mapping.v4_enabled", true))
	require.NoError(t, store.Set("batch.rate_per_second", 2.5))

	assert.Equal(t, "auto", store.GetString("mapping.system"))
	assert.Equal(t, 40, store.GetInt("mapping.rollout_percent"))
	assert.True(t, store.GetBool("mapping.v4_enabled"))
	assert.InDelta(t, 2.5, store.GetFloat("batch.rate_per_second"), 1e-9)

	// wrong types fall back to zero values
	assert.Empty(t, store.GetString("mapping.rollout_percent"))
	assert.Zero(t, store.GetInt("mapping.system"))
	assert.False(t, store.GetBool("mapping.system"))
	assert.Zero(t, store.GetFloat("mapping.v4_enabled"))
}

func TestConfigStore_GetFloat_WidensIntegers(t *testing.T) {
	store := newTestStore(t, nil)
	require.NoError(t, store.Set("batch.rate_per_second", 3))

	assert.InDelta(t, 3.0, store.GetFloat("batch.rate_per_second"), 1e-9)
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t, nil)

	val, ok := store.Get("missing")

	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.Zero(t, store.GetFloat("missing"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_SaveReload_NestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("mapping.system", "v4"))
	require.NoError(t, store.Set("mapping.rollout_percent", 25))
	require.NoError(t, store.Set("batch.workers", 8))
	require.NoError(t, store.Set("batch.rate_per_second", 1.5))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[mapping]")
	assert.Contains(t, string(raw), "[batch]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "v4", reloaded.GetString("mapping.system"))
	assert.Equal(t, 25, reloaded.GetInt("mapping.rollout_percent"))
	assert.Equal(t, 8, reloaded.GetInt("batch.workers"))
	assert.InDelta(t, 1.5, reloaded.GetFloat("batch.rate_per_second"), 1e-9)
}

func TestConfigStore_EnvOverride(t *testing.T) {
	store := newTestStore(t, map[string]string{
		"DEVMAP_MAPPING_SYSTEM":          "v3",
		"DEVMAP_MAPPING_ROLLOUT_PERCENT": "10",
		"DEVMAP_MAPPING_V4_ENABLED":      "false",
		"DEVMAP_BATCH_RATE_PER_SECOND":   "0.5",
	})
	require.NoError(t, store.Set("mapping.system", "v4"))
	require.NoError(t, store.Set("mapping.rollout_percent", 90))
	require.NoError(t, store.Set("mapping.v4_enabled", true))

	assert.Equal(t, "v3", store.GetString("mapping.system"))
	assert.Equal(t, 10, store.GetInt("mapping.rollout_percent"))
	assert.False(t, store.GetBool("mapping.v4_enabled"))
	assert.InDelta(t, 0.5, store.GetFloat("batch.rate_per_second"), 1e-9)

	// overrides are never persisted
	reloaded, err := NewConfigStore(filepath.Dir(store.Path()))
	require.NoError(t, err)
	reloaded.lookupEnv = func(string) (string, bool) { return "", false }
	assert.Equal(t, "v4", reloaded.GetString("mapping.system"))
}

func TestConfigStore_EnvOverride_Unparseable(t *testing.T) {
	store := newTestStore(t, map[string]string{"DEVMAP_BATCH_WORKERS": "many"})

	assert.Zero(t, store.GetInt("batch.workers"))
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: "mapping.system", want: "DEVMAP_MAPPING_SYSTEM"},
		{key: "batch.rate_per_second", want: "DEVMAP_BATCH_RATE_PER_SECOND"},
		{key: "catalog.data-dir", want: "DEVMAP_CATALOG_DATA_DIR"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, EnvKey(tt.key))
		})
	}
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	store := newTestStore(t, nil)
	store.filePath = filepath.Join(t.TempDir(), "absent.toml")

	err := store.Load()

	require.NoError(t, err)
	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store := newTestStore(t, nil)
	require.NoError(t, store.Set("valid", "data"))
	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid toml syntax ][}{"), 0600))

	assert.Error(t, store.Load())
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store := newTestStore(t, nil)
	require.NoError(t, store.Set("test", "value"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("another", "value"))
}

func TestConfigStore_SetUnmarshallableValue(t *testing.T) {
	store := newTestStore(t, nil)

	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestStore(t, nil)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestStore(t, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("batch.workers", n)
			_ = store.GetInt("batch.workers")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("batch.workers")
	assert.True(t, ok)
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"mapping.system":  "auto",
		"mapping.rollout": 5,
		"top":             true,
	})

	mapping, ok := nested["mapping"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "auto", mapping["system"])
	assert.Equal(t, 5, mapping["rollout"])
	assert.Equal(t, true, nested["top"])
	assert.Equal(t, flattenMap(nested, ""), map[string]any{
		"mapping.system":  "auto",
		"mapping.rollout": 5,
		"top":             true,
	})
}
