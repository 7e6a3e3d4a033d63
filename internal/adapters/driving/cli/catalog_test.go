package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

func TestCatalogCmd_Import(t *testing.T) {
	catalog := setupTestServices(t)
	snapshot := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(snapshot, []byte(`
[[models]]
id          = 40
description = "Pixel 8 Pro"
type        = "Pixel"
brand       = "Google"
year        = 2023

  [[models.capacities]]
  id   = 400
  size = "128 GB"

  [[models.capacities]]
  id     = 401
  size   = "1 TB"
  active = false
`), 0600))

	out, _, err := execute(t, "catalog", "import", snapshot)

	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 models")
	m, err := catalog.GetModel(context.Background(), 40)
	require.NoError(t, err)
	assert.Equal(t, "Google", m.Brand)
	assert.Equal(t, []string{"128 GB"}, m.CapacityLabels())
}

func TestCatalogCmd_ImportInvalid(t *testing.T) {
	setupTestServices(t)
	snapshot := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(snapshot, []byte("[[models]]\nid = 1\ntype = \"Phone\"\ndescription = \"x\"\n"), 0600))

	_, _, err := execute(t, "catalog", "import", snapshot)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogCmd_List(t *testing.T) {
	setupTestServices(t)

	out, _, err := execute(t, "catalog", "list", "--family", "mac")

	require.NoError(t, err)
	assert.Contains(t, out, "[1] Mac mini (2023) M2 A2816 (Mac, 2023)")
	assert.Contains(t, out, "20: 512 GB")
	assert.NotContains(t, out, "iPhone")

	_, _, err = execute(t, "catalog", "list", "--family", "watch")
	assert.Error(t, err)
}

func TestCatalogCmd_Export(t *testing.T) {
	setupTestServices(t)

	out, _, err := execute(t, "catalog", "export")

	require.NoError(t, err)
	assert.Contains(t, out, "[[models]]")
	assert.Contains(t, out, "iPhone 13 Pro")
}

func TestParseFamily(t *testing.T) {
	f, err := parseFamily("IPAD")
	require.NoError(t, err)
	assert.Equal(t, domain.FamilyIPad, f)

	f, err = parseFamily("")
	require.NoError(t, err)
	assert.Equal(t, domain.FamilyUnknown, f)

	_, err = parseFamily("Watch")
	assert.Error(t, err)
}
