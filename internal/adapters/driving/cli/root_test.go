package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/devmap/internal/adapters/driven/config/file"
	"github.com/custodia-labs/devmap/internal/adapters/driven/legacy"
	"github.com/custodia-labs/devmap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/devmap/internal/adapters/driving/compat"
	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/core/services"
	"github.com/custodia-labs/devmap/internal/mapping/engine"
)

// testCatalog holds an iPhone 13 Pro with two capacities and the two
// Mac mini SKUs sharing identifier A2816.
func testCatalog() *memory.CatalogStore {
	return memory.NewCatalogStore(
		domain.CatalogModel{
			ID: 1, Description: "Mac mini (2023) M2 A2816", Type: domain.FamilyMac, Year: 2023,
			Capacities: []domain.CatalogCapacity{
				{ID: 10, Size: "256 GB", Active: true},
				{ID: 11, Size: "512 GB", Active: true},
			},
		},
		domain.CatalogModel{
			ID: 2, Description: "Mac mini (2023) M2 Pro 12-Core CPU 19-Core GPU A2816", Type: domain.FamilyMac, Year: 2023,
			Capacities: []domain.CatalogCapacity{
				{ID: 20, Size: "512 GB", Active: true},
			},
		},
		domain.CatalogModel{
			ID: 3, Description: "iPhone 13 Pro", Type: domain.FamilyIPhone, Year: 2021,
			Capacities: []domain.CatalogCapacity{
				{ID: 30, Size: "128 GB", Active: true},
				{ID: 31, Size: "256 GB", Active: true},
			},
		},
	)
}

// setupTestServices wires the real engines over an in-memory catalog.
func setupTestServices(t *testing.T) *memory.CatalogStore {
	t.Helper()

	catalog := testCatalog()
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	facade := services.NewDeviceMapperService(engine.All(catalog, engine.WithLogSink(nil))...)
	adapter := compat.NewAdapter(facade, legacy.NewMapper(catalog, 0), domain.DefaultAppSettings().Mapping)

	SetServices(Services{
		Mapper:   adapter,
		Batch:    services.NewBatchService(adapter, domain.BatchSettings{Workers: 2}),
		Settings: services.NewSettingsService(store),
		Catalog:  catalog,
	})
	t.Cleanup(func() { SetServices(Services{}) })

	return catalog
}

// execute runs the root command with args and returns stdout and stderr.
// Flag values are reset first because commands are package-level.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
