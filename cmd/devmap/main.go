// Command devmap maps vendor device listings to catalog models and capacities.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/devmap/internal/adapters/driven/config/file"
	"github.com/custodia-labs/devmap/internal/adapters/driven/legacy"
	"github.com/custodia-labs/devmap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/devmap/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/devmap/internal/adapters/driving/cli"
	"github.com/custodia-labs/devmap/internal/adapters/driving/compat"
	"github.com/custodia-labs/devmap/internal/core/ports/driven"
	"github.com/custodia-labs/devmap/internal/core/services"
	"github.com/custodia-labs/devmap/internal/mapping/engine"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := openConfig()
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	store, err := sqlite.NewStore(settings.Catalog.DataDir)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer store.Close() //nolint:errcheck
	catalog := store.CatalogStore()

	mapper := services.NewDeviceMapperService(engine.All(catalog)...)
	adapter := compat.NewAdapter(mapper, legacy.NewMapper(catalog, legacy.DefaultThreshold), settings.Mapping)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Mapper:   adapter,
		Batch:    services.NewBatchService(adapter, settings.Batch),
		Settings: settingsService,
		Catalog:  catalog,
	})

	return cli.Execute(ctx)
}

// openConfig returns the TOML store, or a throwaway in-memory one when
// DEVMAP_EPHEMERAL is set.
func openConfig() (driven.ConfigStore, error) {
	if os.Getenv("DEVMAP_EPHEMERAL") != "" {
		return memory.NewConfigStore(nil), nil
	}
	return file.NewConfigStore("")
}
