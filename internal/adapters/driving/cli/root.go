// Package cli provides the devmap command-line interface.
//
// Commands are package-level cobra commands registered on rootCmd from
// their files' init functions. Services are injected once at startup with
// SetServices; commands report "not configured" when a service is missing.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/devmap/internal/adapters/driving/compat"
	"github.com/custodia-labs/devmap/internal/core/ports/driven"
	"github.com/custodia-labs/devmap/internal/core/ports/driving"
	"github.com/custodia-labs/devmap/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Injected services.
var (
	mapperService   *compat.Adapter
	batchService    driving.BatchMapper
	settingsService driving.SettingsService
	catalogStore    driven.CatalogStore
)

// Services holds everything the commands need.
type Services struct {
	// Mapper is the compatibility boundary in front of the family engines.
	Mapper *compat.Adapter

	// Batch maps whole feeds.
	Batch driving.BatchMapper

	// Settings reads and persists configuration.
	Settings driving.SettingsService

	// Catalog is the SQLite catalog.
	Catalog driven.CatalogStore
}

var rootCmd = &cobra.Command{
	Use:   "devmap",
	Short: "Map vendor device listings to catalog models and capacities",
	Long: `devmap resolves free-text vendor rows such as
"iPhone 13 Pro 128GB" or "Mac mini M2 A2816 512GB" to a catalog model and
capacity, explaining every decision it makes along the way.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print the mapping decision trail")
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	mapperService = s.Mapper
	batchService = s.Batch
	settingsService = s.Settings
	catalogStore = s.Catalog
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
