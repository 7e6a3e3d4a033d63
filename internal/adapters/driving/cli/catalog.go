package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/devmap/internal/adapters/driven/storage/catalogfile"
	"github.com/custodia-labs/devmap/internal/core/domain"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Maintain the model and capacity catalog",
	Long: `Import and inspect the catalog the mapping engines query.

The mapping engines only ever read the catalog; these commands are the
operator's way to load snapshots and add missing capacity rows.`,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import [snapshot.toml]",
	Short: "Import models and capacities from a TOML snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogImport,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog models",
	RunE:  runCatalogList,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog as a TOML snapshot to stdout",
	RunE:  runCatalogExport,
}

func init() {
	catalogListCmd.Flags().StringP("family", "f", "", "only list one family (iPhone, Pixel, iPad, Mac)")
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	if catalogStore == nil {
		return errors.New("catalog not configured")
	}

	models, err := catalogfile.DecodeFile(args[0])
	if err != nil {
		return err
	}

	for _, m := range models {
		if err := catalogStore.SaveModel(cmd.Context(), m); err != nil {
			return fmt.Errorf("saving model %q: %w", m.Description, err)
		}
	}

	cmd.Printf("Imported %d models from %s\n", len(models), args[0])
	return nil
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	if catalogStore == nil {
		return errors.New("catalog not configured")
	}

	raw, err := cmd.Flags().GetString("family")
	if err != nil {
		return fmt.Errorf("getting family flag: %w", err)
	}
	family, err := parseFamily(raw)
	if err != nil {
		return err
	}

	models, err := catalogStore.ListModels(cmd.Context(), family)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	if len(models) == 0 {
		cmd.Println("No models found.")
		return nil
	}

	for _, m := range models {
		year := "-"
		if m.HasYear() {
			year = fmt.Sprint(m.Year)
		}
		cmd.Printf("  [%d] %s (%s, %s)\n", m.ID, m.Description, m.Type, year)
		for _, c := range m.Capacities {
			state := ""
			if !c.Active {
				state = " (inactive)"
			}
			cmd.Printf("      %d: %s%s\n", c.ID, c.Size, state)
		}
	}
	return nil
}

func runCatalogExport(cmd *cobra.Command, _ []string) error {
	if catalogStore == nil {
		return errors.New("catalog not configured")
	}

	models, err := catalogStore.ListModels(cmd.Context(), domain.FamilyUnknown)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}
	return catalogfile.Encode(cmd.OutOrStdout(), models)
}

// parseFamily accepts a family name in any case. Empty means all families.
func parseFamily(s string) (domain.DeviceFamily, error) {
	if strings.TrimSpace(s) == "" {
		return domain.FamilyUnknown, nil
	}
	for _, f := range []domain.DeviceFamily{domain.FamilyIPhone, domain.FamilyPixel, domain.FamilyIPad, domain.FamilyMac} {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return domain.FamilyUnknown, fmt.Errorf("unknown family %q: want iPhone, Pixel, iPad or Mac", s)
}
