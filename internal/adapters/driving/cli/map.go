package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/devmap/internal/adapters/driving/compat"
	"github.com/custodia-labs/devmap/internal/core/domain"
)

var (
	mapIdentifier string
	mapCapacity   string
	mapPrice      float64
	mapBrand      string
	mapSystem     string
	mapJSON       bool
	mapTrail      bool
)

var mapCmd = &cobra.Command{
	Use:   "map [display name]",
	Short: "Map one vendor row to a catalog model and capacity",
	Long: `Map one vendor display name to a catalog model and capacity.

The display name may be given as several arguments; they are joined with
spaces. Capacity can be part of the name or passed with --capacity.

Examples:
  devmap map "iPhone 13 Pro 128GB"
  devmap map Mac mini M2 --identifier A2816 --capacity 512GB --trail
  devmap map "Pixel 8 Pro 256GB" --system auto --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMap,
}

func init() {
	mapCmd.Flags().StringVarP(&mapIdentifier, "identifier", "i", "", "vendor identifier code (e.g. A2816)")
	mapCmd.Flags().StringVarP(&mapCapacity, "capacity", "c", "", "capacity reported separately (e.g. 512GB)")
	mapCmd.Flags().Float64Var(&mapPrice, "price", 0, "vendor price")
	mapCmd.Flags().StringVar(&mapBrand, "brand", "", "brand name (default Apple)")
	mapCmd.Flags().StringVarP(&mapSystem, "system", "s", "", "v4, v3 or auto (default from settings)")
	mapCmd.Flags().BoolVar(&mapJSON, "json", false, "output the legacy dict contract as JSON")
	mapCmd.Flags().BoolVar(&mapTrail, "trail", false, "print the decision trail")
	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, args []string) error {
	if mapperService == nil {
		return errors.New("mapper service not configured")
	}

	system := domain.MappingSystem(strings.ToLower(mapSystem))
	if system != "" && !system.IsValid() {
		return fmt.Errorf("invalid system %q: want v4, v3 or auto", mapSystem)
	}

	opts := []domain.InputOption{
		domain.WithIdentifier(mapIdentifier),
		domain.WithCapacity(mapCapacity),
		domain.WithBrand(mapBrand),
	}
	if cmd.Flags().Changed("price") {
		opts = append(opts, domain.WithPrice(mapPrice))
	}

	input, err := domain.NewMappingInput(strings.Join(args, " "), opts...)
	if err != nil {
		return err
	}

	result, used := mapperService.Resolve(cmd.Context(), input, system)

	if mapJSON {
		out := compat.ToDict(result)
		out["system_used"] = string(used)
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	renderResult(cmd.OutOrStdout(), paletteFor(cmd.OutOrStdout()), result, used, mapTrail)
	return nil
}
