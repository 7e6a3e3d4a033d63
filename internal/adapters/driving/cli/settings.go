package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure engine selection and batch settings.

Every setting can also be overridden for one run with an environment
variable, e.g. DEVMAP_MAPPING_SYSTEM=v3 or DEVMAP_BATCH_WORKERS=8.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSystemCmd = &cobra.Command{
	Use:   "system [v4|v3|auto]",
	Short: "Set the default mapping system",
	Long: `Set the mapping system used when a request does not name one.

Available systems:
  v4   - family engines only
  v3   - legacy engine only
  auto - family engines, falling back to the legacy engine when they find
         nothing and are not suggesting a capacity be created`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsSystem,
}

var settingsRolloutCmd = &cobra.Command{
	Use:   "rollout [percent]",
	Short: "Set the share of requests routed to the family engines",
	Long: `Set the v4 rollout percentage (0-100). Requests that do not name a
system are bucketed by display name, so a given row always lands on the
same engine. Use --disable to send everything to the legacy engine.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsRollout,
}

var settingsBatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Configure batch workers and throttling",
	RunE:  runSettingsBatch,
}

func init() {
	settingsRolloutCmd.Flags().Bool("disable", false, "turn the family engines off entirely")
	settingsBatchCmd.Flags().Int("workers", 0, "concurrent mapping calls")
	settingsBatchCmd.Flags().Float64("rate", -1, "mapping calls per second (0 = unlimited)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSystemCmd)
	settingsCmd.AddCommand(settingsRolloutCmd)
	settingsCmd.AddCommand(settingsBatchCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Mapping]")
	cmd.Printf("  System: %s\n", settings.Mapping.System.Description())
	cmd.Printf("  Family engines: %s\n", enabledLabel(settings.Mapping.V4Enabled))
	cmd.Printf("  Rollout: %d%%\n", settings.Mapping.RolloutPercent)
	cmd.Println()

	cmd.Println("[Batch]")
	cmd.Printf("  Workers: %d\n", settings.Batch.Workers)
	if settings.Batch.RatePerSecond > 0 {
		cmd.Printf("  Rate: %s/s\n", strconv.FormatFloat(settings.Batch.RatePerSecond, 'f', -1, 64))
	} else {
		cmd.Printf("  Rate: unlimited\n")
	}
	cmd.Println()

	cmd.Println("[Catalog]")
	dataDir := settings.Catalog.DataDir
	if dataDir == "" {
		dataDir = "~/.devmap/data (default)"
	}
	cmd.Printf("  Data dir: %s\n", dataDir)

	return nil
}

func runSettingsSystem(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	system := domain.MappingSystem(strings.ToLower(args[0]))
	if err := settingsService.SetSystem(system); err != nil {
		return fmt.Errorf("failed to set system: %w", err)
	}

	cmd.Printf("Set mapping system to: %s\n", system.Description())
	return nil
}

func runSettingsRollout(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	percent, err := strconv.Atoi(strings.TrimSuffix(args[0], "%"))
	if err != nil {
		return fmt.Errorf("invalid percent %q: %w", args[0], err)
	}
	disable, err := cmd.Flags().GetBool("disable")
	if err != nil {
		return fmt.Errorf("getting disable flag: %w", err)
	}

	if err := settingsService.SetRollout(!disable, percent); err != nil {
		return fmt.Errorf("failed to set rollout: %w", err)
	}

	cmd.Printf("Family engines %s, rollout %d%%\n", enabledLabel(!disable), percent)
	return nil
}

func runSettingsBatch(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if cmd.Flags().Changed("workers") {
		workers, err := cmd.Flags().GetInt("workers")
		if err != nil {
			return fmt.Errorf("getting workers flag: %w", err)
		}
		settings.Batch.Workers = workers
	}
	if cmd.Flags().Changed("rate") {
		rate, err := cmd.Flags().GetFloat64("rate")
		if err != nil {
			return fmt.Errorf("getting rate flag: %w", err)
		}
		settings.Batch.RatePerSecond = rate
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save batch settings: %w", err)
	}

	cmd.Printf("Batch: %d workers, %s calls/s\n", settings.Batch.Workers,
		strconv.FormatFloat(settings.Batch.RatePerSecond, 'f', -1, 64))
	return nil
}

func enabledLabel(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
