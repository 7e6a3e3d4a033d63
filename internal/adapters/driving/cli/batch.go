package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/devmap/internal/adapters/driving/compat"
	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/logger"
)

// feedDebounce coalesces the burst of events editors emit on save.
const feedDebounce = 250 * time.Millisecond

var (
	batchOut   string
	batchWatch bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [feed.csv]",
	Short: "Map every row of a CSV price-list feed",
	Long: `Map every row of a CSV feed with columns
model_name,identifier,capacity,price,brand (a header row is optional).

Each row produces one JSON line carrying the legacy dict contract plus the
feed line number. A summary is printed to stderr.

Worker count and throttling come from the batch settings; the mapping
system comes from the mapping settings.

Use --watch to re-map the feed whenever it changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "write JSON lines to a file instead of stdout")
	batchCmd.Flags().BoolVarP(&batchWatch, "watch", "w", false, "re-map the feed when it changes")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	if batchService == nil {
		return errors.New("batch service not configured")
	}

	path := args[0]
	run := func() error {
		return mapFeed(cmd.Context(), path, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	if err := run(); err != nil {
		return err
	}
	if !batchWatch {
		return nil
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", path)
	return watchFeed(cmd.Context(), path, run)
}

func mapFeed(ctx context.Context, path string, stdout, stderr io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening feed: %w", err)
	}
	items, err := parseFeed(f)
	f.Close() //nolint:errcheck
	if err != nil {
		return err
	}

	results, summary, err := batchService.MapAll(ctx, items)
	if err != nil {
		return fmt.Errorf("mapping feed: %w", err)
	}

	out := stdout
	if batchOut != "" {
		file, err := os.Create(batchOut)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer file.Close() //nolint:errcheck
		out = file
	}

	if err := writeResults(out, results); err != nil {
		return err
	}

	fmt.Fprintf(stderr, "run %s: %d rows, %d matched, %d unmatched (%d capacity suggestions), %d errors\n",
		summary.RunID, summary.Total, summary.Succeeded, summary.NoMatch, summary.CapacitySuggested, summary.Errors)
	return nil
}

// writeResults writes one JSON object per feed row.
func writeResults(w io.Writer, items []domain.BatchItem) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		row := compat.ToDict(item.Result)
		row["line"] = item.Line
		if !item.Input.IsZero() {
			row["model_name"] = item.Input.ModelName()
		}
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("writing line %d: %w", item.Line, err)
		}
	}
	return nil
}

// watchFeed calls run after every change to path until ctx is done. The
// directory is watched so editors that replace the file are still seen.
func watchFeed(ctx context.Context, path string, run func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if feedChanged(event, path) {
				debounce = time.After(feedDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch %s: %v", path, err)
		case <-debounce:
			debounce = nil
			logger.Info("feed %s changed, re-mapping", path)
			if err := run(); err != nil {
				logger.Error("re-mapping %s: %v", path, err)
			}
		}
	}
}

// feedChanged reports whether event rewrote the feed file.
func feedChanged(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}
