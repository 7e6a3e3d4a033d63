// Package logger provides verbose logging for the devmap CLI.
// When verbose mode is enabled via the --verbose flag, the decision trail of
// every mapping call is printed to stderr as it is recorded.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// write holds the lock for the whole write so concurrent batch workers never
// interleave within a line.
func write(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, format, args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write("[DEBUG] "+format+"\n", args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	write("\n=== %s ===\n", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write("[INFO] "+format+"\n", args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	write("[WARN] "+format+"\n", args...)
}

// Error prints an error message if verbose mode is enabled.
// Errors that reach the user are reported through results, not here.
func Error(format string, args ...any) {
	write("[ERROR] "+format+"\n", args...)
}

// Entry prints a pre-formatted line tagged with level, as recorded by a
// mapping context ("DEBUG", "INFO", "WARN", "ERROR").
func Entry(level, scope, message string) {
	write("[%s] %s: %s\n", level, scope, message)
}
