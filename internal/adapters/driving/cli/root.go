// Package cli implements the command line driving adapter using cobra.
// Commands call into the driving port services, which are wired in by
// SetServices at startup. Commands guard against a missing service so
// the package stays testable without full wiring.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/atelier-tools/batchman/internal/core/ports/driving"
	"github.com/atelier-tools/batchman/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services the commands drive. Set by SetServices before Execute.
var (
	exportService   driving.ExportService
	importService   driving.ImportService
	rucksackService driving.RucksackService
	settingsService driving.SettingsService
	autoExporter    driving.AutoExporter
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "batchman",
	Short: "Batch export and fragment management for graphics documents",
	Long: `batchman keeps a directory of editable graphics documents in sync
with exported image targets, re-exporting only what changed, and manages
a rucksack of reusable document fragments shared per project or per user.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// SetServices wires the driving port implementations into the commands.
func SetServices(
	exports driving.ExportService,
	imports driving.ImportService,
	rucksack driving.RucksackService,
	settings driving.SettingsService,
	watcher driving.AutoExporter,
) {
	exportService = exports
	importService = imports
	rucksackService = rucksack
	settingsService = settings
	autoExporter = watcher
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// resolveDir turns an optional positional directory argument into an
// absolute path, defaulting to the working directory.
func resolveDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("directory %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}
