// Command batchman is a batch export and fragment management tool for
// directories of editable graphics documents.
package main

import (
	"fmt"
	"os"

	"github.com/atelier-tools/batchman/internal/adapters/driven/config/file"
	"github.com/atelier-tools/batchman/internal/adapters/driven/host/exechost"
	"github.com/atelier-tools/batchman/internal/adapters/driven/host/localfs"
	"github.com/atelier-tools/batchman/internal/adapters/driven/storage/sqlite"
	"github.com/atelier-tools/batchman/internal/adapters/driving/cli"
	"github.com/atelier-tools/batchman/internal/adapters/driving/watch"
	"github.com/atelier-tools/batchman/internal/core/ports/driven"
	"github.com/atelier-tools/batchman/internal/core/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "batchman: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	stores, err := sqlite.NewStoreFactory("")
	if err != nil {
		return fmt.Errorf("creating store factory: %w", err)
	}
	defer stores.Close()

	host := exechost.NewHost(settings.Host)
	lister := localfs.NewLister(settings.DocumentExtension)
	exportConfigs := file.NewExportConfigStore()

	// Optional capabilities degrade to nil when unconfigured.
	var optimizer driven.Optimizer
	if host.HasOptimizer() {
		optimizer = host
	}
	var factory driven.DocumentFactory
	if host.HasFactory() {
		factory = host
	}
	var fragments driven.FragmentHost
	if host.HasFragments() {
		fragments = host
	}

	exportService := services.NewExportManager(
		lister, stores, exportConfigs, host, optimizer, settings.Workers)
	importService := services.NewImporter(factory, settings.DocumentExtension)
	rucksackService := services.NewRucksack(stores, fragments)
	autoExporter := watch.NewWatcher(exportService, settings.DocumentExtension, 0)

	cli.SetServices(exportService, importService, rucksackService, settingsService, autoExporter)
	cli.SetVersion(version)
	return cli.Execute()
}
