package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the tracked document extension, export worker
count and host application commands.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change one setting. Keys:

  extension             tracked document extension (e.g. kra, ora)
  workers               concurrent export jobs
  host.render_command   command template rendering {source} to {target}
  host.import_command   command template importing {source} to {target}
  host.capture_command  command template printing a {kind} payload
  host.insert_command   command template reading a {kind} payload
  host.optimize_command command template rewriting {target} in place`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	cmd.Printf("extension:             %s\n", settings.DocumentExtension)
	cmd.Printf("workers:               %d\n", settings.Workers)
	cmd.Printf("host.render_command:   %s\n", settings.Host.RenderCommand)
	cmd.Printf("host.import_command:   %s\n", settings.Host.ImportCommand)
	cmd.Printf("host.capture_command:  %s\n", settings.Host.CaptureCommand)
	cmd.Printf("host.insert_command:   %s\n", settings.Host.InsertCommand)
	cmd.Printf("host.optimize_command: %s\n", settings.Host.OptimizeCommand)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	key, value := args[0], args[1]
	switch key {
	case "extension":
		settings.DocumentExtension = value
	case "workers":
		workers, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("workers must be a number: %w", err)
		}
		settings.Workers = workers
	case "host.render_command":
		settings.Host.RenderCommand = value
	case "host.import_command":
		settings.Host.ImportCommand = value
	case "host.capture_command":
		settings.Host.CaptureCommand = value
	case "host.insert_command":
		settings.Host.InsertCommand = value
	case "host.optimize_command":
		settings.Host.OptimizeCommand = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	cmd.Printf("Set %s.\n", key)
	return nil
}
