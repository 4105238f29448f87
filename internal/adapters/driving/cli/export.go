package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/atelier-tools/batchman/internal/core/domain"
)

var exportDryRun bool

var exportCmd = &cobra.Command{
	Use:   "export [directory]",
	Short: "Export changed documents to image targets",
	Long: `Exports the documents of a directory to image targets, skipping
documents whose content, export configuration and target are unchanged
since the last export. Defaults to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVarP(&exportDryRun, "dry-run", "n", false,
		"show what would be exported without exporting")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	dir, err := resolveDir(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if exportDryRun {
		return runExportPlan(ctx, cmd, dir)
	}

	report, err := exportWithProgress(ctx, cmd, dir)
	if err != nil {
		if errors.Is(err, domain.ErrExportInProgress) {
			return fmt.Errorf("an export is already running for %s", dir)
		}
		return fmt.Errorf("export failed: %w", err)
	}

	printReport(cmd, report)
	if !report.AllSucceeded() {
		return fmt.Errorf("%d of %d documents failed",
			len(report.Failed), len(report.Failed)+len(report.Succeeded))
	}
	return nil
}

func runExportPlan(ctx context.Context, cmd *cobra.Command, dir string) error {
	jobs, err := exportService.Plan(ctx, dir)
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	if len(jobs) == 0 {
		cmd.Println("Everything up to date.")
		return nil
	}
	for _, job := range jobs {
		cmd.Printf("%s -> %s (%s)\n", job.RelPath, job.TargetPath, job.Reason)
	}
	cmd.Printf("%d to export.\n", len(jobs))
	return nil
}

// exportWithProgress runs the export while displaying progress updates
// on a terminal. Progress is suppressed when stdout is not a TTY.
func exportWithProgress(ctx context.Context, cmd *cobra.Command, dir string) (*domain.ExportReport, error) {
	type result struct {
		report *domain.ExportReport
		err    error
	}
	resCh := make(chan result, 1)
	go func() {
		report, err := exportService.Export(ctx, dir)
		resCh <- result{report, err}
	}()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		res := <-resCh
		return res.report, res.err
	}

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastProcessed := -1
	for {
		select {
		case res := <-resCh:
			if lastProcessed >= 0 {
				cmd.Println()
			}
			return res.report, res.err
		case <-ticker.C:
			status, err := exportService.Status(ctx, dir)
			if err == nil && status.Running && status.Processed > lastProcessed {
				cmd.Printf("\rExporting... %d/%d", status.Processed, status.Planned)
				lastProcessed = status.Processed
			}
		}
	}
}

func printReport(cmd *cobra.Command, report *domain.ExportReport) {
	for _, failure := range report.Failed {
		cmd.Printf("failed: %s: %v\n", failure.Path, failure.Err)
	}
	cmd.Printf("Exported %d documents in %s.\n",
		len(report.Succeeded), report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
}

var statusCmd = &cobra.Command{
	Use:   "status [directory]",
	Short: "Show what would be exported",
	Long:  `Lists the documents whose targets are out of date, and why.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportService == nil {
			return errors.New("export service not configured")
		}
		dir, err := resolveDir(args)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return runExportPlan(ctx, cmd, dir)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
