package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atelier-tools/batchman/internal/core/domain"
)

var (
	importInto string
	importDPI  int
)

var importCmd = &cobra.Command{
	Use:   "import <image>...",
	Short: "Import image files as new documents",
	Long: `Creates a new editable document from each given image file inside
the target directory. Name collisions get a numeric suffix instead of
overwriting existing documents.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importInto, "into", "i", ".", "directory to import into")
	importCmd.Flags().IntVar(&importDPI, "dpi", domain.DefaultImportOptions().DPI, "resolution for the new documents")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}

	dir, err := resolveDir([]string{importInto})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := domain.ImportOptions{DPI: importDPI}
	results := importService.ImportBatch(ctx, args, dir, opts)

	failed := 0
	for _, result := range results {
		if result.OK() {
			cmd.Printf("imported: %s -> %s\n", result.Source, result.Dest)
			continue
		}
		failed++
		cmd.Printf("failed: %s: %v\n", result.Source, result.Err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(results))
	}
	return nil
}
