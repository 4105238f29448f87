package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/atelier-tools/batchman/internal/core/domain"
	"github.com/atelier-tools/batchman/internal/core/ports/driven"
	"github.com/atelier-tools/batchman/internal/logger"
)

// Ensure ExportConfigStore implements the interface.
var _ driven.ExportConfigStore = (*ExportConfigStore)(nil)

// exportConfigFileName is the per-directory export configuration file,
// stored next to the other directory metadata.
const exportConfigFileName = "export.toml"

// exportConfigFile is the on-disk TOML shape of an export configuration.
type exportConfigFile struct {
	TargetDir      string `toml:"target_dir"`
	Format         string `toml:"format"`
	PNGCompression int    `toml:"png_compression"`
	WebPMethod     int    `toml:"webp_method"`
	Optimize       bool   `toml:"optimize"`
}

// ExportConfigStore reads and writes per-directory export configuration
// from <dir>/.batchman/export.toml.
type ExportConfigStore struct{}

// NewExportConfigStore creates a new export config store.
func NewExportConfigStore() *ExportConfigStore {
	return &ExportConfigStore{}
}

func exportConfigPath(dir string) string {
	return filepath.Join(dir, ".batchman", exportConfigFileName)
}

// LoadExportConfig loads the export configuration for a directory.
// A missing or unreadable file yields the defaults, with the target
// directory placed under the tracked directory itself.
func (s *ExportConfigStore) LoadExportConfig(dir string) (domain.ExportConfig, error) {
	cfg := domain.DefaultExportConfig()
	cfg.TargetDir = filepath.Join(dir, "exports")

	data, err := os.ReadFile(exportConfigPath(dir))
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("read export config for %s: %v, using defaults", dir, err)
		}
		return cfg, nil
	}

	var f exportConfigFile
	if err := toml.Unmarshal(data, &f); err != nil {
		logger.Warn("parse export config for %s: %v, using defaults", dir, err)
		return cfg, nil
	}

	if f.TargetDir != "" {
		cfg.TargetDir = f.TargetDir
		if !filepath.IsAbs(cfg.TargetDir) {
			cfg.TargetDir = filepath.Join(dir, cfg.TargetDir)
		}
	}
	if f.Format != "" {
		cfg.Format = domain.ExportFormat(f.Format)
	}
	if f.PNGCompression != 0 {
		cfg.PNGCompression = f.PNGCompression
	}
	if f.WebPMethod != 0 {
		cfg.WebPMethod = f.WebPMethod
	}
	cfg.Optimize = f.Optimize

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("export config for %s: %w", dir, err)
	}
	return cfg, nil
}

// SaveExportConfig persists the export configuration for a directory.
func (s *ExportConfigStore) SaveExportConfig(dir string, cfg domain.ExportConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	f := exportConfigFile{
		TargetDir:      cfg.TargetDir,
		Format:         string(cfg.Format),
		PNGCompression: cfg.PNGCompression,
		WebPMethod:     cfg.WebPMethod,
		Optimize:       cfg.Optimize,
	}

	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshalling export config: %w", err)
	}

	path := exportConfigPath(dir)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing export config: %w", err)
	}
	return nil
}
