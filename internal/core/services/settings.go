package services

import (
	"fmt"

	"github.com/atelier-tools/batchman/internal/core/domain"
	"github.com/atelier-tools/batchman/internal/core/ports/driven"
	"github.com/atelier-tools/batchman/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDocumentExtension  = "documents.extension"
	keyWorkers            = "export.workers"
	keyHostRenderCommand  = "host.render_command"
	keyHostImportCommand  = "host.import_command"
	keyHostCaptureCommand = "host.capture_command"
	keyHostInsertCommand  = "host.insert_command"
	keyOptimizeCommand    = "host.optimize_command"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		DocumentExtension: domain.NormalizeExtension(
			s.getString(keyDocumentExtension, defaults.DocumentExtension)),
		Workers: s.getInt(keyWorkers, defaults.Workers),
		Host: domain.HostSettings{
			RenderCommand:   s.getString(keyHostRenderCommand, defaults.Host.RenderCommand),
			ImportCommand:   s.getString(keyHostImportCommand, defaults.Host.ImportCommand),
			CaptureCommand:  s.getString(keyHostCaptureCommand, defaults.Host.CaptureCommand),
			InsertCommand:   s.getString(keyHostInsertCommand, defaults.Host.InsertCommand),
			OptimizeCommand: s.getString(keyOptimizeCommand, defaults.Host.OptimizeCommand),
		},
	}
	if settings.Workers <= 0 {
		settings.Workers = defaults.Workers
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings.Workers <= 0 {
		return fmt.Errorf("workers must be positive: %w", domain.ErrInvalidInput)
	}

	pairs := []struct {
		key   string
		value any
	}{
		{keyDocumentExtension, domain.NormalizeExtension(settings.DocumentExtension)},
		{keyWorkers, settings.Workers},
		{keyHostRenderCommand, settings.Host.RenderCommand},
		{keyHostImportCommand, settings.Host.ImportCommand},
		{keyHostCaptureCommand, settings.Host.CaptureCommand},
		{keyHostInsertCommand, settings.Host.InsertCommand},
		{keyOptimizeCommand, settings.Host.OptimizeCommand},
	}
	for _, p := range pairs {
		if err := s.configStore.Set(p.key, p.value); err != nil {
			return fmt.Errorf("save %s: %w", p.key, err)
		}
	}
	return nil
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getInt(key string, fallback int) int {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetInt(key)
	}
	return fallback
}
