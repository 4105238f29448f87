package driving

import "github.com/atelier-tools/batchman/internal/core/domain"

// SettingsService manages user-level application settings.
type SettingsService interface {
	// Get retrieves current settings, with defaults applied.
	Get() (*domain.AppSettings, error)

	// Save persists settings.
	Save(settings *domain.AppSettings) error
}
