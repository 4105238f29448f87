package domain

import "strings"

// AppSettings are the user-level settings, persisted in the user config
// store. Per-directory export configuration lives separately next to the
// tracked directory.
type AppSettings struct {
	// DocumentExtension is the tracked document extension, with dot.
	DocumentExtension string

	// Workers bounds concurrent export jobs.
	Workers int

	// Host configures the external host application commands.
	Host HostSettings
}

// HostSettings are the command templates batchman drives the host
// application with. Placeholders: {source}, {target}, {dpi}, {kind}.
type HostSettings struct {
	// RenderCommand renders {source} and writes {target}.
	RenderCommand string

	// ImportCommand creates a document at {target} from image {source}.
	ImportCommand string

	// CaptureCommand prints a {kind} fragment payload on stdout.
	CaptureCommand string

	// InsertCommand applies a {kind} fragment payload read from stdin.
	InsertCommand string

	// OptimizeCommand post-processes a PNG {target} in place.
	OptimizeCommand string
}

// DefaultAppSettings returns the default settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		DocumentExtension: ".kra",
		Workers:           2,
		Host: HostSettings{
			RenderCommand:   "krita {source} --export --export-filename {target}",
			ImportCommand:   "krita {source} --export --export-filename {target}",
			OptimizeCommand: "oxipng --opt 4 --threads 1 --alpha {target}",
		},
	}
}

// NormalizeExtension ensures an extension starts with a dot.
func NormalizeExtension(ext string) string {
	if ext == "" {
		return ext
	}
	if !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}
