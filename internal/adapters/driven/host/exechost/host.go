package exechost

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/atelier-tools/batchman/internal/core/domain"
	"github.com/atelier-tools/batchman/internal/core/ports/driven"
	"github.com/atelier-tools/batchman/internal/logger"
)

// Ensure Host implements the optional and required capabilities.
var (
	_ driven.Renderer        = (*Host)(nil)
	_ driven.DocumentFactory = (*Host)(nil)
	_ driven.FragmentHost    = (*Host)(nil)
	_ driven.Optimizer       = (*Host)(nil)
)

// Host runs host application commands built from the configured
// templates.
type Host struct {
	settings domain.HostSettings
}

// NewHost creates a host adapter from the command templates.
func NewHost(settings domain.HostSettings) *Host {
	return &Host{settings: settings}
}

// HasFactory reports whether the import capability is configured.
func (h *Host) HasFactory() bool {
	return h.settings.ImportCommand != ""
}

// HasFragments reports whether the capture and insert capabilities are
// configured.
func (h *Host) HasFragments() bool {
	return h.settings.CaptureCommand != "" && h.settings.InsertCommand != ""
}

// HasOptimizer reports whether the optimize capability is configured.
func (h *Host) HasOptimizer() bool {
	return h.settings.OptimizeCommand != ""
}

// RenderAndSave renders the job's source document to its target path.
func (h *Host) RenderAndSave(ctx context.Context, job domain.ExportJob, cfg domain.ExportConfig) error {
	if h.settings.RenderCommand == "" {
		return domain.ErrNotImplemented
	}
	subs := map[string]string{
		"{source}": job.Source.Path,
		"{target}": job.TargetPath,
		"{format}": string(cfg.Format),
	}
	_, err := h.run(ctx, h.settings.RenderCommand, subs, nil)
	return err
}

// CreateFromImage builds a new document at dest from an image file.
func (h *Host) CreateFromImage(ctx context.Context, source, dest string, opts domain.ImportOptions) error {
	if h.settings.ImportCommand == "" {
		return domain.ErrNotImplemented
	}
	subs := map[string]string{
		"{source}": source,
		"{target}": dest,
		"{dpi}":    strconv.Itoa(opts.DPI),
	}
	_, err := h.run(ctx, h.settings.ImportCommand, subs, nil)
	return err
}

// CaptureFragment reads a fragment payload from the capture command's
// stdout.
func (h *Host) CaptureFragment(ctx context.Context, kind domain.FragmentKind) ([]byte, error) {
	if h.settings.CaptureCommand == "" {
		return nil, domain.ErrNotImplemented
	}
	subs := map[string]string{"{kind}": string(kind)}
	return h.run(ctx, h.settings.CaptureCommand, subs, nil)
}

// InsertFragment hands a payload to the insert command on stdin.
func (h *Host) InsertFragment(ctx context.Context, kind domain.FragmentKind, payload []byte) error {
	if h.settings.InsertCommand == "" {
		return domain.ErrNotImplemented
	}
	subs := map[string]string{"{kind}": string(kind)}
	_, err := h.run(ctx, h.settings.InsertCommand, subs, payload)
	return err
}

// Optimize rewrites an exported target file in place.
func (h *Host) Optimize(ctx context.Context, targetPath string, cfg domain.ExportConfig) error {
	if h.settings.OptimizeCommand == "" {
		return domain.ErrNotImplemented
	}
	subs := map[string]string{
		"{target}": targetPath,
		"{format}": string(cfg.Format),
	}
	_, err := h.run(ctx, h.settings.OptimizeCommand, subs, nil)
	return err
}

// run executes one command template. Placeholders are substituted after
// splitting, so substituted paths may contain spaces.
func (h *Host) run(ctx context.Context, template string, subs map[string]string, stdin []byte) ([]byte, error) {
	argv := buildArgv(template, subs)
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty host command: %w", domain.ErrInvalidInput)
	}

	logger.Debug("host command: %s", strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s: %w", argv[0], err)
		}
		return nil, fmt.Errorf("%s: %w: %s", argv[0], err, msg)
	}
	return stdout.Bytes(), nil
}

// buildArgv splits a template on whitespace and substitutes placeholders
// per argument.
func buildArgv(template string, subs map[string]string) []string {
	fields := strings.Fields(template)
	argv := make([]string, 0, len(fields))
	for _, field := range fields {
		for placeholder, value := range subs {
			field = strings.ReplaceAll(field, placeholder, value)
		}
		argv = append(argv, field)
	}
	return argv
}
