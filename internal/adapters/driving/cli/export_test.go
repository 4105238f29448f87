package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-tools/batchman/internal/core/domain"
	"github.com/atelier-tools/batchman/internal/core/ports/driving"
)

// mockExportService implements driving.ExportService for testing.
type mockExportService struct {
	jobs      []domain.ExportJob
	planErr   error
	report    *domain.ExportReport
	exportErr error
}

func (m *mockExportService) Plan(_ context.Context, _ string) ([]domain.ExportJob, error) {
	return m.jobs, m.planErr
}

func (m *mockExportService) Export(_ context.Context, dir string) (*domain.ExportReport, error) {
	if m.exportErr != nil {
		return nil, m.exportErr
	}
	if m.report != nil {
		return m.report, nil
	}
	return &domain.ExportReport{Dir: dir, StartedAt: time.Now(), FinishedAt: time.Now()}, nil
}

func (m *mockExportService) Status(_ context.Context, dir string) (*driving.ExportStatus, error) {
	return &driving.ExportStatus{Dir: dir}, nil
}

func setupExportTest(mock *mockExportService) func() {
	oldService := exportService
	oldDryRun := exportDryRun
	exportService = mock
	return func() {
		exportService = oldService
		exportDryRun = oldDryRun
	}
}

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestExportCmd_Use(t *testing.T) {
	assert.Equal(t, "export [directory]", exportCmd.Use)
}

func TestExportCmd_NotConfigured(t *testing.T) {
	cleanup := setupExportTest(nil)
	defer cleanup()
	exportService = nil

	_, err := executeCmd(t, "export", t.TempDir())
	assert.Error(t, err)
}

func TestExportCmd_Success(t *testing.T) {
	mock := &mockExportService{
		report: &domain.ExportReport{
			Succeeded: []domain.ExportSuccess{{Path: "a.kra"}, {Path: "b.kra"}},
		},
	}
	cleanup := setupExportTest(mock)
	defer cleanup()

	out, err := executeCmd(t, "export", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 documents")
}

func TestExportCmd_ReportsFailures(t *testing.T) {
	mock := &mockExportService{
		report: &domain.ExportReport{
			Succeeded: []domain.ExportSuccess{{Path: "a.kra"}},
			Failed:    []domain.ExportFailure{{Path: "b.kra", Err: errors.New("render crashed")}},
		},
	}
	cleanup := setupExportTest(mock)
	defer cleanup()

	out, err := executeCmd(t, "export", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "failed: b.kra")
	assert.Contains(t, out, "render crashed")
}

func TestExportCmd_AlreadyRunning(t *testing.T) {
	mock := &mockExportService{exportErr: domain.ErrExportInProgress}
	cleanup := setupExportTest(mock)
	defer cleanup()

	_, err := executeCmd(t, "export", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}

func TestExportCmd_DryRun(t *testing.T) {
	mock := &mockExportService{
		jobs: []domain.ExportJob{
			{RelPath: "a.kra", TargetPath: "/out/a.png", Reason: domain.ReasonNeverExported},
		},
	}
	cleanup := setupExportTest(mock)
	defer cleanup()

	out, err := executeCmd(t, "export", "--dry-run", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "a.kra -> /out/a.png (never-exported)")
	assert.Contains(t, out, "1 to export.")
}

func TestExportCmd_MissingDirectory(t *testing.T) {
	cleanup := setupExportTest(&mockExportService{})
	defer cleanup()

	_, err := executeCmd(t, "export", "/does/not/exist")
	assert.Error(t, err)
}

func TestStatusCmd_UpToDate(t *testing.T) {
	cleanup := setupExportTest(&mockExportService{})
	defer cleanup()

	out, err := executeCmd(t, "status", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Everything up to date.")
}

func TestStatusCmd_ListsJobs(t *testing.T) {
	mock := &mockExportService{
		jobs: []domain.ExportJob{
			{RelPath: "a.kra", TargetPath: "/out/a.png", Reason: domain.ReasonContentChanged},
			{RelPath: "b.kra", TargetPath: "/out/b.png", Reason: domain.ReasonConfigChanged},
		},
	}
	cleanup := setupExportTest(mock)
	defer cleanup()

	out, err := executeCmd(t, "status", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "content-changed")
	assert.Contains(t, out, "config-changed")
	assert.Contains(t, out, "2 to export.")
}
