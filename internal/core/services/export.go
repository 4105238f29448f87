package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-tools/batchman/internal/core/domain"
	"github.com/atelier-tools/batchman/internal/core/ports/driven"
	"github.com/atelier-tools/batchman/internal/core/ports/driving"
	"github.com/atelier-tools/batchman/internal/logger"
)

// Ensure ExportManager implements the interface.
var _ driving.ExportService = (*ExportManager)(nil)

// defaultWorkers bounds concurrent render jobs when settings provide none.
const defaultWorkers = 2

// ExportManager coordinates incremental export: it plans the minimal job
// set against the per-directory export records and executes it through the
// host renderer.
type ExportManager struct {
	lister    driven.DocumentLister
	stores    driven.StoreFactory
	configs   driven.ExportConfigStore
	renderer  driven.Renderer
	optimizer driven.Optimizer
	workers   int

	// Status tracking; also serialises batches per directory, so a new
	// plan never races an in-flight execution for the same records.
	mu     sync.RWMutex
	active map[string]*driving.ExportStatus
}

// NewExportManager creates a new export manager.
// The optimizer is optional - if nil, post-export optimisation is disabled.
func NewExportManager(
	lister driven.DocumentLister,
	stores driven.StoreFactory,
	configs driven.ExportConfigStore,
	renderer driven.Renderer,
	optimizer driven.Optimizer,
	workers int,
) *ExportManager {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &ExportManager{
		lister:    lister,
		stores:    stores,
		configs:   configs,
		renderer:  renderer,
		optimizer: optimizer,
		workers:   workers,
		active:    make(map[string]*driving.ExportStatus),
	}
}

// Plan returns the minimal job set for the directory without executing.
func (m *ExportManager) Plan(ctx context.Context, dir string) ([]domain.ExportJob, error) {
	cfg, err := m.configs.LoadExportConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("load export config: %w", err)
	}
	return m.plan(ctx, dir, cfg)
}

func (m *ExportManager) plan(ctx context.Context, dir string, cfg domain.ExportConfig) ([]domain.ExportJob, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// The one fatal listing error: the directory itself is unreadable.
	docs, err := m.lister.ListDocuments(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	records, err := m.stores.ExportRecords(dir)
	if err != nil {
		return nil, fmt.Errorf("open export records: %w", err)
	}

	cfgFP := cfg.Fingerprint()
	var jobs []domain.ExportJob
	for _, doc := range docs {
		rel, err := filepath.Rel(dir, doc.Path)
		if err != nil {
			rel = doc.Name
		}

		fp, err := FingerprintFile(doc.Path)
		if err != nil {
			// Schedule with an unset fingerprint: the executor rehashes
			// after rendering, and if the file is truly unreadable the
			// render fails and is reported. Never silently skip.
			logger.Warn("fingerprint %s: %v", doc.Path, err)
			fp = ""
		}

		reason, scheduled := scheduleReason(ctx, records, rel, fp, cfgFP)
		if !scheduled {
			continue
		}
		jobs = append(jobs, domain.ExportJob{
			Source:            doc,
			RelPath:           rel,
			Fingerprint:       fp,
			TargetPath:        cfg.TargetPath(doc.Name),
			ConfigFingerprint: cfgFP,
			Reason:            reason,
		})
	}

	// The job set carries no ordering dependency; sorting keeps it
	// deterministic for identical inputs.
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].RelPath < jobs[j].RelPath })
	return jobs, nil
}

// scheduleReason decides whether a document needs export and why.
func scheduleReason(
	ctx context.Context,
	records driven.ExportRecordStore,
	rel string,
	fp domain.Fingerprint,
	cfgFP domain.Fingerprint,
) (domain.ScheduleReason, bool) {
	rec, err := records.Get(ctx, rel)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			// Unreadable record degrades to "never exported".
			logger.Warn("read export record %s: %v", rel, err)
		}
		return domain.ReasonNeverExported, true
	}
	if rec.ConfigFingerprint != cfgFP {
		return domain.ReasonConfigChanged, true
	}
	if fp.IsZero() || rec.Fingerprint != fp {
		return domain.ReasonContentChanged, true
	}
	if _, err := os.Stat(rec.TargetPath); err != nil {
		return domain.ReasonTargetMissing, true
	}
	return "", false
}

// Export plans and executes in one call.
func (m *ExportManager) Export(ctx context.Context, dir string) (*domain.ExportReport, error) {
	cfg, err := m.configs.LoadExportConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("load export config: %w", err)
	}

	if !m.begin(dir) {
		return nil, domain.ErrExportInProgress
	}
	defer m.finish(dir)

	jobs, err := m.plan(ctx, dir, cfg)
	if err != nil {
		return nil, err
	}
	m.setPlanned(dir, len(jobs))

	if err := os.MkdirAll(cfg.TargetDir, 0o755); err != nil {
		return nil, fmt.Errorf("create target directory: %w", err)
	}

	records, err := m.stores.ExportRecords(dir)
	if err != nil {
		return nil, fmt.Errorf("open export records: %w", err)
	}

	logger.Info("exporting %d of directory %s", len(jobs), dir)
	return m.execute(ctx, dir, cfg, records, jobs), nil
}

// execute runs jobs on a bounded worker pool. Failure of one job never
// aborts the others; the report is the union of successes and failures.
// The planner guarantees at most one job per path, so each Record call is
// independently atomic and completion order does not matter.
func (m *ExportManager) execute(
	ctx context.Context,
	dir string,
	cfg domain.ExportConfig,
	records driven.ExportRecordStore,
	jobs []domain.ExportJob,
) *domain.ExportReport {
	report := &domain.ExportReport{
		ID:        uuid.NewString(),
		Dir:       dir,
		StartedAt: time.Now(),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	sem := make(chan struct{}, m.workers)

	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(job domain.ExportJob) {
			defer wg.Done()
			defer func() { <-sem }()

			err := m.runJob(ctx, records, cfg, job)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("export %s: %v", job.RelPath, err)
				report.Failed = append(report.Failed, domain.ExportFailure{Path: job.RelPath, Err: err})
				m.bump(dir, false)
				return
			}
			report.Succeeded = append(report.Succeeded, domain.ExportSuccess{
				Path:       job.RelPath,
				TargetPath: job.TargetPath,
				Reason:     job.Reason,
			})
			m.bump(dir, true)
		}(job)
	}
	wg.Wait()

	sort.Slice(report.Succeeded, func(i, j int) bool { return report.Succeeded[i].Path < report.Succeeded[j].Path })
	sort.Slice(report.Failed, func(i, j int) bool { return report.Failed[i].Path < report.Failed[j].Path })
	report.FinishedAt = time.Now()
	return report
}

// runJob renders one document and records the export. The record is
// written only after the render and any optimisation fully completed, so
// a crash mid-batch never leaves a record ahead of the actual target.
func (m *ExportManager) runJob(
	ctx context.Context,
	records driven.ExportRecordStore,
	cfg domain.ExportConfig,
	job domain.ExportJob,
) error {
	if err := m.renderer.RenderAndSave(ctx, job, cfg); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if cfg.Optimize && cfg.Format == domain.FormatPNG && m.optimizer != nil {
		if err := m.optimizer.Optimize(ctx, job.TargetPath, cfg); err != nil {
			return fmt.Errorf("optimize: %w", err)
		}
	}

	sourceFP := job.Fingerprint
	if sourceFP.IsZero() {
		fp, err := FingerprintFile(job.Source.Path)
		if err != nil {
			return fmt.Errorf("fingerprint source: %w", err)
		}
		sourceFP = fp
	}

	targetFP, err := FingerprintFile(job.TargetPath)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTargetMissing, err)
	}

	rec := domain.ExportRecord{
		Path:              job.RelPath,
		Fingerprint:       sourceFP,
		ConfigFingerprint: job.ConfigFingerprint,
		TargetPath:        job.TargetPath,
		TargetFingerprint: targetFP,
		ExportedAt:        time.Now(),
	}
	if err := records.Record(ctx, rec); err != nil {
		return fmt.Errorf("record export: %w", err)
	}
	logger.Debug("exported %s -> %s", job.RelPath, job.TargetPath)
	return nil
}

// Status returns progress for the directory's running batch.
func (m *ExportManager) Status(_ context.Context, dir string) (*driving.ExportStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if status, ok := m.active[dir]; ok {
		// Return a copy to avoid race conditions
		s := *status
		return &s, nil
	}
	return &driving.ExportStatus{Dir: dir}, nil
}

// begin marks a batch as running; returns false if one already is.
func (m *ExportManager) begin(dir string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, running := m.active[dir]; running {
		return false
	}
	m.active[dir] = &driving.ExportStatus{Dir: dir, Running: true}
	return true
}

func (m *ExportManager) setPlanned(dir string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if status, ok := m.active[dir]; ok {
		status.Planned = n
	}
}

func (m *ExportManager) bump(dir string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status, present := m.active[dir]
	if !present {
		return
	}
	status.Processed++
	if !ok {
		status.Failures++
	}
}

func (m *ExportManager) finish(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, dir)
}
