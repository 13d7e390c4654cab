package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/journalrank/core"
	"github.com/poiesic/journalrank/storage"
)

// Pipeline normalizes drafts concurrently and stores the resulting entries.
type Pipeline struct {
	entryRepository storage.EntryRepository
	pool            *ants.Pool
	proc            processor
	progress        io.Writer
	reportInterval  int
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent normalization.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithProgress reports normalization progress to w every interval drafts.
func WithProgress(w io.Writer, interval int) Option {
	return func(p *Pipeline) error {
		if interval < 1 {
			return fmt.Errorf("progress interval must be greater than 0")
		}
		p.progress = w
		p.reportInterval = interval
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(entryRepository storage.EntryRepository, opts ...Option) (*Pipeline, error) {
	if entryRepository == nil {
		return nil, ErrEntryRepositoryRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		entryRepository: entryRepository,
		pool:            pool,
		proc:            draftNormalizer{},
		logger:          slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	p.logger = p.logger.With("component", "ingestion")

	return p, nil
}

// Ingest normalizes drafts for userID and stores every valid one.
// Rejected drafts are listed in the report; the returned error is reserved
// for failures that stop the whole batch, such as a storage error.
func (p *Pipeline) Ingest(ctx context.Context, userID string, drafts []Draft) (*Report, error) {
	if err := core.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if p.pool.IsClosed() {
		return nil, ErrPipelineReleased
	}

	start := time.Now()
	var tracker *ProgressTracker
	if p.progress != nil {
		tracker = NewProgressTracker(p.progress, len(drafts), p.reportInterval)
		tracker.Start()
	}

	entries := make([]*core.Entry, len(drafts))
	errs := make([]error, len(drafts))

	var wg sync.WaitGroup
	for i, draft := range drafts {
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			entries[i], errs[i] = p.proc.process(ctx, userID, draft)
			if tracker != nil {
				tracker.Increment(1)
			}
		})
		if err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	if tracker != nil {
		tracker.Finish()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{}
	valid := make([]*core.Entry, 0, len(entries))
	for i, entry := range entries {
		if errs[i] != nil {
			p.logger.Debug("draft rejected", "index", i, "err", errs[i])
			report.Rejected = append(report.Rejected, Rejection{Index: i, Err: errs[i]})
			continue
		}
		valid = append(valid, entry)
	}

	existing, err := p.countExisting(ctx, valid)
	if err != nil {
		return nil, err
	}
	if len(valid) > 0 {
		if _, err := p.entryRepository.AddEntries(ctx, valid...); err != nil {
			return nil, fmt.Errorf("failed to store entries: %w", err)
		}
	}

	report.Stored = len(valid)
	report.Existing = existing
	report.Elapsed = time.Since(start)
	p.logger.Info("ingested entries",
		"user", userID,
		"stored", report.Stored,
		"existing", report.Existing,
		"rejected", len(report.Rejected),
		"elapsed", report.Elapsed)
	return report, nil
}

// countExisting counts entries that are already stored or repeated within the batch.
func (p *Pipeline) countExisting(ctx context.Context, entries []*core.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	ids := make([]core.ID, 0, len(entries))
	seen := make(map[core.ID]bool, len(entries))
	repeated := 0
	for _, e := range entries {
		id := core.EntryID(e.UserID, e.Date, e.Text)
		if seen[id] {
			repeated++
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	stored, err := p.entryRepository.GetEntries(ctx, ids...)
	if err != nil {
		return 0, fmt.Errorf("failed to look up existing entries: %w", err)
	}
	return repeated + len(stored), nil
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
