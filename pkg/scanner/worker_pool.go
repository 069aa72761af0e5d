package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/flight505/storygen/pkg/component"
	"github.com/flight505/storygen/pkg/parser"
	"github.com/flight505/storygen/pkg/util"
)

// parseJob is one file for the pool to parse.
type parseJob struct {
	FilePath string
	JobID    int
}

// parseResult is the metadata produced for one file.
type parseResult struct {
	FilePath string
	Meta     *component.Metadata
	JobID    int
}

// workerPool runs per-file parses on a fixed set of goroutines. Each parse
// only reads its own file and builds a private metadata record, so workers
// need no synchronization beyond the channels.
type workerPool struct {
	numWorkers int
	jobs       chan parseJob
	results    chan parseResult
	errors     chan FileError
	wg         sync.WaitGroup
	sources    *util.SourceCache
	logger     *slog.Logger

	ctx        context.Context
	cancel     context.CancelFunc
	started    atomic.Bool
	stopped    atomic.Bool
	jobsClosed atomic.Bool

	jobsSubmitted atomic.Int64
	jobsParsed    atomic.Int64
	jobsFailed    atomic.Int64
}

func newWorkerPool(numWorkers int, sources *util.SourceCache, logger *slog.Logger) *workerPool {
	numWorkers = util.PoolSizeWithOverride(numWorkers)
	ctx, cancel := context.WithCancel(context.Background())
	return &workerPool{
		numWorkers: numWorkers,
		jobs:       make(chan parseJob, numWorkers*2),
		results:    make(chan parseResult, numWorkers),
		errors:     make(chan FileError, numWorkers),
		sources:    sources,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start spawns the workers. Must be called before Submit.
func (wp *workerPool) Start() {
	if !wp.started.CompareAndSwap(false, true) {
		wp.logger.Warn("worker pool already started")
		return
	}
	wp.logger.Debug("starting worker pool", "workers", wp.numWorkers)
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

func (wp *workerPool) worker(id int) {
	defer wp.wg.Done()
	for {
		select {
		case <-wp.ctx.Done():
			return
		case job, ok := <-wp.jobs:
			if !ok {
				return
			}
			wp.process(id, job)
		}
	}
}

func (wp *workerPool) process(workerID int, job parseJob) {
	src, err := wp.sources.Read(job.FilePath)
	if err != nil {
		wp.jobsFailed.Add(1)
		wp.errors <- FileError{FilePath: job.FilePath, Err: fmt.Errorf("read file: %w", err)}
		return
	}

	meta, err := parser.Parse(job.FilePath, src)
	if err != nil {
		wp.jobsFailed.Add(1)
		wp.errors <- FileError{FilePath: job.FilePath, Err: err}
		return
	}

	wp.jobsParsed.Add(1)
	wp.logger.Debug("parsed component",
		"worker_id", workerID,
		"file", job.FilePath,
		"component", meta.Name,
		"props", len(meta.Props))
	wp.results <- parseResult{FilePath: job.FilePath, Meta: meta, JobID: job.JobID}
}

// Submit enqueues a job; blocks when the jobs channel is full.
func (wp *workerPool) Submit(job parseJob) error {
	if wp.stopped.Load() {
		return fmt.Errorf("worker pool is stopped")
	}
	wp.jobsSubmitted.Add(1)
	select {
	case <-wp.ctx.Done():
		return fmt.Errorf("worker pool cancelled")
	case wp.jobs <- job:
		return nil
	}
}

func (wp *workerPool) Results() <-chan parseResult { return wp.results }
func (wp *workerPool) Errors() <-chan FileError    { return wp.errors }

// FinishSubmitting closes the jobs channel so workers exit once it drains.
// Idempotent.
func (wp *workerPool) FinishSubmitting() {
	if wp.jobsClosed.CompareAndSwap(false, true) {
		close(wp.jobs)
	}
}

// Stop shuts the pool down: no new jobs, waits for in-flight parses, then
// closes the result and error channels. Idempotent.
func (wp *workerPool) Stop() {
	if !wp.stopped.CompareAndSwap(false, true) {
		return
	}
	if wp.jobsClosed.CompareAndSwap(false, true) {
		close(wp.jobs)
	}
	wp.wg.Wait()
	close(wp.results)
	close(wp.errors)
	wp.cancel()

	wp.logger.Debug("worker pool stopped",
		"jobs_submitted", wp.jobsSubmitted.Load(),
		"jobs_parsed", wp.jobsParsed.Load(),
		"jobs_failed", wp.jobsFailed.Load())
}
