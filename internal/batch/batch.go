package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nao1215/reportcard/internal/model"
	"github.com/nao1215/reportcard/internal/report"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of reports built at the same time when
// WithConcurrency is not given.
const DefaultConcurrency = 4

// Job is one student to generate reports for.
type Job struct {
	Student  model.StudentRecord
	Subjects []model.SubjectRecord
}

// Outcome is the result of one Job.
type Outcome struct {
	// Index is the position of the job in the submitted slice.
	Index int

	Job Job

	// Results holds one entry per output format that was written.
	Results []report.Result

	// Err is the first build error for this job, if any.
	Err error
}

// Builder generates a single-student report. *report.Builder satisfies it.
type Builder interface {
	Student(student model.StudentRecord, subjects []model.SubjectRecord) (report.Result, error)
}

// Generator builds student reports concurrently, one Builder per output format.
type Generator struct {
	builders    []Builder
	concurrency int
	logger      *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithConcurrency sets the maximum number of jobs in flight.
// Non-positive values keep the default.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

// WithLogger sets the logger used for batch progress.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a Generator that runs every builder for each job.
func NewGenerator(builders []Builder, opts ...Option) *Generator {
	g := &Generator{
		builders:    builders,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Generate builds reports for all jobs and returns their outcomes in job
// order. The error is non-nil only when ctx was cancelled; outcomes of jobs
// that never started are left zero apart from Index and Job. A Generator may
// run several Generate calls at once.
func (g *Generator) Generate(ctx context.Context, jobs []Job) ([]Outcome, error) {
	g.logger.Info("starting batch generation",
		"students", len(jobs),
		"formats", len(g.builders),
		"concurrency", g.concurrency,
	)
	start := time.Now()

	// results is indexed by job position and guarded by mu.
	var mu sync.Mutex
	results := make([]Outcome, len(jobs))
	for i, job := range jobs {
		results[i] = Outcome{Index: i, Job: job}
	}

	err := g.run(ctx, jobs, func(o Outcome) {
		mu.Lock()
		results[o.Index] = o
		mu.Unlock()
	})

	g.logger.Info("batch generation complete",
		"students", len(jobs),
		"elapsed", time.Since(start),
	)

	mu.Lock()
	defer mu.Unlock()
	return results, err
}

// GenerateWithCallback builds reports for all jobs and calls callback as each
// job completes. The callback runs on the worker goroutine and must be safe
// for concurrent use.
func (g *Generator) GenerateWithCallback(ctx context.Context, jobs []Job, callback func(Outcome)) error {
	g.logger.Info("starting batch generation with callback",
		"students", len(jobs),
		"concurrency", g.concurrency,
	)
	return g.run(ctx, jobs, callback)
}

func (g *Generator) run(ctx context.Context, jobs []Job, done func(Outcome)) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)

	for i, job := range jobs {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			done(g.build(ctx, i, job))

			// Per-student failures stay in the outcome so the batch carries on.
			return nil
		})
	}

	return eg.Wait()
}

// build runs every builder for one job, stopping at the first failure.
func (g *Generator) build(ctx context.Context, index int, job Job) Outcome {
	out := Outcome{Index: index, Job: job}

	for _, b := range g.builders {
		if err := ctx.Err(); err != nil {
			out.Err = err
			return out
		}

		res, err := b.Student(job.Student, job.Subjects)
		if err != nil {
			g.logger.Warn("report generation failed",
				"register_no", job.Student.RegisterNo,
				"error", err,
			)
			out.Err = err
			return out
		}
		out.Results = append(out.Results, res)
	}

	g.logger.Debug("student reports generated",
		"register_no", job.Student.RegisterNo,
		"documents", len(out.Results),
	)
	return out
}

// Failed returns the outcomes that carry an error.
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
