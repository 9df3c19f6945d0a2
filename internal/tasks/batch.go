package tasks

import (
	"context"
	"sync"

	"github.com/desertthunder/stacksync/internal/operations"
	"golang.org/x/time/rate"
)

// Job is one operation invocation in a batch.
type Job struct {
	ID        string            // Caller-chosen label, typically the input file name
	Operation string            // Registered operation name
	Inputs    operations.Inputs // Operation inputs
}

// JobResult is the outcome of one [Job].
type JobResult struct {
	Job    Job
	Result *DispatchResult
	Err    error
}

// BatchOpts contains configuration for batch dispatches.
type BatchOpts struct {
	NumWorkers int     // Concurrent workers (default: 4, max: 10)
	RateLimit  float64 // Jobs started per second; 0 means unlimited
}

// BatchResult summarizes a batch. Results are in job order.
type BatchResult struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []JobResult
}

type indexedJob struct {
	index int
	job   Job
}

type indexedResult struct {
	index  int
	result JobResult
}

// Batch runs jobs on a worker pool.
//
// Individual job failures are collected in the result. When ctx is cancelled, jobs not yet
// started are skipped and ctx's error is returned with the partial result.
func (d *Dispatcher) Batch(ctx context.Context, progress chan<- ProgressUpdate, jobs []Job, opts BatchOpts) (*BatchResult, error) {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	limiter := rate.NewLimiter(limit, 1)

	queue := make(chan indexedJob, len(jobs))
	results := make(chan indexedResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go d.batchWorker(ctx, &wg, queue, results)
	}

	go func() {
		defer close(queue)
		for i, job := range jobs {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			queue <- indexedJob{index: i, job: job}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]*JobResult, len(jobs))
	out := &BatchResult{Total: len(jobs)}
	completed := 0

	for res := range results {
		completed++
		r := res.result
		ordered[res.index] = &r

		if r.Err == nil {
			out.Succeeded++
			sendProgress(progress, jobCompletedUpdate(completed, len(jobs), r.Job))
		} else {
			out.Failed++
			sendProgress(progress, jobFailedUpdate(completed, len(jobs), r.Job, r.Err))
		}
	}

	out.Results = make([]JobResult, 0, completed)
	for _, r := range ordered {
		if r != nil {
			out.Results = append(out.Results, *r)
		}
	}

	if completed < len(jobs) {
		return out, ctx.Err()
	}
	return out, nil
}

// batchWorker dispatches jobs from the queue until it is closed or ctx is done.
func (d *Dispatcher) batchWorker(ctx context.Context, wg *sync.WaitGroup, queue <-chan indexedJob, results chan<- indexedResult) {
	defer wg.Done()

	for item := range queue {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := d.Dispatch(ctx, item.job.Operation, item.job.Inputs, nil)
		results <- indexedResult{index: item.index, result: JobResult{Job: item.job, Result: res, Err: err}}
	}
}
