// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ownerparse/internal/history"
	"ownerparse/internal/observability"
)

// Loader reads one property record from a file
type Loader interface {
	Load(path string) (history.Property, error)
}

// Builder turns a property record into its ownership result
type Builder interface {
	Build(p history.Property) (history.Result, error)
}

// WorkerPool manages parallel property processing
type WorkerPool struct {
	workers  int
	jobs     chan *Job
	results  chan *Result
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	observer *observability.StandardObserver
}

// Job represents a file processing task
type Job struct {
	Index    int
	FilePath string
	JobID    string
	Loader   Loader
	Builder  Builder
}

// Result represents processing results
type Result struct {
	JobID    string
	Index    int
	FilePath string
	Output   history.Result
	Error    error
	Duration time.Duration
}

// NewWorkerPool creates a new worker pool bound to ctx
func NewWorkerPool(ctx context.Context, workers int, observer *observability.StandardObserver) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)

	return &WorkerPool{
		workers:  workers,
		jobs:     make(chan *Job, workers*2),
		results:  make(chan *Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
		observer: observer,
	}
}

// Workers returns the number of worker goroutines
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// Start initializes worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop gracefully shuts down the worker pool
func (wp *WorkerPool) Stop() {
	wp.wg.Wait()
	close(wp.results)
	wp.cancel()
}

// Submit adds a job to the queue. It returns false once the pool is cancelled.
func (wp *WorkerPool) Submit(job *Job) bool {
	select {
	case wp.jobs <- job:
		return true
	case <-wp.ctx.Done():
		return false
	}
}

// Close signals that no more jobs will be submitted
func (wp *WorkerPool) Close() {
	close(wp.jobs)
}

// Results returns the results channel
func (wp *WorkerPool) Results() <-chan *Result {
	return wp.results
}

// worker processes jobs from the queue
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobs {
		result := wp.processJob(job, id)

		select {
		case wp.results <- result:
		case <-wp.ctx.Done():
			return
		}
	}
}

// processJob loads and builds a single property
func (wp *WorkerPool) processJob(job *Job, workerID int) *Result {
	start := time.Now()

	var finishTiming func(bool, map[string]interface{})
	if wp.observer != nil {
		finishTiming = wp.observer.StartTiming("worker_pool", "process_job", job.FilePath)
	}

	result := &Result{JobID: job.JobID, Index: job.Index, FilePath: job.FilePath}

	if err := wp.ctx.Err(); err != nil {
		result.Error = err
	} else if job.Loader == nil || job.Builder == nil {
		result.Error = fmt.Errorf("job %s has no loader or builder", job.JobID)
	} else {
		result.Output, result.Error = wp.run(job)
	}
	result.Duration = time.Since(start)

	if finishTiming != nil {
		finishTiming(result.Error == nil, map[string]interface{}{
			"worker_id":   workerID,
			"owners":      result.Output.OwnerCount(),
			"invalid":     len(result.Output.Invalid),
			"duration_ms": result.Duration.Milliseconds(),
			"had_error":   result.Error != nil,
		})
	}

	return result
}

func (wp *WorkerPool) run(job *Job) (history.Result, error) {
	property, err := job.Loader.Load(job.FilePath)
	if err != nil {
		return history.Result{}, err
	}
	return job.Builder.Build(property)
}
