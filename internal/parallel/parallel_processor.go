// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"ownerparse/internal/history"
	"ownerparse/internal/observability"
)

// MaxWorkers caps the pool size when the worker count is derived from the CPU count
const MaxWorkers = 8

// ParallelProcessor manages parallel file processing
type ParallelProcessor struct {
	workers  int
	observer *observability.StandardObserver
}

// ProcessingStats tracks parallel processing statistics
type ProcessingStats struct {
	TotalFiles     int           `json:"total_files"`
	ProcessedFiles int           `json:"processed_files"`
	FailedFiles    int           `json:"failed_files"`
	TotalOwners    int           `json:"total_owners"`
	TotalInvalid   int           `json:"total_invalid"`
	TotalDuration  time.Duration `json:"total_duration_ms"`
	WorkerCount    int           `json:"worker_count"`
	AvgFileTime    time.Duration `json:"avg_file_time_ms"`
}

// FileError records a file that could not be processed
type FileError struct {
	FilePath string
	Err      error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.FilePath, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// NewParallelProcessor creates a new parallel processor. A non-positive
// worker count uses the CPU count, capped at MaxWorkers.
func NewParallelProcessor(workers int, observer *observability.StandardObserver) *ParallelProcessor {
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > MaxWorkers {
			workers = MaxWorkers
		}
	}

	return &ParallelProcessor{
		workers:  workers,
		observer: observer,
	}
}

// ProgressCallback is called when a file is completed
type ProgressCallback func(completed, total int, currentFile string)

// ProcessFiles processes multiple files in parallel
func (pp *ParallelProcessor) ProcessFiles(ctx context.Context, filePaths []string, loader Loader, builder Builder) ([]history.Result, []FileError, *ProcessingStats) {
	return pp.ProcessFilesWithProgress(ctx, filePaths, loader, builder, nil)
}

// ProcessFilesWithProgress processes multiple files in parallel with progress callback.
// Results and errors are returned in the order of filePaths.
func (pp *ParallelProcessor) ProcessFilesWithProgress(ctx context.Context, filePaths []string, loader Loader, builder Builder, progressCallback ProgressCallback) ([]history.Result, []FileError, *ProcessingStats) {
	start := time.Now()

	var finishTiming func(bool, map[string]interface{})
	if pp.observer != nil {
		finishTiming = pp.observer.StartTiming("parallel_processor", "process_files", "batch")
	}

	workers := pp.workers
	if workers > len(filePaths) && len(filePaths) > 0 {
		workers = len(filePaths)
	}
	pool := NewWorkerPool(ctx, workers, pp.observer)
	pool.Start()

	// Submit jobs in a separate goroutine to prevent deadlock
	jobCount := len(filePaths)
	go func() {
		defer pool.Close()
		for i, filePath := range filePaths {
			job := &Job{
				Index:    i,
				FilePath: filePath,
				JobID:    fmt.Sprintf("job_%d", i),
				Loader:   loader,
				Builder:  builder,
			}
			if !pool.Submit(job) {
				return
			}
		}
	}()

	// Collect results
	collected := make([]*Result, jobCount)
	totalDuration := time.Duration(0)
	completed := 0
collect:
	for completed < jobCount {
		select {
		case result := <-pool.Results():
			collected[result.Index] = result
			totalDuration += result.Duration
			completed++
			if progressCallback != nil {
				progressCallback(completed, jobCount, result.FilePath)
			}
		case <-ctx.Done():
			break collect
		}
	}
	pool.cancel()
	pool.Stop()

	stats := &ProcessingStats{
		TotalFiles:  jobCount,
		WorkerCount: pool.Workers(),
	}
	var (
		results []history.Result
		errs    []FileError
	)
	for i, result := range collected {
		if result == nil {
			errs = append(errs, FileError{FilePath: filePaths[i], Err: context.Cause(ctx)})
			continue
		}
		if result.Error != nil {
			errs = append(errs, FileError{FilePath: result.FilePath, Err: result.Error})
			pp.observer.LogOperation(observability.StandardObservabilityData{
				Component: "parallel_processor",
				Operation: "file_processing",
				Success:   false,
				Error:     FileError{FilePath: result.FilePath, Err: result.Error}.Error(),
			})
			continue
		}
		results = append(results, result.Output)
		stats.TotalOwners += result.Output.OwnerCount()
		stats.TotalInvalid += len(result.Output.Invalid)
	}
	stats.ProcessedFiles = len(results)
	stats.FailedFiles = len(errs)
	stats.TotalDuration = time.Since(start)
	stats.AvgFileTime = totalDuration / time.Duration(max(completed, 1))

	if finishTiming != nil {
		finishTiming(len(errs) == 0, map[string]interface{}{
			"total_files":     jobCount,
			"processed_files": stats.ProcessedFiles,
			"owners":          stats.TotalOwners,
			"invalid":         stats.TotalInvalid,
			"worker_count":    stats.WorkerCount,
			"duration_ms":     stats.TotalDuration.Milliseconds(),
		})
	}

	return results, errs, stats
}
