// Package worker provides a bounded parallel task runner for fan-out work.
// It encapsulates the goroutine-pool pattern used by cross-validation, where
// tasks are independent, share no mutable state, and the first error aborts
// the batch.
package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

const logFieldTasks = "tasks"

// Task processes one work item identified by its index.
type Task func(ctx context.Context, index int) error

// Config configures a parallel run.
type Config struct {
	// Name identifies the run for logging.
	Name string

	// Parallelism caps concurrently running tasks. Values below 1 run the
	// tasks sequentially.
	Parallelism int

	// Logger for the run.
	Logger *zerolog.Logger
}

// Run executes count tasks with bounded parallelism and waits for all of
// them. The first error cancels the remaining tasks and is returned.
func Run(ctx context.Context, cfg Config, count int, task Task) error {
	logger := cfg.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	parallelism := cfg.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	logger.Debug().Str("name", cfg.Name).Int(logFieldTasks, count).Int("parallelism", parallelism).Msg("starting parallel run")

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, parallelism)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	for i := 0; i < count; i++ {
		select {
		case <-runCtx.Done():
		case sem <- struct{}{}:
			wg.Add(1)

			go func(index int) {
				defer wg.Done()
				defer func() { <-sem }()

				if err := task(runCtx, index); err != nil {
					errOnce.Do(func() {
						firstErr = err

						cancel()
					})
				}
			}(i)
		}

		if runCtx.Err() != nil {
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		return firstErr
	}

	return ctx.Err()
}
