// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tasks runs fire-and-forget background work such as recording a
user's last login after the response has already been sent.

Tasks are detached from the request context (a finished request must not
cancel them) but each one runs under its own timeout. Failures and panics
are logged and never reach the caller.
*/
package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrClosed is returned by [Runner.Go] after [Runner.Close] has been called.
var ErrClosed = errors.New("tasks: runner is closed")

// ErrSaturated is returned by [Runner.Go] when every slot is taken.
var ErrSaturated = errors.New("tasks: too many tasks in flight")

// Task is one unit of background work.
type Task func(ctx context.Context) error

// Runner executes tasks on their own goroutines with a bounded in-flight count.
type Runner struct {
	logger  *slog.Logger
	timeout time.Duration
	slots   *semaphore.Weighted

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewRunner creates a Runner allowing limit concurrent tasks, each bounded by timeout.
func NewRunner(logger *slog.Logger, limit int64, timeout time.Duration) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		logger:  logger,
		timeout: timeout,
		slots:   semaphore.NewWeighted(limit),
	}
}

/*
Go schedules task without waiting for it.

The submission never blocks: when the runner is saturated or closed the task
is dropped, the drop is logged, and the reason is returned for callers that care.

Parameters:
  - name: string (Label used in logs)
  - task: Task
*/
func (runner *Runner) Go(name string, task Task) error {
	runner.mu.Lock()
	if runner.closed {
		runner.mu.Unlock()
		runner.logger.Warn("background_task_dropped", slog.String("task", name), slog.String("reason", "closed"))
		return ErrClosed
	}

	if !runner.slots.TryAcquire(1) {
		runner.mu.Unlock()
		runner.logger.Warn("background_task_dropped", slog.String("task", name), slog.String("reason", "saturated"))
		return ErrSaturated
	}

	runner.wg.Add(1)
	runner.mu.Unlock()

	go runner.run(name, task)
	return nil
}

func (runner *Runner) run(name string, task Task) {
	defer runner.wg.Done()
	defer runner.slots.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), runner.timeout)
	defer cancel()

	start := time.Now()
	err := runner.safely(ctx, task)
	if err != nil {
		runner.logger.Error("background_task_failed",
			slog.String("task", name),
			slog.Any("error", err),
			slog.Duration("elapsed", time.Since(start)),
		)
		return
	}

	runner.logger.Debug("background_task_done", slog.String("task", name), slog.Duration("elapsed", time.Since(start)))
}

// safely converts a panic inside task into an error.
func (runner *Runner) safely(ctx context.Context, task Task) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			stackTrace := make([]byte, 2048)
			length := runtime.Stack(stackTrace, false)
			err = fmt.Errorf("panic: %v\n%s", recovered, stackTrace[:length])
		}
	}()
	return task(ctx)
}

// Wait blocks until every task submitted so far has finished.
func (runner *Runner) Wait() {
	runner.wg.Wait()
}

/*
Close stops accepting tasks and waits for in-flight ones until ctx is done.

Returns:
  - error: ctx.Err() if the drain did not finish in time
*/
func (runner *Runner) Close(ctx context.Context) error {
	runner.mu.Lock()
	runner.closed = true
	runner.mu.Unlock()

	done := make(chan struct{})
	go func() {
		runner.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
