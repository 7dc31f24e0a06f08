package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/config"
	"golang.org/x/sync/errgroup"
)

// TaskError represents a single task failure
type TaskError struct {
	TaskName string
	Err      error
}

// Error implements the error interface
func (e TaskError) Error() string {
	return fmt.Sprintf("[%s] %v", e.TaskName, e.Err)
}

// Unwrap returns the underlying error
func (e TaskError) Unwrap() error {
	return e.Err
}

// AggregatedError collects all task failures
type AggregatedError struct {
	Errors []TaskError
}

// Error implements the error interface
func (e *AggregatedError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d tasks failed:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Unwrap returns the first error for errors.Is/As compatibility
func (e *AggregatedError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0].Err
}

// ParallelExecutorImpl implements domain.ParallelExecutor
type ParallelExecutorImpl struct {
	maxConcurrency int
	timeout        time.Duration
	progress       domain.ProgressManager
}

// NewParallelExecutor creates a parallel executor using runtime.NumCPU()
// for concurrency and no timeout
func NewParallelExecutor() *ParallelExecutorImpl {
	return &ParallelExecutorImpl{
		maxConcurrency: runtime.NumCPU(),
	}
}

// NewParallelExecutorFromSettings creates a parallel executor from settings
func NewParallelExecutorFromSettings(s *config.Settings) *ParallelExecutorImpl {
	maxConcurrency := s.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = config.DefaultMaxConcurrency
	}

	timeout := s.Timeout
	if timeout < 0 {
		timeout = config.DefaultTimeout
	}

	return &ParallelExecutorImpl{
		maxConcurrency: maxConcurrency,
		timeout:        timeout,
	}
}

// NewParallelExecutorWithProgress creates a parallel executor with progress tracking
func NewParallelExecutorWithProgress(s *config.Settings, pm domain.ProgressManager) *ParallelExecutorImpl {
	executor := NewParallelExecutorFromSettings(s)
	executor.progress = pm
	return executor
}

// Execute runs the enabled tasks concurrently and waits for all of them.
// One result is returned per enabled task, in input order; a failed task
// never stops the others. If ctx is cancelled (or the timeout elapses)
// before the join completes, unfinished tasks are reported with the
// context error. The returned error is an *AggregatedError when any task
// failed.
func (e *ParallelExecutorImpl) Execute(ctx context.Context, tasks []domain.ExecutableTask) ([]domain.TaskResult, error) {
	enabledTasks := e.filterEnabledTasks(tasks)
	if len(enabledTasks) == 0 {
		return nil, nil
	}

	runCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if e.progress != nil {
		task = e.progress.StartTask("Generating report", len(enabledTasks))
	}
	defer task.Complete()

	var resMu sync.Mutex
	results := make([]domain.TaskResult, len(enabledTasks))
	finished := make([]bool, len(enabledTasks))
	for i, t := range enabledTasks {
		results[i].Name = t.Name()
	}

	g := new(errgroup.Group)
	g.SetLimit(e.maxConcurrency)

	for i, t := range enabledTasks {
		i, t := i, t
		g.Go(func() error {
			var (
				value interface{}
				err   error
			)
			select {
			case <-runCtx.Done():
				err = runCtx.Err()
			default:
				value, err = runTask(runCtx, t)
			}

			resMu.Lock()
			results[i].Value = value
			results[i].Err = err
			finished[i] = true
			resMu.Unlock()

			task.Increment(1)
			task.Describe(t.Name())

			// Errors are recorded per task so that every task runs to completion
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-runCtx.Done():
	}

	resMu.Lock()
	out := make([]domain.TaskResult, len(results))
	copy(out, results)
	for i := range out {
		if !finished[i] {
			out[i].Err = runCtx.Err()
		}
	}
	resMu.Unlock()

	var taskErrors []TaskError
	for _, r := range out {
		if r.Err != nil {
			taskErrors = append(taskErrors, TaskError{TaskName: r.Name, Err: r.Err})
		}
	}
	if len(taskErrors) > 0 {
		return out, &AggregatedError{Errors: taskErrors}
	}
	return out, nil
}

// runTask executes t, converting a panic into an error
func runTask(ctx context.Context, t domain.ExecutableTask) (value interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return t.Execute(ctx)
}

// filterEnabledTasks returns only tasks where IsEnabled() returns true
func (e *ParallelExecutorImpl) filterEnabledTasks(tasks []domain.ExecutableTask) []domain.ExecutableTask {
	enabled := make([]domain.ExecutableTask, 0, len(tasks))
	for _, t := range tasks {
		if t.IsEnabled() {
			enabled = append(enabled, t)
		}
	}
	return enabled
}

// FuncTask adapts a function to domain.ExecutableTask
type FuncTask struct {
	name    string
	enabled bool
	fn      func(ctx context.Context) (interface{}, error)
}

// NewFuncTask creates an enabled task running fn
func NewFuncTask(name string, fn func(ctx context.Context) (interface{}, error)) *FuncTask {
	return &FuncTask{name: name, enabled: true, fn: fn}
}

// Name returns the task name
func (t *FuncTask) Name() string { return t.name }

// IsEnabled reports whether the task should run
func (t *FuncTask) IsEnabled() bool { return t.enabled }

// Execute runs the wrapped function
func (t *FuncTask) Execute(ctx context.Context) (interface{}, error) {
	return t.fn(ctx)
}
