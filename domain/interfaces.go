package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat validates a user-supplied format name
func ParseOutputFormat(s string, allowed ...OutputFormat) (OutputFormat, error) {
	for _, f := range allowed {
		if string(f) == s {
			return f, nil
		}
	}
	return "", NewInvalidInputError("unsupported output format: "+s, nil)
}

// Operation names a command that the session gate knows about
type Operation string

const (
	OpInit    Operation = "init"
	OpConnect Operation = "connect"
	OpScan    Operation = "scan"
	OpAnalyze Operation = "analyze"
	OpTest    Operation = "test"
	OpDemo    Operation = "demo"
	OpReport  Operation = "report"
	OpConfig  Operation = "config"
	OpHelp    Operation = "help"
)

// ConfigStore persists the single project configuration record
//
//go:generate mockgen -destination=../app/mock_config_store_test.go -package=app github.com/ludo-technologies/codeguard/domain ConfigStore
type ConfigStore interface {
	Load() (ProjectConfig, error)
	Save(cfg ProjectConfig) error
	Exists() bool
	Path() string
}

// ExecutableTask is a unit of work run by the parallel executor
type ExecutableTask interface {
	Name() string
	Execute(ctx context.Context) (interface{}, error)
	IsEnabled() bool
}

// TaskResult is the tagged outcome of one executed task
type TaskResult struct {
	Name  string
	Value interface{}
	Err   error
}

// ParallelExecutor runs independent tasks and joins on all of them
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) ([]TaskResult, error)
}

// ProgressManager manages progress reporting for long-running work
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	Close()
}

// TaskProgress tracks a single task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// ReportFormatter renders command results
type ReportFormatter interface {
	WriteReport(report *Report, format OutputFormat, w io.Writer) error
	WriteScan(result *ScanResult, format OutputFormat, w io.Writer) error
	WriteAnalyze(result *AnalyzeResult, format OutputFormat, w io.Writer) error
	WriteTestRun(run *TestRun, format OutputFormat, w io.Writer) error
	WriteConfig(cfg ProjectConfig, format OutputFormat, w io.Writer) error
}
