package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/constants"
	"github.com/ludo-technologies/codeguard/internal/producer"
	"github.com/ludo-technologies/codeguard/internal/session"
	"github.com/ludo-technologies/codeguard/service"
)

// Demo project values
const (
	DemoProjectName = "demo-project"
	DemoRepository  = "https://github.com/example/demo-project"
)

// DemoUseCase walks through every command against an in-memory store
type DemoUseCase struct {
	session   *session.Session
	producer  *producer.Mock
	executor  domain.ParallelExecutor
	formatter domain.ReportFormatter
}

// NewDemoUseCase creates a demo use case. The walkthrough shares the
// random source, clock and logger of parent but never its store.
func NewDemoUseCase(parent *session.Session, p *producer.Mock, executor domain.ParallelExecutor, formatter domain.ReportFormatter) *DemoUseCase {
	s := session.New(service.NewMemoryConfigStore(),
		session.WithSource(parent.Source),
		session.WithClock(parent.Clock),
		session.WithLogger(parent.Logger),
	)
	return &DemoUseCase{session: s, producer: p, executor: executor, formatter: formatter}
}

// Execute runs init, connect, scan, analyze, test and report in order,
// printing each step to w
func (uc *DemoUseCase) Execute(ctx context.Context, w io.Writer) (*domain.Report, error) {
	step := 0
	heading := func(title string) {
		step++
		fmt.Fprintf(w, "\n--- Step %d: %s ---\n", step, title)
	}

	heading("init")
	cfg, err := NewInitUseCase(uc.session).Execute(ctx, InitRequest{
		Overrides: domain.ProjectOverrides{ProjectName: DemoProjectName, Repository: DemoRepository},
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "Initialized project '%s' (%s/%s)\n", cfg.ProjectName, cfg.Language, cfg.Framework)

	heading("connect")
	cfg, err = NewConnectUseCase(uc.session).Execute(ctx, "")
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "Connected to %s\n", cfg.Repository)

	heading("scan")
	scan, err := NewScanUseCase(uc.session, uc.producer).Execute(ctx, constants.CategoryAll)
	if err != nil {
		return nil, err
	}
	if err := uc.formatter.WriteScan(scan, domain.OutputFormatText, w); err != nil {
		return nil, domain.NewOutputError("failed to write scan result", err)
	}

	heading("analyze")
	analysis, err := NewAnalyzeUseCase(uc.session, uc.producer).Execute(ctx, constants.CategoryAll)
	if err != nil {
		return nil, err
	}
	if err := uc.formatter.WriteAnalyze(analysis, domain.OutputFormatText, w); err != nil {
		return nil, domain.NewOutputError("failed to write analysis result", err)
	}

	heading("test")
	run, err := NewTestUseCase(uc.session, uc.producer).Execute(ctx, TestRequest{Type: constants.CategoryAll, Coverage: true})
	if err != nil {
		return nil, err
	}
	if err := uc.formatter.WriteTestRun(run, domain.OutputFormatText, w); err != nil {
		return nil, domain.NewOutputError("failed to write test run", err)
	}

	heading("report")
	generator := service.NewReportService(uc.session, uc.producer, uc.executor)
	result, err := NewReportUseCase(uc.session, generator, uc.formatter).Execute(ctx, ReportRequest{
		OutputFormat: domain.OutputFormatText,
		OutputWriter: w,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "Demo complete. Run 'codeguard init' to set up your own project.\n")
	return result.Report, nil
}
