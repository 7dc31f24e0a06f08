package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/session"
	"github.com/ludo-technologies/codeguard/service"
)

// ReportGenerator builds a report for a project configuration
type ReportGenerator interface {
	Generate(ctx context.Context, cfg domain.ProjectConfig) (*domain.Report, error)
}

// ReportRequest holds the inputs of the report use case
type ReportRequest struct {
	OutputFormat domain.OutputFormat
	OutputWriter io.Writer

	// OutputDir receives the JSON report file
	OutputDir string
}

// ReportResult is the outcome of the report use case
type ReportResult struct {
	Report *domain.Report

	// Path is the written report file; empty for text output
	Path string
}

// ReportUseCase generates a report and renders it
type ReportUseCase struct {
	session   *session.Session
	generator ReportGenerator
	formatter domain.ReportFormatter
}

// NewReportUseCase creates a new report use case
func NewReportUseCase(s *session.Session, generator ReportGenerator, formatter domain.ReportFormatter) *ReportUseCase {
	return &ReportUseCase{session: s, generator: generator, formatter: formatter}
}

// Execute generates the report. JSON output is written to a timestamped
// file in OutputDir and its path is printed; text output is printed in
// full.
func (uc *ReportUseCase) Execute(ctx context.Context, req ReportRequest) (*ReportResult, error) {
	project, err := uc.session.Admit(domain.OpReport)
	if err != nil {
		return nil, err
	}

	report, err := uc.generator.Generate(ctx, *project)
	if err != nil {
		return nil, err
	}

	result := &ReportResult{Report: report}

	switch req.OutputFormat {
	case domain.OutputFormatJSON:
		path, err := service.SaveReport(report, req.OutputDir)
		if err != nil {
			return nil, err
		}
		result.Path = path
		if req.OutputWriter != nil {
			fmt.Fprintf(req.OutputWriter, "Report saved to %s\n", path)
		}
	case domain.OutputFormatText, "":
		if req.OutputWriter != nil {
			if err := uc.formatter.WriteReport(report, domain.OutputFormatText, req.OutputWriter); err != nil {
				return nil, domain.NewOutputError("failed to write report", err)
			}
		}
	default:
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unsupported output format: %s", req.OutputFormat), nil)
	}

	return result, nil
}
