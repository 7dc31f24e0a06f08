package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/constants"
	"github.com/ludo-technologies/codeguard/internal/producer"
	"github.com/ludo-technologies/codeguard/internal/session"
	"github.com/ludo-technologies/codeguard/internal/version"
)

// Section task names, also used in diagnostics
const (
	taskSecurity = "security"
	taskQuality  = "quality"
	taskAnalysis = "analysis"
)

// ReportService aggregates the three producer sections into a report
type ReportService struct {
	producer producer.Producer
	executor domain.ParallelExecutor
	source   producer.Source
	clock    func() time.Time
	logger   *log.Logger
}

// NewReportService creates a report service using the session's random
// source, clock and logger
func NewReportService(s *session.Session, p producer.Producer, executor domain.ParallelExecutor) *ReportService {
	return &ReportService{
		producer: p,
		executor: executor,
		source:   s.Source,
		clock:    s.Clock,
		logger:   s.Logger,
	}
}

// Generate builds a report for cfg. The security, quality and analysis
// sections are produced concurrently; a section that fails carries an error
// marker while the others stay populated. Generate fails only when ctx is
// done before the join completes.
func (s *ReportService) Generate(ctx context.Context, cfg domain.ProjectConfig) (*domain.Report, error) {
	rng := s.source.New()

	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report id: %w", err)
	}

	// Seeds are drawn before the fan-out so results do not depend on scheduling
	seeds := producer.Split(rng, 3)

	tasks := []domain.ExecutableTask{
		NewFuncTask(taskSecurity, func(ctx context.Context) (interface{}, error) {
			return s.producer.Security(seeds[0].New(), constants.ScanCategories)
		}),
		NewFuncTask(taskQuality, func(ctx context.Context) (interface{}, error) {
			return s.producer.Quality(seeds[1].New())
		}),
		NewFuncTask(taskAnalysis, func(ctx context.Context) (interface{}, error) {
			return s.producer.Analysis(seeds[2].New(), constants.AnalyzeCategories)
		}),
	}

	results, execErr := s.executor.Execute(ctx, tasks)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("report generation interrupted: %w", ctxErr)
	}
	if execErr != nil {
		s.logger.Printf("report: %v", execErr)
	}

	report := &domain.Report{
		ID:        id.String(),
		Timestamp: s.clock(),
		Version:   version.GetVersion(),
		Project:   cfg.Clone(),
	}

	for _, r := range results {
		switch r.Name {
		case taskSecurity:
			report.Security = securityFrom(r)
		case taskQuality:
			report.Quality = qualityFrom(r)
		case taskAnalysis:
			report.Analysis = analysisFrom(r)
		}
	}

	report.Recommendations = DeriveRecommendations(report)
	s.logger.Printf("report: %s generated with %d recommendations", report.ID, len(report.Recommendations))
	return report, nil
}

func securityFrom(r domain.TaskResult) domain.SecuritySection {
	if r.Err != nil {
		return domain.SecuritySection{Vulnerabilities: []domain.Vulnerability{}, Error: r.Err.Error()}
	}
	section, ok := r.Value.(domain.SecuritySection)
	if !ok {
		return domain.SecuritySection{Vulnerabilities: []domain.Vulnerability{}, Error: unexpectedResult(r)}
	}
	return section
}

func qualityFrom(r domain.TaskResult) domain.QualitySection {
	if r.Err != nil {
		return domain.QualitySection{Error: r.Err.Error()}
	}
	section, ok := r.Value.(domain.QualitySection)
	if !ok {
		return domain.QualitySection{Error: unexpectedResult(r)}
	}
	return section
}

func analysisFrom(r domain.TaskResult) domain.AnalysisSection {
	if r.Err != nil {
		return domain.AnalysisSection{Suggestions: []string{}, Error: r.Err.Error()}
	}
	section, ok := r.Value.(domain.AnalysisSection)
	if !ok {
		return domain.AnalysisSection{Suggestions: []string{}, Error: unexpectedResult(r)}
	}
	return section
}

func unexpectedResult(r domain.TaskResult) string {
	return fmt.Sprintf("unexpected %s result type %T", r.Name, r.Value)
}
