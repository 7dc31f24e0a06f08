package app

import (
	"context"
	"time"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/constants"
	"github.com/ludo-technologies/codeguard/internal/producer"
	"github.com/ludo-technologies/codeguard/internal/session"
)

// AnalyzeUseCase runs the placeholder code analysis
type AnalyzeUseCase struct {
	session  *session.Session
	producer producer.Producer
}

// NewAnalyzeUseCase creates a new analyze use case
func NewAnalyzeUseCase(s *session.Session, p producer.Producer) *AnalyzeUseCase {
	return &AnalyzeUseCase{session: s, producer: p}
}

// Execute analyzes the given category, or all of them for "all" or empty.
// Quality metrics are attached whenever the quality category is included.
func (uc *AnalyzeUseCase) Execute(ctx context.Context, analyzeType string) (*domain.AnalyzeResult, error) {
	if _, err := uc.session.Admit(domain.OpAnalyze); err != nil {
		return nil, err
	}

	categories, err := producer.ResolveCategories(analyzeType, constants.AnalyzeCategories)
	if err != nil {
		return nil, err
	}

	rng := uc.session.Source.New()
	section, err := uc.producer.Analysis(rng, categories)
	if err != nil {
		return nil, err
	}

	result := &domain.AnalyzeResult{
		Type:        typeLabel(analyzeType),
		Findings:    section.Findings,
		GeneratedAt: uc.session.Clock().Format(time.RFC3339),
	}

	if includes(categories, constants.CategoryQuality) {
		quality, err := uc.producer.Quality(rng)
		if err != nil {
			return nil, err
		}
		result.Metrics = &quality.Metrics
	}

	return result, nil
}

func includes(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
