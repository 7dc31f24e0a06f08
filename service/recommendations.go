package service

import (
	"fmt"

	"github.com/ludo-technologies/codeguard/domain"
)

// QualityScoreThreshold is the score below which a Code Quality
// recommendation is emitted
const QualityScoreThreshold = 8.0

var (
	securityActions = []string{
		"Review and apply the suggested fixes for each vulnerability",
		"Upgrade affected dependencies to patched versions",
		"Enable automated dependency update alerts",
	}
	qualityActions = []string{
		"Refactor functions with high cyclomatic complexity",
		"Increase unit test coverage for critical paths",
		"Address outstanding code smells",
	}
	performanceActions = []string{
		"Enable code splitting for large bundles",
		"Lazy-load images and below-the-fold components",
		"Memoize expensive computations",
	}
)

// DeriveRecommendations applies the recommendation rules in fixed order.
// The Performance recommendation is always appended.
func DeriveRecommendations(r *domain.Report) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, 3)

	if n := len(r.Security.Vulnerabilities); n > 0 {
		recs = append(recs, domain.Recommendation{
			Category: "Security",
			Priority: domain.PriorityHigh,
			Message:  fmt.Sprintf("Found %d security vulnerabilities that need attention", n),
			Actions:  append([]string(nil), securityActions...),
		})
	}

	if r.Quality.Error == "" && r.Quality.QualityScore < QualityScoreThreshold {
		recs = append(recs, domain.Recommendation{
			Category: "Code Quality",
			Priority: domain.PriorityMedium,
			Message:  fmt.Sprintf("Quality score %.1f is below the target of %.1f", r.Quality.QualityScore, QualityScoreThreshold),
			Actions:  append([]string(nil), qualityActions...),
		})
	}

	recs = append(recs, domain.Recommendation{
		Category: "Performance",
		Priority: domain.PriorityLow,
		Message:  "Apply general performance optimizations",
		Actions:  append([]string(nil), performanceActions...),
	})

	return recs
}
