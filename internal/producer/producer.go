package producer

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/constants"
)

// Producer generates the three report sections
type Producer interface {
	Security(rng *rand.Rand, categories []string) (domain.SecuritySection, error)
	Quality(rng *rand.Rand) (domain.QualitySection, error)
	Analysis(rng *rand.Rand, categories []string) (domain.AnalysisSection, error)
}

// Mock is the placeholder Producer. It performs no real analysis.
type Mock struct{}

// NewMock creates the placeholder producer
func NewMock() *Mock {
	return &Mock{}
}

var sampleVulnerabilities = []domain.Vulnerability{
	{
		ID:          "VULN-001",
		Severity:    domain.SeverityHigh,
		Description: "Prototype pollution in lodash < 4.17.21",
		Fix:         "Upgrade lodash to 4.17.21 or later",
	},
	{
		ID:          "VULN-002",
		Severity:    domain.SeverityMedium,
		Description: "Server-side request forgery in axios < 0.21.2",
		Fix:         "Upgrade axios to 0.21.2 or later",
	},
}

var categoryFindings = map[string][]string{
	constants.CategoryDependencies: {
		"Scanned 247 direct and transitive dependencies",
		"2 packages have newer minor versions available",
		"No deprecated packages detected",
	},
	constants.CategorySecrets: {
		"No hardcoded API keys found",
		"No private keys committed to the repository",
		"Environment files are excluded from version control",
	},
	constants.CategoryQuality: {
		"Code formatting is consistent across modules",
		"3 functions exceed the recommended length",
		"Naming conventions followed in 96% of identifiers",
	},
	constants.CategoryPerformance: {
		"Bundle size is within the recommended budget",
		"2 components re-render on every parent update",
		"Images on 1 page are served without lazy loading",
	},
	constants.CategoryMaintainability: {
		"Average module size is 180 lines",
		"4 modules have no unit tests",
		"Module dependency graph contains no cycles",
	},
	constants.CategoryAccessibility: {
		"5 images are missing alt text",
		"Color contrast meets WCAG AA on all pages",
		"2 form inputs have no associated label",
	},
}

var analysisSuggestions = []string{
	"Extract duplicated validation logic into shared helpers",
	"Memoize expensive list renders",
	"Add alt text to all meaningful images",
	"Increase unit test coverage for service modules",
}

// Findings returns the fixed findings of a category
func Findings(category string) []domain.Finding {
	lines := categoryFindings[category]
	out := make([]domain.Finding, 0, len(lines))
	for _, line := range lines {
		out = append(out, domain.Finding{Category: category, Message: line})
	}
	return out
}

// ResolveCategories expands "all" (or empty) into valid and rejects
// categories outside valid.
func ResolveCategories(requested string, valid []string) ([]string, error) {
	requested = strings.TrimSpace(strings.ToLower(requested))
	if requested == "" || requested == constants.CategoryAll {
		return append([]string(nil), valid...), nil
	}
	for _, v := range valid {
		if v == requested {
			return []string{v}, nil
		}
	}
	return nil, domain.NewInvalidInputError(
		fmt.Sprintf("unknown type '%s', must be one of: %s, %s",
			requested, strings.Join(valid, ", "), constants.CategoryAll), nil)
}

// Security produces the security section for the given scan categories.
// The score is always drawn, then vulnerabilities if requested.
func (m *Mock) Security(rng *rand.Rand, categories []string) (domain.SecuritySection, error) {
	section := domain.SecuritySection{
		Vulnerabilities: []domain.Vulnerability{},
		SecurityScore:   roundTo1(8 + rng.Float64()*2),
	}

	for _, category := range categories {
		switch category {
		case constants.CategoryVulnerabilities:
			if rng.Intn(2) == 0 {
				section.Vulnerabilities = append(section.Vulnerabilities, sampleVulnerabilities...)
			}
			msg := "No known vulnerabilities found"
			if n := len(section.Vulnerabilities); n > 0 {
				msg = fmt.Sprintf("Found %d known vulnerabilities", n)
			}
			section.Findings = append(section.Findings, domain.Finding{Category: category, Message: msg})
		case constants.CategoryDependencies, constants.CategorySecrets:
			section.Findings = append(section.Findings, Findings(category)...)
		default:
			return domain.SecuritySection{}, domain.NewInvalidInputError(
				fmt.Sprintf("unknown scan type '%s'", category), nil)
		}
	}

	return section, nil
}

// Quality produces the quality metrics section
func (m *Mock) Quality(rng *rand.Rand) (domain.QualitySection, error) {
	metrics := domain.QualityMetrics{
		MaintainabilityIndex: 65 + rng.Intn(31),
		CyclomaticComplexity: 2 + rng.Intn(14),
		TestCoverage:         55 + rng.Intn(41),
		CodeSmells:           rng.Intn(26),
		TechnicalDebt:        fmt.Sprintf("%dh %dm", 1+rng.Intn(40), rng.Intn(60)),
	}
	return domain.QualitySection{
		Metrics:      metrics,
		QualityScore: roundTo1(6 + rng.Float64()*4),
	}, nil
}

// Analysis produces the full-analysis section for the given categories
func (m *Mock) Analysis(rng *rand.Rand, categories []string) (domain.AnalysisSection, error) {
	section := domain.AnalysisSection{
		IssuesFound: rng.Intn(21),
		Suggestions: append([]string(nil), analysisSuggestions...),
	}
	for _, category := range categories {
		if !isAnalyzeCategory(category) {
			return domain.AnalysisSection{}, domain.NewInvalidInputError(
				fmt.Sprintf("unknown analysis type '%s'", category), nil)
		}
		section.Findings = append(section.Findings, Findings(category)...)
	}
	return section, nil
}

func isAnalyzeCategory(category string) bool {
	for _, c := range constants.AnalyzeCategories {
		if c == category {
			return true
		}
	}
	return false
}

type suiteShape struct {
	minPassed, spanPassed int
	maxFailed, maxSkipped int
	minMs, spanMs         int
}

var suiteShapes = map[string]suiteShape{
	constants.TestUnit:        {40, 60, 2, 4, 500, 2000},
	constants.TestIntegration: {10, 20, 1, 3, 2000, 6000},
	constants.TestE2E:         {5, 10, 1, 2, 8000, 20000},
}

// Tests produces a mock test run for the given suites
func (m *Mock) Tests(rng *rand.Rand, suites []string, withCoverage bool) (*domain.TestRun, error) {
	run := &domain.TestRun{}
	for _, name := range suites {
		shape, ok := suiteShapes[name]
		if !ok {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown test type '%s'", name), nil)
		}
		run.Suites = append(run.Suites, domain.TestSuiteResult{
			Name:       name,
			Passed:     shape.minPassed + rng.Intn(shape.spanPassed+1),
			Failed:     rng.Intn(shape.maxFailed + 1),
			Skipped:    rng.Intn(shape.maxSkipped + 1),
			DurationMs: int64(shape.minMs + rng.Intn(shape.spanMs+1)),
		})
	}
	if withCoverage {
		c := roundTo1(55 + rng.Float64()*40)
		run.Coverage = &c
	}
	_, failed, _ := run.Totals()
	run.Passed = failed == 0
	return run, nil
}
