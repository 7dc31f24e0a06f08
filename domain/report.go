package domain

import "time"

// Severity is the severity of a vulnerability
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Priority is the priority of a recommendation
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Vulnerability is a single placeholder security finding
type Vulnerability struct {
	ID          string   `json:"id" yaml:"id"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Description string   `json:"description" yaml:"description"`
	Fix         string   `json:"fix" yaml:"fix"`
}

// Finding is one human-readable line produced for a category
type Finding struct {
	Category string `json:"category" yaml:"category"`
	Message  string `json:"message" yaml:"message"`
}

// QualityMetrics holds placeholder code quality measurements
type QualityMetrics struct {
	MaintainabilityIndex int    `json:"maintainabilityIndex" yaml:"maintainabilityIndex"` // 0-100
	CyclomaticComplexity int    `json:"cyclomaticComplexity" yaml:"cyclomaticComplexity"`
	TestCoverage         int    `json:"testCoverage" yaml:"testCoverage"` // 0-100
	CodeSmells           int    `json:"codeSmells" yaml:"codeSmells"`
	TechnicalDebt        string `json:"technicalDebt" yaml:"technicalDebt"`
}

// Recommendation is derived from a report, never stored on its own
type Recommendation struct {
	Category string   `json:"category" yaml:"category"`
	Priority Priority `json:"priority" yaml:"priority"`
	Message  string   `json:"message" yaml:"message"`
	Actions  []string `json:"actions" yaml:"actions"`
}

// SecuritySection is the security part of a report
type SecuritySection struct {
	Vulnerabilities []Vulnerability `json:"vulnerabilities" yaml:"vulnerabilities"`
	SecurityScore   float64         `json:"securityScore" yaml:"securityScore"`
	Findings        []Finding       `json:"findings,omitempty" yaml:"findings,omitempty"`
	Error           string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// QualitySection is the quality part of a report
type QualitySection struct {
	Metrics      QualityMetrics `json:"metrics" yaml:"metrics"`
	QualityScore float64        `json:"qualityScore" yaml:"qualityScore"`
	Error        string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// AnalysisSection is the full-analysis part of a report
type AnalysisSection struct {
	IssuesFound int       `json:"issuesFound" yaml:"issuesFound"`
	Suggestions []string  `json:"suggestions" yaml:"suggestions"`
	Findings    []Finding `json:"findings,omitempty" yaml:"findings,omitempty"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// FindingsFor returns the findings of a single category
func (a AnalysisSection) FindingsFor(category string) []Finding {
	var out []Finding
	for _, f := range a.Findings {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

// Report merges the three producer sections with derived recommendations
type Report struct {
	ID              string           `json:"id" yaml:"id"`
	Timestamp       time.Time        `json:"timestamp" yaml:"timestamp"`
	Version         string           `json:"version" yaml:"version"`
	Project         ProjectConfig    `json:"project" yaml:"project"`
	Security        SecuritySection  `json:"security" yaml:"security"`
	Quality         QualitySection   `json:"quality" yaml:"quality"`
	Analysis        AnalysisSection  `json:"analysis" yaml:"analysis"`
	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations"`
}

// HasErrors reports whether any section failed to populate
func (r *Report) HasErrors() bool {
	return r.Security.Error != "" || r.Quality.Error != "" || r.Analysis.Error != ""
}

// ScanResult is the output of the scan command
type ScanResult struct {
	Type            string          `json:"type"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
	SecurityScore   float64         `json:"securityScore"`
	Findings        []Finding       `json:"findings"`
	GeneratedAt     string          `json:"generatedAt"`
}

// AnalyzeResult is the output of the analyze command
type AnalyzeResult struct {
	Type        string          `json:"type"`
	Findings    []Finding       `json:"findings"`
	Metrics     *QualityMetrics `json:"metrics,omitempty"`
	GeneratedAt string          `json:"generatedAt"`
}

// TestSuiteResult summarises one mock test suite run
type TestSuiteResult struct {
	Name       string `json:"name"`
	Passed     int    `json:"passed"`
	Failed     int    `json:"failed"`
	Skipped    int    `json:"skipped"`
	DurationMs int64  `json:"durationMs"`
}

// TestRun is the output of the test command
type TestRun struct {
	Suites   []TestSuiteResult `json:"suites"`
	Coverage *float64          `json:"coverage,omitempty"`
	Passed   bool              `json:"passed"`
}

// Totals sums passed, failed and skipped across suites
func (r *TestRun) Totals() (passed, failed, skipped int) {
	for _, s := range r.Suites {
		passed += s.Passed
		failed += s.Failed
		skipped += s.Skipped
	}
	return passed, failed, skipped
}
