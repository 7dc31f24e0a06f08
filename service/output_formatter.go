package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/constants"
	"gopkg.in/yaml.v3"
)

// OutputFormatterImpl implements domain.ReportFormatter
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML. The value goes through its JSON encoding
// first so that key names, key order and preserved extra keys match the
// JSON output.
func WriteYAML(writer io.Writer, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return err
	}
	clearStyle(&node)

	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(&node); err != nil {
		return err
	}
	return encoder.Close()
}

// clearStyle drops the flow style inherited from JSON
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

// textStyles renders headings for one writer. Colors are only emitted when
// the writer is a color-capable terminal.
type textStyles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	errText lipgloss.Style
	dim     lipgloss.Style
}

func newTextStyles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	return textStyles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00AFFF")),
		errText: r.NewStyle().Foreground(lipgloss.Color("#FF0000")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

func unsupported(format domain.OutputFormat) error {
	return domain.NewInvalidInputError(fmt.Sprintf("unsupported output format: %s", format), nil)
}

// WriteReport writes a full report in the specified format
func (f *OutputFormatterImpl) WriteReport(report *domain.Report, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, report)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, report)
	case domain.OutputFormatText:
		return f.writeReportText(report, writer)
	default:
		return unsupported(format)
	}
}

// WriteScan writes a scan result in the specified format
func (f *OutputFormatterImpl) WriteScan(result *domain.ScanResult, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, result)
	case domain.OutputFormatText:
		return f.writeScanText(result, writer)
	default:
		return unsupported(format)
	}
}

// WriteAnalyze writes an analyze result in the specified format
func (f *OutputFormatterImpl) WriteAnalyze(result *domain.AnalyzeResult, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, result)
	case domain.OutputFormatText:
		return f.writeAnalyzeText(result, writer)
	default:
		return unsupported(format)
	}
}

// WriteTestRun writes a mock test run in the specified format
func (f *OutputFormatterImpl) WriteTestRun(run *domain.TestRun, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, run)
	case domain.OutputFormatText:
		return f.writeTestRunText(run, writer)
	default:
		return unsupported(format)
	}
}

// WriteConfig writes the project configuration. Text falls back to JSON.
func (f *OutputFormatterImpl) WriteConfig(cfg domain.ProjectConfig, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON, domain.OutputFormatText:
		return WriteJSON(writer, cfg)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, cfg)
	default:
		return unsupported(format)
	}
}

// writeReportText writes the report sections in the order Security,
// Quality, Performance, Accessibility, Next Steps
func (f *OutputFormatterImpl) writeReportText(r *domain.Report, writer io.Writer) error {
	st := newTextStyles(writer)

	fmt.Fprintf(writer, "\n%s\n\n", st.title.Render("=== codeguard Report ==="))
	fmt.Fprintf(writer, "Project: %s\n", r.Project.ProjectName)
	fmt.Fprintf(writer, "Report ID: %s\n", r.ID)
	fmt.Fprintf(writer, "Generated: %s\n", r.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(writer, "Version: %s\n", r.Version)

	// Security
	fmt.Fprintf(writer, "\n%s\n", st.heading.Render("Security"))
	if r.Security.Error != "" {
		fmt.Fprintf(writer, "  %s\n", st.errText.Render("Error: "+r.Security.Error))
	} else {
		fmt.Fprintf(writer, "  Security score: %.1f/10\n", r.Security.SecurityScore)
		if len(r.Security.Vulnerabilities) == 0 {
			fmt.Fprintf(writer, "  No known vulnerabilities found.\n")
		} else {
			fmt.Fprintf(writer, "  Vulnerabilities: %d\n", len(r.Security.Vulnerabilities))
			for _, v := range r.Security.Vulnerabilities {
				fmt.Fprintf(writer, "    - [%s] %s: %s\n", v.Severity, v.ID, v.Description)
				fmt.Fprintf(writer, "      Fix: %s\n", v.Fix)
			}
		}
	}

	// Quality
	fmt.Fprintf(writer, "\n%s\n", st.heading.Render("Quality"))
	if r.Quality.Error != "" {
		fmt.Fprintf(writer, "  %s\n", st.errText.Render("Error: "+r.Quality.Error))
	} else {
		m := r.Quality.Metrics
		fmt.Fprintf(writer, "  Quality score: %.1f/10\n", r.Quality.QualityScore)
		fmt.Fprintf(writer, "  Maintainability index: %d\n", m.MaintainabilityIndex)
		fmt.Fprintf(writer, "  Cyclomatic complexity: %d\n", m.CyclomaticComplexity)
		fmt.Fprintf(writer, "  Test coverage: %d%%\n", m.TestCoverage)
		fmt.Fprintf(writer, "  Code smells: %d\n", m.CodeSmells)
		fmt.Fprintf(writer, "  Technical debt: %s\n", m.TechnicalDebt)
	}
	if r.Analysis.Error == "" {
		writeFindings(writer, r.Analysis.FindingsFor(constants.CategoryQuality))
		writeFindings(writer, r.Analysis.FindingsFor(constants.CategoryMaintainability))
	}

	// Performance and Accessibility come from the analysis section
	fmt.Fprintf(writer, "\n%s\n", st.heading.Render("Performance"))
	if r.Analysis.Error != "" {
		fmt.Fprintf(writer, "  %s\n", st.errText.Render("Error: "+r.Analysis.Error))
	} else {
		fmt.Fprintf(writer, "  Issues found: %d\n", r.Analysis.IssuesFound)
		writeFindings(writer, r.Analysis.FindingsFor(constants.CategoryPerformance))
	}

	fmt.Fprintf(writer, "\n%s\n", st.heading.Render("Accessibility"))
	if r.Analysis.Error != "" {
		fmt.Fprintf(writer, "  %s\n", st.errText.Render("Error: "+r.Analysis.Error))
	} else {
		writeFindings(writer, r.Analysis.FindingsFor(constants.CategoryAccessibility))
	}

	fmt.Fprintf(writer, "\n%s\n", st.heading.Render("Next Steps"))
	for i, rec := range r.Recommendations {
		fmt.Fprintf(writer, "  %d. [%s] %s: %s\n", i+1, rec.Priority, rec.Category, rec.Message)
		for _, action := range rec.Actions {
			fmt.Fprintf(writer, "     - %s\n", action)
		}
	}
	if len(r.Analysis.Suggestions) > 0 {
		fmt.Fprintf(writer, "\n  Suggestions:\n")
		for _, s := range r.Analysis.Suggestions {
			fmt.Fprintf(writer, "    - %s\n", s)
		}
	}
	fmt.Fprintln(writer)

	return nil
}

func writeFindings(writer io.Writer, findings []domain.Finding) {
	for _, f := range findings {
		fmt.Fprintf(writer, "  - %s\n", f.Message)
	}
}

// writeScanText writes a scan result as plain text
func (f *OutputFormatterImpl) writeScanText(result *domain.ScanResult, writer io.Writer) error {
	st := newTextStyles(writer)

	fmt.Fprintf(writer, "\n%s\n\n", st.title.Render("=== Security Scan ==="))
	fmt.Fprintf(writer, "Type: %s\n", result.Type)
	fmt.Fprintf(writer, "Generated: %s\n", result.GeneratedAt)
	fmt.Fprintf(writer, "Security score: %.1f/10\n", result.SecurityScore)

	writeGroupedFindings(writer, st, result.Findings)

	if len(result.Vulnerabilities) > 0 {
		fmt.Fprintf(writer, "\n%s\n", st.heading.Render("Vulnerabilities"))
		for _, v := range result.Vulnerabilities {
			fmt.Fprintf(writer, "  - [%s] %s: %s\n", v.Severity, v.ID, v.Description)
			fmt.Fprintf(writer, "    Fix: %s\n", v.Fix)
		}
	}
	fmt.Fprintln(writer)
	return nil
}

// writeAnalyzeText writes an analyze result as plain text
func (f *OutputFormatterImpl) writeAnalyzeText(result *domain.AnalyzeResult, writer io.Writer) error {
	st := newTextStyles(writer)

	fmt.Fprintf(writer, "\n%s\n\n", st.title.Render("=== Code Analysis ==="))
	fmt.Fprintf(writer, "Type: %s\n", result.Type)
	fmt.Fprintf(writer, "Generated: %s\n", result.GeneratedAt)

	if m := result.Metrics; m != nil {
		fmt.Fprintf(writer, "\n%s\n", st.heading.Render("Metrics"))
		fmt.Fprintf(writer, "  Maintainability index: %d\n", m.MaintainabilityIndex)
		fmt.Fprintf(writer, "  Cyclomatic complexity: %d\n", m.CyclomaticComplexity)
		fmt.Fprintf(writer, "  Test coverage: %d%%\n", m.TestCoverage)
		fmt.Fprintf(writer, "  Code smells: %d\n", m.CodeSmells)
		fmt.Fprintf(writer, "  Technical debt: %s\n", m.TechnicalDebt)
	}

	writeGroupedFindings(writer, st, result.Findings)
	fmt.Fprintln(writer)
	return nil
}

// writeGroupedFindings prints findings under one heading per category,
// keeping first-seen category order
func writeGroupedFindings(writer io.Writer, st textStyles, findings []domain.Finding) {
	var order []string
	grouped := make(map[string][]domain.Finding)
	for _, f := range findings {
		if _, ok := grouped[f.Category]; !ok {
			order = append(order, f.Category)
		}
		grouped[f.Category] = append(grouped[f.Category], f)
	}
	for _, category := range order {
		fmt.Fprintf(writer, "\n%s\n", st.heading.Render(titleCase(category)))
		writeFindings(writer, grouped[category])
	}
}

// writeTestRunText writes a mock test run as plain text
func (f *OutputFormatterImpl) writeTestRunText(run *domain.TestRun, writer io.Writer) error {
	st := newTextStyles(writer)

	fmt.Fprintf(writer, "\n%s\n\n", st.title.Render("=== Test Run ==="))
	for _, s := range run.Suites {
		fmt.Fprintf(writer, "%-12s passed: %3d  failed: %d  skipped: %d  (%dms)\n",
			titleCase(s.Name), s.Passed, s.Failed, s.Skipped, s.DurationMs)
	}

	passed, failed, skipped := run.Totals()
	fmt.Fprintf(writer, "\nTotal: %d passed, %d failed, %d skipped\n", passed, failed, skipped)
	if run.Coverage != nil {
		fmt.Fprintf(writer, "Coverage: %.1f%%\n", *run.Coverage)
	}
	if run.Passed {
		fmt.Fprintf(writer, "Result: PASS\n")
	} else {
		fmt.Fprintf(writer, "Result: %s\n", st.errText.Render("FAIL"))
	}
	fmt.Fprintln(writer)
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s == constants.TestE2E {
		return "E2E"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
