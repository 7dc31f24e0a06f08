package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "codeguard"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "CODEGUARD"

	// ReportFilePrefix starts every generated report file name
	ReportFilePrefix = "codeguard-report-"

	// ReportTimestampLayout is embedded in report file names
	ReportTimestampLayout = "20060102-150405"
)

// Scan categories
const (
	CategoryDependencies    = "dependencies"
	CategoryVulnerabilities = "vulnerabilities"
	CategorySecrets         = "secrets"
)

// Analyze categories
const (
	CategoryQuality         = "quality"
	CategoryPerformance     = "performance"
	CategoryMaintainability = "maintainability"
	CategoryAccessibility   = "accessibility"
)

// Test suite kinds
const (
	TestUnit        = "unit"
	TestIntegration = "integration"
	TestE2E         = "e2e"
)

// CategoryAll selects every category of a command
const CategoryAll = "all"

// ScanCategories lists scan categories in reporting order
var ScanCategories = []string{CategoryDependencies, CategoryVulnerabilities, CategorySecrets}

// AnalyzeCategories lists analyze categories in reporting order
var AnalyzeCategories = []string{CategoryQuality, CategoryPerformance, CategoryMaintainability, CategoryAccessibility}

// TestSuites lists test suite kinds in run order
var TestSuites = []string{TestUnit, TestIntegration, TestE2E}
