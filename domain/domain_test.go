package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"
)

// Error tests

func TestDomainError_Error(t *testing.T) {
	// Without cause
	err := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
	}
	if err.Error() != "Test message" {
		t.Errorf("Expected 'Test message', got '%s'", err.Error())
	}

	// With cause
	cause := errors.New("underlying error")
	errWithCause := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
		Cause:   cause,
	}
	expectedWithCause := "Test message: underlying error"
	if errWithCause.Error() != expectedWithCause {
		t.Errorf("Expected '%s', got '%s'", expectedWithCause, errWithCause.Error())
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewIOError("write failed", cause)

	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
}

func TestDomainError_IsSentinel(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
	}{
		{NewNotInitializedError(), ErrNotInitialized},
		{NewNotConnectedError(), ErrNotConnected},
		{NewNotConnectedUninitializedError(), ErrNotConnected},
		{NewConfigMissingError("x.json"), ErrConfigMissing},
		{NewConfigCorruptError("bad", nil), ErrConfigCorrupt},
		{NewIOError("disk full", nil), ErrIOFailure},
	}

	for _, tt := range tests {
		if !errors.Is(tt.err, tt.sentinel) {
			t.Errorf("Expected %v to match %v", tt.err, tt.sentinel)
		}
		wrapped := fmt.Errorf("command failed: %w", tt.err)
		if !errors.Is(wrapped, tt.sentinel) {
			t.Errorf("Expected wrapped %v to match %v", tt.err, tt.sentinel)
		}
	}

	if errors.Is(NewNotConnectedError(), ErrNotInitialized) {
		t.Error("Different codes must not match")
	}
	if !errors.Is(NewInvalidInputError("a", nil), &DomainError{Code: ErrCodeInvalidInput}) {
		t.Error("Expected match by code against another DomainError")
	}
}

func TestErrorCode(t *testing.T) {
	if got := ErrorCode(fmt.Errorf("wrap: %w", NewOutputError("x", nil))); got != ErrCodeOutputError {
		t.Errorf("Expected %s, got %s", ErrCodeOutputError, got)
	}
	if got := ErrorCode(errors.New("plain")); got != "" {
		t.Errorf("Expected empty code, got %s", got)
	}
	if got := ErrorCode(nil); got != "" {
		t.Errorf("Expected empty code for nil, got %s", got)
	}
}

func TestParseOutputFormat(t *testing.T) {
	f, err := ParseOutputFormat("json", OutputFormatText, OutputFormatJSON)
	if err != nil || f != OutputFormatJSON {
		t.Errorf("Expected json, got (%v, %v)", f, err)
	}
	if _, err := ParseOutputFormat("yaml", OutputFormatText, OutputFormatJSON); ErrorCode(err) != ErrCodeInvalidInput {
		t.Errorf("Expected INVALID_INPUT, got %v", err)
	}
}

// ProjectConfig tests

func TestProjectConfig_PreservesUnknownKeys(t *testing.T) {
	input := `{
  "projectName": "shop",
  "language": "javascript",
  "rules": {"security": true},
  "connected": false,
  "pluginSettings": {"lint": {"strict": true}},
  "schemaVersion": 2
}`

	var cfg ProjectConfig
	if err := json.Unmarshal([]byte(input), &cfg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if cfg.ProjectName != "shop" || !cfg.Rules["security"] {
		t.Errorf("Known fields not decoded: %+v", cfg)
	}
	if len(cfg.Extra) != 2 {
		t.Fatalf("Expected 2 extra keys, got %v", cfg.Extra)
	}

	out, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var roundTrip map[string]interface{}
	if err := json.Unmarshal(out, &roundTrip); err != nil {
		t.Fatal(err)
	}
	if roundTrip["schemaVersion"] != float64(2) {
		t.Errorf("Expected schemaVersion to survive, got %v", roundTrip["schemaVersion"])
	}
	plugin, ok := roundTrip["pluginSettings"].(map[string]interface{})
	if !ok || plugin["lint"] == nil {
		t.Errorf("Expected pluginSettings to survive, got %v", roundTrip["pluginSettings"])
	}
}

func TestProjectConfig_KnownFieldsWinOverExtra(t *testing.T) {
	cfg := ProjectConfig{
		ProjectName: "real",
		Extra:       map[string]json.RawMessage{"projectName": json.RawMessage(`"stale"`)},
	}
	out, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var decoded ProjectConfig
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.ProjectName != "real" {
		t.Errorf("Expected known field to win, got %q", decoded.ProjectName)
	}
}

func TestProjectConfig_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		cfg     ProjectConfig
		wantErr bool
	}{
		{"not connected", ProjectConfig{}, false},
		{"connected with time", ProjectConfig{Connected: true, ConnectedAt: &now}, false},
		{"connected without time", ProjectConfig{Connected: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfigCorrupt) {
				t.Errorf("Expected ErrConfigCorrupt, got %v", err)
			}
		})
	}
}

func TestProjectConfig_CloneIsDeep(t *testing.T) {
	now := time.Now()
	original := ProjectConfig{
		ExcludePaths: []string{"dist"},
		Rules:        map[string]bool{"security": true},
		Thresholds:   map[string]float64{"coverage": 80},
		ConnectedAt:  &now,
		Extra:        map[string]json.RawMessage{"x": json.RawMessage(`1`)},
	}

	clone := original.Clone()
	clone.ExcludePaths[0] = "build"
	clone.Rules["security"] = false
	clone.Thresholds["coverage"] = 10
	*clone.ConnectedAt = now.Add(time.Hour)
	clone.Extra["x"][0] = '2'

	if original.ExcludePaths[0] != "dist" || !original.Rules["security"] || original.Thresholds["coverage"] != 80 {
		t.Error("Clone shares collections with the original")
	}
	if !original.ConnectedAt.Equal(now) {
		t.Error("Clone shares connectedAt with the original")
	}
	if string(original.Extra["x"]) != "1" {
		t.Error("Clone shares extra values with the original")
	}
}

func TestMergeProjectConfig(t *testing.T) {
	base := ProjectConfig{
		ProjectName:  "my-project",
		Language:     "javascript",
		ExcludePaths: []string{"node_modules", "dist"},
		Rules:        map[string]bool{"security": true, "quality": true},
		Thresholds:   map[string]float64{"coverage": 80, "complexity": 10},
	}

	tests := []struct {
		name      string
		overrides ProjectOverrides
		want      ProjectConfig
	}{
		{
			name:      "empty overrides keep base",
			overrides: ProjectOverrides{},
			want:      base,
		},
		{
			name:      "scalar and list replaced",
			overrides: ProjectOverrides{ProjectName: "X", ExcludePaths: []string{"vendor"}},
			want: ProjectConfig{
				ProjectName:  "X",
				Language:     "javascript",
				ExcludePaths: []string{"vendor"},
				Rules:        map[string]bool{"security": true, "quality": true},
				Thresholds:   map[string]float64{"coverage": 80, "complexity": 10},
			},
		},
		{
			name: "nested maps merged per key",
			overrides: ProjectOverrides{
				Rules:      map[string]bool{"quality": false, "licenses": true},
				Thresholds: map[string]float64{"coverage": 95},
			},
			want: ProjectConfig{
				ProjectName:  "my-project",
				Language:     "javascript",
				ExcludePaths: []string{"node_modules", "dist"},
				Rules:        map[string]bool{"security": true, "quality": false, "licenses": true},
				Thresholds:   map[string]float64{"coverage": 95, "complexity": 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeProjectConfig(base, tt.overrides)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MergeProjectConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if !base.Rules["quality"] || base.Thresholds["coverage"] != 80 {
		t.Error("MergeProjectConfig must not modify base")
	}
}

func TestMergeProjectConfig_NilBaseMaps(t *testing.T) {
	got := MergeProjectConfig(ProjectConfig{}, ProjectOverrides{Rules: map[string]bool{"a": true}, Thresholds: map[string]float64{"b": 1}})
	if !got.Rules["a"] || got.Thresholds["b"] != 1 {
		t.Errorf("Expected overrides applied to empty base, got %+v", got)
	}
}

// Report tests

func TestAnalysisSection_FindingsFor(t *testing.T) {
	a := AnalysisSection{Findings: []Finding{
		{Category: "quality", Message: "q1"},
		{Category: "performance", Message: "p1"},
		{Category: "quality", Message: "q2"},
	}}

	got := a.FindingsFor("quality")
	if len(got) != 2 || got[0].Message != "q1" || got[1].Message != "q2" {
		t.Errorf("Unexpected findings %v", got)
	}
	if len(a.FindingsFor("accessibility")) != 0 {
		t.Error("Expected no accessibility findings")
	}
}

func TestTestRun_Totals(t *testing.T) {
	run := TestRun{Suites: []TestSuiteResult{
		{Passed: 10, Failed: 1, Skipped: 2},
		{Passed: 5, Failed: 0, Skipped: 1},
	}}
	passed, failed, skipped := run.Totals()
	if passed != 15 || failed != 1 || skipped != 3 {
		t.Errorf("Totals() = %d, %d, %d", passed, failed, skipped)
	}
}

func TestReport_HasErrors(t *testing.T) {
	r := &Report{}
	if r.HasErrors() {
		t.Error("Empty report should have no errors")
	}
	r.Analysis.Error = "failed"
	if !r.HasErrors() {
		t.Error("Expected HasErrors with a section error")
	}
}
