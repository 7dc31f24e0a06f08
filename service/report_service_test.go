package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/producer"
	"github.com/ludo-technologies/codeguard/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func newTestSession(seed int64) *session.Session {
	return session.New(
		NewMemoryConfigStore(),
		session.WithSource(producer.SeededSource(seed)),
		session.WithClock(func() time.Time { return fixedNow }),
	)
}

func testProject() domain.ProjectConfig {
	connectedAt := fixedNow.Add(-time.Hour)
	return domain.ProjectConfig{
		ProjectName: "shop",
		Repository:  "https://example.com/shop.git",
		Language:    "javascript",
		Framework:   "react",
		Rules:       map[string]bool{"security": true},
		Thresholds:  map[string]float64{"coverage": 80},
		Connected:   true,
		ConnectedAt: &connectedAt,
	}
}

// failingProducer wraps the mock and fails selected sections
type failingProducer struct {
	*producer.Mock
	failSecurity bool
	failQuality  bool
	panicOn      string
}

func (p *failingProducer) Security(rng *rand.Rand, categories []string) (domain.SecuritySection, error) {
	if p.panicOn == taskSecurity {
		panic("boom")
	}
	if p.failSecurity {
		return domain.SecuritySection{}, errors.New("security backend unavailable")
	}
	return p.Mock.Security(rng, categories)
}

func (p *failingProducer) Quality(rng *rand.Rand) (domain.QualitySection, error) {
	if p.failQuality {
		return domain.QualitySection{}, errors.New("quality backend unavailable")
	}
	return p.Mock.Quality(rng)
}

// blockingProducer never finishes the analysis section until released
type blockingProducer struct {
	*producer.Mock
	release chan struct{}
}

func (p *blockingProducer) Analysis(rng *rand.Rand, categories []string) (domain.AnalysisSection, error) {
	<-p.release
	return p.Mock.Analysis(rng, categories)
}

func TestReportService_GenerateAllSections(t *testing.T) {
	svc := NewReportService(newTestSession(42), producer.NewMock(), NewParallelExecutor())

	report, err := svc.Generate(context.Background(), testProject())
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, fixedNow, report.Timestamp)
	assert.NotEmpty(t, report.Version)
	assert.Equal(t, "shop", report.Project.ProjectName)
	assert.False(t, report.HasErrors())

	assert.GreaterOrEqual(t, report.Security.SecurityScore, 8.0)
	assert.LessOrEqual(t, report.Security.SecurityScore, 10.0)
	assert.GreaterOrEqual(t, report.Quality.QualityScore, 6.0)
	assert.LessOrEqual(t, report.Quality.QualityScore, 10.0)
	assert.GreaterOrEqual(t, report.Analysis.IssuesFound, 0)
	assert.LessOrEqual(t, report.Analysis.IssuesFound, 20)
	assert.NotEmpty(t, report.Analysis.Suggestions)

	require.NotEmpty(t, report.Recommendations)
	last := report.Recommendations[len(report.Recommendations)-1]
	assert.Equal(t, "Performance", last.Category)
	assert.Equal(t, domain.PriorityLow, last.Priority)
}

func TestReportService_DeterministicWithSeedAndClock(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1234} {
		a, err := NewReportService(newTestSession(seed), producer.NewMock(), NewParallelExecutor()).
			Generate(context.Background(), testProject())
		require.NoError(t, err)
		b, err := NewReportService(newTestSession(seed), producer.NewMock(), NewParallelExecutor()).
			Generate(context.Background(), testProject())
		require.NoError(t, err)

		assert.Equal(t, a, b, "seed %d", seed)
	}
}

func TestReportService_SnapshotIsIndependent(t *testing.T) {
	cfg := testProject()
	report, err := NewReportService(newTestSession(3), producer.NewMock(), NewParallelExecutor()).
		Generate(context.Background(), cfg)
	require.NoError(t, err)

	cfg.Rules["security"] = false
	assert.True(t, report.Project.Rules["security"])
}

func TestReportService_FailingSectionIsIsolated(t *testing.T) {
	p := &failingProducer{Mock: producer.NewMock(), failSecurity: true}
	svc := NewReportService(newTestSession(42), p, NewParallelExecutor())

	report, err := svc.Generate(context.Background(), testProject())
	require.NoError(t, err)

	assert.Contains(t, report.Security.Error, "security backend unavailable")
	assert.Empty(t, report.Security.Vulnerabilities)
	assert.Empty(t, report.Quality.Error)
	assert.Empty(t, report.Analysis.Error)
	assert.Greater(t, report.Quality.QualityScore, 0.0)
	assert.NotEmpty(t, report.Analysis.Suggestions)
	assert.True(t, report.HasErrors())

	for _, rec := range report.Recommendations {
		assert.NotEqual(t, "Security", rec.Category)
	}
}

func TestReportService_FailedQualityEmitsNoQualityRecommendation(t *testing.T) {
	p := &failingProducer{Mock: producer.NewMock(), failQuality: true}
	report, err := NewReportService(newTestSession(42), p, NewParallelExecutor()).
		Generate(context.Background(), testProject())
	require.NoError(t, err)

	assert.NotEmpty(t, report.Quality.Error)
	for _, rec := range report.Recommendations {
		assert.NotEqual(t, "Code Quality", rec.Category)
	}
}

func TestReportService_PanickingSectionIsIsolated(t *testing.T) {
	p := &failingProducer{Mock: producer.NewMock(), panicOn: taskSecurity}
	report, err := NewReportService(newTestSession(42), p, NewParallelExecutor()).
		Generate(context.Background(), testProject())
	require.NoError(t, err)

	assert.Contains(t, report.Security.Error, "panicked")
	assert.Empty(t, report.Quality.Error)
}

func TestReportService_CancelledAtJoin(t *testing.T) {
	p := &blockingProducer{Mock: producer.NewMock(), release: make(chan struct{})}
	defer close(p.release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	report, err := NewReportService(newTestSession(42), p, NewParallelExecutor()).Generate(ctx, testProject())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, report)
}

func TestDeriveRecommendations(t *testing.T) {
	vulns := []domain.Vulnerability{{ID: "V1"}, {ID: "V2"}}

	tests := []struct {
		name       string
		report     domain.Report
		categories []string
	}{
		{
			name: "vulnerabilities and low quality",
			report: domain.Report{
				Security: domain.SecuritySection{Vulnerabilities: vulns},
				Quality:  domain.QualitySection{QualityScore: 7.9},
			},
			categories: []string{"Security", "Code Quality", "Performance"},
		},
		{
			name: "clean and high quality",
			report: domain.Report{
				Security: domain.SecuritySection{Vulnerabilities: []domain.Vulnerability{}},
				Quality:  domain.QualitySection{QualityScore: 8.0},
			},
			categories: []string{"Performance"},
		},
		{
			name: "low quality only",
			report: domain.Report{
				Quality: domain.QualitySection{QualityScore: 6.2},
			},
			categories: []string{"Code Quality", "Performance"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := DeriveRecommendations(&tt.report)
			got := make([]string, 0, len(recs))
			for _, r := range recs {
				got = append(got, r.Category)
				assert.NotEmpty(t, r.Actions)
			}
			assert.Equal(t, tt.categories, got)
		})
	}

	recs := DeriveRecommendations(&domain.Report{Security: domain.SecuritySection{Vulnerabilities: vulns}})
	assert.Equal(t, domain.PriorityHigh, recs[0].Priority)
	assert.Contains(t, recs[0].Message, "2")
}
