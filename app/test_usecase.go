package app

import (
	"context"
	"math/rand"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/constants"
	"github.com/ludo-technologies/codeguard/internal/producer"
	"github.com/ludo-technologies/codeguard/internal/session"
)

// TestRunner produces placeholder test runs
type TestRunner interface {
	Tests(rng *rand.Rand, suites []string, withCoverage bool) (*domain.TestRun, error)
}

// TestRequest holds the inputs of the test use case
type TestRequest struct {
	Type     string
	Coverage bool
}

// TestUseCase runs the placeholder test suites
type TestUseCase struct {
	session *session.Session
	runner  TestRunner
}

// NewTestUseCase creates a new test use case
func NewTestUseCase(s *session.Session, runner TestRunner) *TestUseCase {
	return &TestUseCase{session: s, runner: runner}
}

// Execute runs the requested suite, or all of them for "all" or empty.
// Failing placeholder tests are reported in the result, not as an error.
func (uc *TestUseCase) Execute(ctx context.Context, req TestRequest) (*domain.TestRun, error) {
	if _, err := uc.session.Admit(domain.OpTest); err != nil {
		return nil, err
	}

	suites, err := producer.ResolveCategories(req.Type, constants.TestSuites)
	if err != nil {
		return nil, err
	}

	return uc.runner.Tests(uc.session.Source.New(), suites, req.Coverage)
}
