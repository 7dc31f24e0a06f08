package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/config"
	"github.com/ludo-technologies/codeguard/internal/session"
	"github.com/ludo-technologies/codeguard/service"
)

// InitRequest holds the inputs of the init use case
type InitRequest struct {
	Overrides domain.ProjectOverrides

	// FromGitignore appends the patterns of ProjectDir/.gitignore to the
	// exclude list
	FromGitignore bool
	ProjectDir    string
}

// InitUseCase creates the project configuration
type InitUseCase struct {
	session *session.Session
}

// NewInitUseCase creates a new init use case
func NewInitUseCase(s *session.Session) *InitUseCase {
	return &InitUseCase{session: s}
}

// Execute merges the defaults with the request overrides and persists the
// result. Any existing record, including an unreadable one, is replaced.
func (uc *InitUseCase) Execute(ctx context.Context, req InitRequest) (domain.ProjectConfig, error) {
	if err := session.Check(domain.OpInit, nil); err != nil {
		return domain.ProjectConfig{}, err
	}

	overrides := req.Overrides
	if req.FromGitignore {
		patterns, err := service.ReadGitignorePatterns(req.ProjectDir)
		if err != nil {
			return domain.ProjectConfig{}, err
		}
		base := overrides.ExcludePaths
		if len(base) == 0 {
			base = config.DefaultProjectConfig().ExcludePaths
		}
		overrides.ExcludePaths = service.MergePatterns(base, patterns)
		uc.session.Logger.Printf("init: %d patterns read from %s", len(patterns), service.GitignoreFileName)
	}

	cfg, err := service.InitProject(uc.session.Store, overrides)
	if err != nil {
		return domain.ProjectConfig{}, err
	}
	uc.session.Logger.Printf("init: configuration written to %s", uc.session.Store.Path())
	return cfg, nil
}

// ParseRules converts rule=value pairs into rule overrides
func ParseRules(pairs map[string]string) (map[string]bool, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	rules := make(map[string]bool, len(pairs))
	for k, v := range pairs {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid value for rule '%s': %s", k, v), err)
		}
		rules[strings.TrimSpace(k)] = b
	}
	return rules, nil
}

// ParseThresholds converts metric=number pairs into threshold overrides
func ParseThresholds(pairs map[string]string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	thresholds := make(map[string]float64, len(pairs))
	for k, v := range pairs {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid value for threshold '%s': %s", k, v), err)
		}
		thresholds[strings.TrimSpace(k)] = f
	}
	return thresholds, nil
}
