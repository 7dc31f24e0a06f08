package app

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/session"
	"github.com/ludo-technologies/codeguard/service"
)

// ConfigRequest holds the inputs of the config use case
type ConfigRequest struct {
	OutputFormat domain.OutputFormat
	OutputWriter io.Writer

	// Set holds key=value assignments applied before display
	Set []string

	// CheckPaths are reported as excluded or included
	CheckPaths []string
}

// ConfigUseCase displays and edits the project configuration
type ConfigUseCase struct {
	session   *session.Session
	formatter domain.ReportFormatter
}

// NewConfigUseCase creates a new config use case
func NewConfigUseCase(s *session.Session, formatter domain.ReportFormatter) *ConfigUseCase {
	return &ConfigUseCase{session: s, formatter: formatter}
}

// Execute applies any assignments, answers path checks and prints the
// configuration. Without a configuration only a hint is printed, unless
// assignments were requested.
func (uc *ConfigUseCase) Execute(ctx context.Context, req ConfigRequest) (*domain.ProjectConfig, error) {
	current, err := uc.session.Admit(domain.OpConfig)
	if err != nil {
		return nil, err
	}

	if current == nil {
		if len(req.Set) > 0 || len(req.CheckPaths) > 0 {
			return nil, domain.NewNotInitializedError()
		}
		fmt.Fprintf(req.OutputWriter, "No configuration found at %s. Run 'codeguard init' to create one.\n", uc.session.Store.Path())
		return nil, nil
	}

	cfg := current.Clone()
	if len(req.Set) > 0 {
		for _, assignment := range req.Set {
			key, value, ok := strings.Cut(assignment, "=")
			if !ok {
				return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid assignment '%s', expected key=value", assignment), nil)
			}
			if err := ApplySetting(&cfg, strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
				return nil, err
			}
		}
		if err := uc.session.Store.Save(cfg); err != nil {
			return nil, err
		}
		uc.session.Logger.Printf("config: %d settings saved to %s", len(req.Set), uc.session.Store.Path())
	}

	if len(req.CheckPaths) > 0 {
		matcher := service.NewExcludeMatcher(cfg.ExcludePaths)
		for _, p := range req.CheckPaths {
			if matched, pattern := matcher.Match(p); matched {
				fmt.Fprintf(req.OutputWriter, "%s: excluded (%s)\n", p, pattern)
			} else {
				fmt.Fprintf(req.OutputWriter, "%s: included\n", p)
			}
		}
		return &cfg, nil
	}

	if err := uc.formatter.WriteConfig(cfg, req.OutputFormat, req.OutputWriter); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplySetting assigns one configuration value. Supported keys are the
// scalar fields, excludePaths (comma separated), rules.<name> and
// thresholds.<name>. The connection state cannot be set.
func ApplySetting(cfg *domain.ProjectConfig, key, value string) error {
	switch key {
	case "projectName":
		cfg.ProjectName = value
	case "repository":
		cfg.Repository = value
	case "language":
		cfg.Language = value
	case "framework":
		cfg.Framework = value
	case "excludePaths":
		cfg.ExcludePaths = splitList(value)
	case "connected", "connectedAt":
		return domain.NewInvalidInputError(fmt.Sprintf("'%s' is managed by 'codeguard connect'", key), nil)
	default:
		return applyNestedSetting(cfg, key, value)
	}
	return nil
}

func applyNestedSetting(cfg *domain.ProjectConfig, key, value string) error {
	group, name, ok := strings.Cut(key, ".")
	if !ok || name == "" {
		return domain.NewInvalidInputError(fmt.Sprintf("unknown setting '%s'", key), nil)
	}

	switch group {
	case "rules":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return domain.NewInvalidInputError(fmt.Sprintf("invalid value for %s: %s", key, value), err)
		}
		if cfg.Rules == nil {
			cfg.Rules = make(map[string]bool)
		}
		cfg.Rules[name] = b
	case "thresholds":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return domain.NewInvalidInputError(fmt.Sprintf("invalid value for %s: %s", key, value), err)
		}
		if cfg.Thresholds == nil {
			cfg.Thresholds = make(map[string]float64)
		}
		cfg.Thresholds[name] = f
	default:
		return domain.NewInvalidInputError(fmt.Sprintf("unknown setting '%s'", key), nil)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
