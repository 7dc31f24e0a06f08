package session

import (
	"errors"

	"github.com/ludo-technologies/codeguard/domain"
)

// Requirement is the precondition an operation places on persisted state
type Requirement int

const (
	// RequireNothing admits the operation unconditionally
	RequireNothing Requirement = iota
	// RequireInitialized needs an existing configuration
	RequireInitialized
	// RequireConnected needs an existing configuration with connected=true
	RequireConnected
)

var requirements = map[domain.Operation]Requirement{
	domain.OpInit:    RequireNothing,
	domain.OpConfig:  RequireNothing,
	domain.OpHelp:    RequireNothing,
	domain.OpDemo:    RequireNothing,
	domain.OpConnect: RequireInitialized,
	domain.OpScan:    RequireConnected,
	domain.OpAnalyze: RequireConnected,
	domain.OpTest:    RequireConnected,
	domain.OpReport:  RequireConnected,
}

// RequirementOf returns the precondition for op. Unknown operations need nothing.
func RequirementOf(op domain.Operation) Requirement {
	return requirements[op]
}

// Check decides whether op may run given the persisted configuration.
// cfg is nil when the project has not been initialized.
func Check(op domain.Operation, cfg *domain.ProjectConfig) error {
	switch RequirementOf(op) {
	case RequireInitialized:
		if cfg == nil {
			return domain.NewNotInitializedError()
		}
	case RequireConnected:
		if cfg == nil {
			return domain.NewNotConnectedUninitializedError()
		}
		if !cfg.Connected {
			return domain.NewNotConnectedError()
		}
	}
	return nil
}

// Gate admits operations against a configuration store
type Gate struct {
	store domain.ConfigStore
}

// NewGate creates a gate reading from store
func NewGate(store domain.ConfigStore) *Gate {
	return &Gate{store: store}
}

// Admit loads the current configuration and checks op against it. The loaded
// configuration is returned for reuse; it is nil when none exists. Admit
// never writes.
func (g *Gate) Admit(op domain.Operation) (*domain.ProjectConfig, error) {
	cfg, err := g.store.Load()
	if err != nil {
		if !errors.Is(err, domain.ErrConfigMissing) {
			return nil, err
		}
		if err := Check(op, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := Check(op, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
