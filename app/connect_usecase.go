package app

import (
	"context"
	"time"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/session"
)

// ConnectUseCase marks the project as connected
type ConnectUseCase struct {
	session *session.Session
}

// NewConnectUseCase creates a new connect use case
func NewConnectUseCase(s *session.Session) *ConnectUseCase {
	return &ConnectUseCase{session: s}
}

// Execute sets connected and connectedAt and optionally replaces the
// repository. Nothing is written when the project is not initialized.
func (uc *ConnectUseCase) Execute(ctx context.Context, repository string) (domain.ProjectConfig, error) {
	current, err := uc.session.Admit(domain.OpConnect)
	if err != nil {
		return domain.ProjectConfig{}, err
	}

	updated := current.Clone()
	if repository != "" {
		updated.Repository = repository
	}
	now := uc.session.Clock().UTC()
	updated.Connected = true
	updated.ConnectedAt = &now

	if err := uc.session.Store.Save(updated); err != nil {
		return domain.ProjectConfig{}, err
	}
	uc.session.Logger.Printf("connect: %s connected at %s", updated.ProjectName, now.Format(time.RFC3339))
	return updated, nil
}
