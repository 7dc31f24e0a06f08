package app

import (
	"context"
	"strings"
	"time"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/constants"
	"github.com/ludo-technologies/codeguard/internal/producer"
	"github.com/ludo-technologies/codeguard/internal/session"
)

// ScanUseCase runs the placeholder security scan
type ScanUseCase struct {
	session  *session.Session
	producer producer.Producer
}

// NewScanUseCase creates a new scan use case
func NewScanUseCase(s *session.Session, p producer.Producer) *ScanUseCase {
	return &ScanUseCase{session: s, producer: p}
}

// Execute scans the given category, or all of them for "all" or empty
func (uc *ScanUseCase) Execute(ctx context.Context, scanType string) (*domain.ScanResult, error) {
	if _, err := uc.session.Admit(domain.OpScan); err != nil {
		return nil, err
	}

	categories, err := producer.ResolveCategories(scanType, constants.ScanCategories)
	if err != nil {
		return nil, err
	}

	section, err := uc.producer.Security(uc.session.Source.New(), categories)
	if err != nil {
		return nil, err
	}

	return &domain.ScanResult{
		Type:            typeLabel(scanType),
		Vulnerabilities: section.Vulnerabilities,
		SecurityScore:   section.SecurityScore,
		Findings:        section.Findings,
		GeneratedAt:     uc.session.Clock().Format(time.RFC3339),
	}, nil
}

// typeLabel normalises a --type value for display
func typeLabel(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if t == "" {
		return constants.CategoryAll
	}
	return t
}
