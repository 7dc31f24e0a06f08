package main

import (
	"io"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/config"
	"github.com/ludo-technologies/codeguard/internal/producer"
	"github.com/ludo-technologies/codeguard/internal/session"
	"github.com/ludo-technologies/codeguard/service"
	"github.com/spf13/cobra"
)

// invocation bundles what every command handler needs
type invocation struct {
	settings  *config.Settings
	session   *session.Session
	producer  *producer.Mock
	formatter *service.OutputFormatterImpl
	stderr    io.Writer
}

// newInvocation resolves settings for cmd and builds the invocation session
func newInvocation(cmd *cobra.Command) (*invocation, error) {
	settings, err := config.LoadSettings(cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger := session.NewLogger(cmd.ErrOrStderr(), settings.Verbose)
	store := service.NewFileConfigStore(settings.ConfigPath())
	s := session.New(store,
		session.WithSource(producer.NewSource(settings.Seed)),
		session.WithLogger(logger),
	)
	logger.Printf("settings: config=%s seed=%d timeout=%s", settings.ConfigPath(), settings.Seed, settings.Timeout)

	return &invocation{
		settings:  settings,
		session:   s,
		producer:  producer.NewMock(),
		formatter: service.NewOutputFormatter(),
		stderr:    cmd.ErrOrStderr(),
	}, nil
}

// executor builds the report executor; progress bars only appear for
// text output on a terminal
func (inv *invocation) executor(format domain.OutputFormat) (*service.ParallelExecutorImpl, domain.ProgressManager) {
	pm := service.NewProgressManager(inv.stderr, format != domain.OutputFormatJSON)
	return service.NewParallelExecutorWithProgress(inv.settings, pm), pm
}

// parseFormat reads the --format flag of cmd
func parseFormat(cmd *cobra.Command, allowed ...domain.OutputFormat) (domain.OutputFormat, error) {
	raw, _ := cmd.Flags().GetString("format")
	return domain.ParseOutputFormat(raw, allowed...)
}
