package main

import (
	"github.com/ludo-technologies/codeguard/app"
	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/service"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a full project report",
		Long: `Generate a report combining the security scan, quality metrics and
analysis, with recommendations.

Text output is printed. JSON output is written to
codeguard-report-<YYYYMMDD-HHMMSS>.json in the output directory.

Examples:
  codeguard report
  codeguard report --format json
  codeguard report --format json --output reports/`,
		RunE: runReport,
	}

	cmd.Flags().StringP("format", "f", string(domain.OutputFormatText), "Output format: text, json")
	cmd.Flags().StringP("output", "o", "", "Directory for the JSON report (default: project root)")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(cmd, domain.OutputFormatText, domain.OutputFormatJSON)
	if err != nil {
		return err
	}

	inv, err := newInvocation(cmd)
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = inv.settings.ReportDirectory()
	}

	executor, pm := inv.executor(format)
	defer pm.Close()

	generator := service.NewReportService(inv.session, inv.producer, executor)
	_, err = app.NewReportUseCase(inv.session, generator, inv.formatter).Execute(cmd.Context(), app.ReportRequest{
		OutputFormat: format,
		OutputWriter: cmd.OutOrStdout(),
		OutputDir:    outputDir,
	})
	return err
}
