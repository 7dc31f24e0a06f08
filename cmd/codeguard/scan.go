package main

import (
	"github.com/ludo-technologies/codeguard/app"
	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/constants"
	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a security scan",
		Long: `Run a security scan of the connected project.

Types: dependencies, vulnerabilities, secrets, all

Examples:
  codeguard scan
  codeguard scan --type secrets
  codeguard scan --type vulnerabilities --format json`,
		RunE: runScan,
	}

	cmd.Flags().StringP("type", "t", constants.CategoryAll, "Scan type: dependencies, vulnerabilities, secrets, all")
	cmd.Flags().StringP("format", "f", string(domain.OutputFormatText), "Output format: text, json")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(cmd, domain.OutputFormatText, domain.OutputFormatJSON)
	if err != nil {
		return err
	}

	inv, err := newInvocation(cmd)
	if err != nil {
		return err
	}

	scanType, _ := cmd.Flags().GetString("type")
	result, err := app.NewScanUseCase(inv.session, inv.producer).Execute(cmd.Context(), scanType)
	if err != nil {
		return err
	}

	return inv.formatter.WriteScan(result, format, cmd.OutOrStdout())
}
