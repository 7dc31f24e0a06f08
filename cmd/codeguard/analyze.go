package main

import (
	"github.com/ludo-technologies/codeguard/app"
	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/constants"
	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze code quality",
		Long: `Analyze the connected project.

Types: quality, performance, maintainability, accessibility, all

Examples:
  codeguard analyze
  codeguard analyze --type accessibility
  codeguard analyze --type quality --format json`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("type", "t", constants.CategoryAll, "Analysis type: quality, performance, maintainability, accessibility, all")
	cmd.Flags().StringP("format", "f", string(domain.OutputFormatText), "Output format: text, json")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(cmd, domain.OutputFormatText, domain.OutputFormatJSON)
	if err != nil {
		return err
	}

	inv, err := newInvocation(cmd)
	if err != nil {
		return err
	}

	analyzeType, _ := cmd.Flags().GetString("type")
	result, err := app.NewAnalyzeUseCase(inv.session, inv.producer).Execute(cmd.Context(), analyzeType)
	if err != nil {
		return err
	}

	return inv.formatter.WriteAnalyze(result, format, cmd.OutOrStdout())
}
