package main

import (
	"github.com/ludo-technologies/codeguard/app"
	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/constants"
	"github.com/spf13/cobra"
)

func testCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run the project test suites",
		Long: `Run the test suites of the connected project.

Types: unit, integration, e2e, all

Examples:
  codeguard test
  codeguard test --type unit --coverage`,
		RunE: runTest,
	}

	cmd.Flags().StringP("type", "t", constants.CategoryAll, "Test type: unit, integration, e2e, all")
	cmd.Flags().Bool("coverage", false, "Report test coverage")
	cmd.Flags().StringP("format", "f", string(domain.OutputFormatText), "Output format: text, json")

	return cmd
}

func runTest(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(cmd, domain.OutputFormatText, domain.OutputFormatJSON)
	if err != nil {
		return err
	}

	inv, err := newInvocation(cmd)
	if err != nil {
		return err
	}

	testType, _ := cmd.Flags().GetString("type")
	coverage, _ := cmd.Flags().GetBool("coverage")
	run, err := app.NewTestUseCase(inv.session, inv.producer).Execute(cmd.Context(), app.TestRequest{
		Type:     testType,
		Coverage: coverage,
	})
	if err != nil {
		return err
	}

	return inv.formatter.WriteTestRun(run, format, cmd.OutOrStdout())
}
