package main

import (
	"github.com/ludo-technologies/codeguard/app"
	"github.com/ludo-technologies/codeguard/domain"
	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit the project configuration",
		Long: `Show the project configuration, optionally after applying settings.

Settable keys: projectName, repository, language, framework,
excludePaths (comma-separated), rules.<name>, thresholds.<name>

Examples:
  codeguard config
  codeguard config --format yaml
  codeguard config --set rules.performance=false --set thresholds.coverage=85
  codeguard config --check-path node_modules/react/index.js`,
		RunE: runConfig,
	}

	cmd.Flags().StringP("format", "f", string(domain.OutputFormatJSON), "Output format: json, yaml")
	cmd.Flags().StringArray("set", nil, "Apply key=value before display (repeatable)")
	cmd.Flags().StringArray("check-path", nil, "Report whether a path is excluded (repeatable)")

	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(cmd, domain.OutputFormatJSON, domain.OutputFormatYAML)
	if err != nil {
		return err
	}

	inv, err := newInvocation(cmd)
	if err != nil {
		return err
	}

	set, _ := cmd.Flags().GetStringArray("set")
	checkPaths, _ := cmd.Flags().GetStringArray("check-path")

	_, err = app.NewConfigUseCase(inv.session, inv.formatter).Execute(cmd.Context(), app.ConfigRequest{
		OutputFormat: format,
		OutputWriter: cmd.OutOrStdout(),
		Set:          set,
		CheckPaths:   checkPaths,
	})
	return err
}
