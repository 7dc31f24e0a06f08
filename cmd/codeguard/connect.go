package main

import (
	"fmt"
	"time"

	"github.com/ludo-technologies/codeguard/app"
	"github.com/spf13/cobra"
)

func connectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect the initialized project",
		Long: `Mark the project as connected. Requires 'codeguard init' first.

Examples:
  codeguard connect
  codeguard connect --repository https://github.com/acme/shop`,
		RunE: runConnect,
	}

	cmd.Flags().String("repository", "", "Repository URL, replacing the configured one")

	return cmd
}

func runConnect(cmd *cobra.Command, args []string) error {
	inv, err := newInvocation(cmd)
	if err != nil {
		return err
	}

	repository, _ := cmd.Flags().GetString("repository")
	cfg, err := app.NewConnectUseCase(inv.session).Execute(cmd.Context(), repository)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	target := cfg.Repository
	if target == "" {
		target = "(no repository configured)"
	}
	fmt.Fprintf(out, "Connected '%s' to %s at %s\n", cfg.ProjectName, target, cfg.ConnectedAt.Format(time.RFC3339))
	fmt.Fprintln(out, "\nRun 'codeguard scan', 'codeguard analyze' or 'codeguard report'.")
	return nil
}
