package main

import (
	"github.com/ludo-technologies/codeguard/app"
	"github.com/ludo-technologies/codeguard/domain"
	"github.com/spf13/cobra"
)

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through every command on a sample project",
		Long: `Run init, connect, scan, analyze, test and report on a sample project
kept in memory. The project configuration file is never touched.`,
		RunE: runDemo,
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	inv, err := newInvocation(cmd)
	if err != nil {
		return err
	}

	executor, pm := inv.executor(domain.OutputFormatText)
	defer pm.Close()

	_, err = app.NewDemoUseCase(inv.session, inv.producer, executor, inv.formatter).Execute(cmd.Context(), cmd.OutOrStdout())
	return err
}
