package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/ludo-technologies/codeguard/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codeguard",
		Short: "codeguard - project security and quality assistant",
		Long: `codeguard keeps a per-project configuration and produces security,
quality and analysis reports for it.

A project is set up with 'codeguard init', connected with 'codeguard connect'
and then scanned, analyzed, tested and reported on.`,
		Version: version.GetVersion(),

		// Unknown commands fall back to help
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},

		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.String("dir", ".", "Project root holding the configuration file")
	flags.Int64("seed", 0, "Fixed random seed for reproducible results (0 = random)")
	flags.Duration("timeout", 0, "Deadline for report generation (0 = none)")
	flags.BoolP("verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(connectCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(testCmd())
	rootCmd.AddCommand(demoCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersion())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "codeguard version %s\n", version.GetVersion())
			}
		},
	}
}
