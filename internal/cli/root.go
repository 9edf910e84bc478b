package cli

import (
	"fmt"
	"os"

	metrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
)

var (
	workspaceDir string
	outputJSON   bool
	logLevel     string
	showMetrics  bool
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "scoreview",
		Short:         "Browse IIDX score exports against the difficulty table",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if showMetrics {
				metrics.WriteOnce(metrics.DefaultRegistry, cmd.ErrOrStderr())
			}
		},
	}

	cmd.PersistentFlags().StringVar(&workspaceDir, "dir", "", "Path to workspace directory")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "Print collected metrics to stderr on exit")

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newLoadCmd())
	cmd.AddCommand(newClearCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newVersionsCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newAliasCmd())
	cmd.AddCommand(newBrowseCmd())

	return cmd
}
