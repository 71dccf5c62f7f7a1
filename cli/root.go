package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags "-X github.com/yoanbernabeu/toonbench/cli.Version=...".
var Version = "dev"

var (
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "toonbench",
	Short: "Compare the token cost of JSON and TOON payloads",
	Long: `toonbench tokenizes the same payloads serialized as JSON and as TOON
and reports how many tokens each format costs.

Without a subcommand it behaves like "toonbench run": it prints a
comparison table with per-sample and total savings, followed by
ready-to-paste summary lines. Runs passed --record (or every run, with
stats.enabled in .toonbench.yaml) are kept locally so that
"toonbench history" can show how results evolve.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return l, nil
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// GetRootCmd returns the root command, used by the docs generator.
func GetRootCmd() *cobra.Command {
	return rootCmd
}
