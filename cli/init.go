package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yoanbernabeu/toonbench/config"
	"go.uber.org/zap"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .toonbench.yaml in the current directory",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	path := config.GetConfigPath(cwd)
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.ConfigFileName)
	}

	if err := config.DefaultConfig().Save(cwd); err != nil {
		return err
	}
	logger.Debug("configuration written", zap.String("path", path))
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
