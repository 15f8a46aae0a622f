package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"docstring2md/internal/config"
	"docstring2md/internal/logger"
	"docstring2md/internal/pipeline"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "docstring2md <path>",
	Short:         "Render Google-style Python docstrings into a Markdown reference",
	Long:          "Walks the Python package tree at <path> and writes <parent>/docs/doc.md.",
	Version:       version,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Configuration
		cfg, err := config.LoadConfig("")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// 2. Setup Logging
		cleanup, err := logger.Setup(logger.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Writer: cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		defer cleanup()

		// 3. Generate
		gen, err := pipeline.NewGenerator(cfg, pipeline.WithReport(cmd.OutOrStdout()))
		if err != nil {
			return err
		}
		out, err := gen.Run(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		logger.L().Debug("cli.done", "output", out)
		return nil
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
