package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stocklab/api"
	"stocklab/cmd"
	"stocklab/internal/config"
	"stocklab/internal/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "stocklab",
	Short: "Fundamental, technical and valuation analysis for listed stocks",
	Long: `stocklab pulls quotes, price history and financial statements from
Yahoo Finance, runs them through fundamental, technical and valuation
engines and blends everything into one scored recommendation.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to the YAML config file")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(screenCmd)
	rootCmd.AddCommand(watchCmd)
}

// initDependencies wires the service stack once flags are parsed. The
// returned context carries the logger the analysis pipeline expects.
func initDependencies() (*api.ApiHandler, context.Context, error) {
	handler, err := cmd.InitializeDependencies(configPath)
	if err != nil {
		return nil, nil, err
	}
	ctx := context.WithValue(context.Background(), logger.ContextKey, logger.New())
	return handler, ctx, nil
}

func ensureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
