package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"stocklab/internal/app"
	"stocklab/internal/report"
)

var watchCmd = &cobra.Command{
	Use:   "watch [TICKER...]",
	Short: "Re-run a batch analysis on a cron schedule",
	Long: `Schedules the batch pipeline with a cron expression and keeps running
until interrupted. Each firing prints the ranked table and writes the
requested exports.`,
	Example: `  stocklab watch --cron '0 18 * * 1-5' -f tickers.csv
  stocklab watch AAPL MSFT --cron '30 9 * * 1-5' --csv`,
	RunE: runWatch,
}

var (
	watchCron  string
	watchFile  string
	watchOut   string
	watchCSV   bool
	watchExcel bool
)

func init() {
	watchCmd.Flags().StringVar(&watchCron, "cron", "0 18 * * 1-5", "cron schedule for the re-runs")
	watchCmd.Flags().StringVarP(&watchFile, "file", "f", "", "file with one ticker per line")
	watchCmd.Flags().StringVar(&watchOut, "out", "", "output directory for exports (defaults to the configured one)")
	watchCmd.Flags().BoolVar(&watchCSV, "csv", false, "write each run's ranked summary as a CSV")
	watchCmd.Flags().BoolVar(&watchExcel, "excel", false, "write each run's ranked summary as an xlsx workbook")
}

func runWatch(cmd *cobra.Command, args []string) error {
	handler, ctx, err := initDependencies()
	if err != nil {
		return err
	}
	symbols, err := gatherSymbols(args, watchFile)
	if err != nil {
		return err
	}

	// Cancelling the context aborts an in-flight run between waves, so
	// Ctrl+C does not have to wait out a long portfolio.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	writer := report.NewConsoleWriter(cmd.OutOrStdout())
	runOnce := func() {
		batch, runErr := handler.AnalysisService.AnalyzeBatch(ctx, symbols, app.BatchOptions{})
		if runErr != nil {
			if errors.Is(runErr, context.Canceled) {
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "batch run failed: %v\n", runErr)
			return
		}
		writer.WriteBatch(batch)
		if exportErr := exportBatch(cmd, handler.Config, batch, watchOut, watchCSV, watchExcel); exportErr != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "export failed: %v\n", exportErr)
		}
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(watchCron, runOnce); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", watchCron, err)
	}
	scheduler.Start()
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %d tickers on schedule %q. Press Ctrl+C to stop.\n", len(symbols), watchCron)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	cancel()
	<-scheduler.Stop().Done()
	fmt.Fprintln(cmd.OutOrStdout(), "\nWatch stopped")
	return nil
}
