package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"stocklab/internal/app"
	"stocklab/internal/config"
	"stocklab/internal/report"
)

var batchCmd = &cobra.Command{
	Use:   "batch [TICKER...]",
	Short: "Analyze a portfolio of tickers and rank the results",
	Long: `Runs the full pipeline over every ticker, in waves so the data
provider is not hammered, then prints a ranked table plus a
recommendation breakdown. Tickers come from the arguments, a file, or
both.`,
	Example: `  stocklab batch AAPL MSFT GOOGL
  stocklab batch -f tickers.csv --csv
  stocklab batch -f tickers.csv --out reports --excel`,
	RunE: runBatch,
}

var (
	batchFile  string
	batchOut   string
	batchCSV   bool
	batchExcel bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "file with one ticker per line (CSV rows work, first column wins)")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "output directory for exports (defaults to the configured one)")
	batchCmd.Flags().BoolVar(&batchCSV, "csv", false, "write the ranked summary as a CSV")
	batchCmd.Flags().BoolVar(&batchExcel, "excel", false, "write the ranked summary as an xlsx workbook")
}

func runBatch(cmd *cobra.Command, args []string) error {
	handler, ctx, err := initDependencies()
	if err != nil {
		return err
	}
	symbols, err := gatherSymbols(args, batchFile)
	if err != nil {
		return err
	}

	batch, err := handler.AnalysisService.AnalyzeBatch(ctx, symbols, app.BatchOptions{})
	if err != nil {
		return err
	}

	report.NewConsoleWriter(cmd.OutOrStdout()).WriteBatch(batch)

	return exportBatch(cmd, handler.Config, batch, batchOut, batchCSV, batchExcel)
}

// exportBatch writes the optional CSV/xlsx artifacts for one batch run.
// watch shares it so scheduled runs export the same way.
func exportBatch(cmd *cobra.Command, cfg *config.Config, batch *app.BatchResult, outDir string, wantCSV, wantExcel bool) error {
	if !wantCSV && !wantExcel {
		return nil
	}
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	if err := ensureOutputDir(outDir); err != nil {
		return err
	}

	stamp := batch.StartedAt.Format("20060102_150405")
	if wantCSV {
		path := filepath.Join(outDir, fmt.Sprintf("portfolio_analysis_%s.csv", stamp))
		if err := report.WriteCSV(path, batch.Results); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nPortfolio analysis saved to: %s\n", path)
	}
	if wantExcel {
		path := filepath.Join(outDir, fmt.Sprintf("portfolio_analysis_%s.xlsx", stamp))
		if err := report.WriteBatchWorkbook(path, batch); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nWorkbook saved to: %s\n", path)
	}
	return nil
}

// gatherSymbols merges positional tickers with the optional file.
func gatherSymbols(args []string, file string) ([]string, error) {
	symbols := make([]string, 0, len(args))
	for _, a := range args {
		symbols = append(symbols, strings.ToUpper(strings.TrimSpace(a)))
	}
	if file != "" {
		fromFile, err := readTickerFile(file)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, fromFile...)
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no tickers given; pass them as arguments or through --file")
	}
	return symbols, nil
}

// readTickerFile reads tickers one per line. Lines may be CSV rows, in
// which case the first field is taken. A leading ticker/symbol header
// and # comments are skipped.
func readTickerFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ticker file: %w", err)
	}

	var symbols []string
	for _, line := range strings.Split(string(data), "\n") {
		field := strings.TrimSpace(strings.Split(line, ",")[0])
		if field == "" || strings.HasPrefix(field, "#") {
			continue
		}
		if strings.EqualFold(field, "ticker") || strings.EqualFold(field, "symbol") {
			continue
		}
		symbols = append(symbols, strings.ToUpper(field))
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("ticker file %s has no tickers", path)
	}
	return symbols, nil
}
