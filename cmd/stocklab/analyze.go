package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stocklab/internal/app"
	"stocklab/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze TICKER...",
	Short: "Run the full analysis for one or more tickers",
	Long: `Runs the fundamental, technical and valuation engines for each ticker
and prints the combined report. Exports land in the configured output
directory.`,
	Example: `  stocklab analyze AAPL
  stocklab analyze MSFT GOOGL --csv
  stocklab analyze NVDA --excel --narrative`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeExcel     bool
	analyzeCSV       bool
	analyzeNarrative bool
)

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeExcel, "excel", false, "write a TICKER_analysis.xlsx workbook per ticker")
	analyzeCmd.Flags().BoolVar(&analyzeCSV, "csv", false, "write a summary CSV covering the analyzed tickers")
	analyzeCmd.Flags().BoolVar(&analyzeNarrative, "narrative", false, "append a model-written narrative (needs an OpenAI key)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	handler, ctx, err := initDependencies()
	if err != nil {
		return err
	}
	if analyzeNarrative && handler.Narrative == nil {
		return fmt.Errorf("narrative generation needs an OpenAI key; set openai_key in the config or OPENAI_API_KEY")
	}
	outDir := handler.Config.Output.Dir
	if analyzeExcel || analyzeCSV {
		if err := ensureOutputDir(outDir); err != nil {
			return err
		}
	}

	writer := report.NewConsoleWriter(cmd.OutOrStdout())
	results := make([]*app.TickerResult, 0, len(args))
	for _, arg := range args {
		symbol := strings.ToUpper(arg)
		result := handler.AnalysisService.AnalyzeTicker(ctx, symbol)
		results = append(results, result)
		writer.WriteTicker(result)
		if result.Err != nil {
			continue
		}

		if analyzeNarrative {
			narrative, nErr := handler.Narrative.ExplainResult(ctx, result)
			if nErr != nil {
				return nErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nNARRATIVE\n\n%s\n", narrative)
		}
		if analyzeExcel {
			path := filepath.Join(outDir, fmt.Sprintf("%s_analysis.xlsx", symbol))
			if err := report.WriteWorkbook(path, result); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nWorkbook saved to: %s\n", path)
		}
	}

	if analyzeCSV {
		path := filepath.Join(outDir, fmt.Sprintf("analysis_%s.csv", time.Now().Format("20060102_150405")))
		if err := report.WriteCSV(path, results); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nSummary saved to: %s\n", path)
	}
	return nil
}
