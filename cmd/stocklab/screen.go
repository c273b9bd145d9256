package main

import (
	"github.com/spf13/cobra"

	"stocklab/internal/app"
	"stocklab/internal/report"
)

var screenCmd = &cobra.Command{
	Use:   "screen [TICKER...]",
	Short: "Filter tickers with a metric expression",
	Long: `Analyzes every ticker and keeps the ones whose metrics satisfy the
boolean expression. Variables are the flattened fundamental metrics
(pe, pb, roe, roce, npm, ...) plus fund_score, tech_score and combined.`,
	Example: `  stocklab screen AAPL MSFT INTC
  stocklab screen --expr 'pe < 20 && roe > 15' -f tickers.csv`,
	RunE: runScreen,
}

var (
	screenExpr string
	screenFile string
)

func init() {
	screenCmd.Flags().StringVar(&screenExpr, "expr", "", "boolean filter expression (default: "+app.DefaultScreenExpression+")")
	screenCmd.Flags().StringVarP(&screenFile, "file", "f", "", "file with one ticker per line")
}

func runScreen(cmd *cobra.Command, args []string) error {
	handler, ctx, err := initDependencies()
	if err != nil {
		return err
	}
	symbols, err := gatherSymbols(args, screenFile)
	if err != nil {
		return err
	}

	screen, err := handler.AnalysisService.Screen(ctx, symbols, screenExpr)
	if err != nil {
		return err
	}

	report.NewConsoleWriter(cmd.OutOrStdout()).WriteScreen(screen)
	return nil
}
