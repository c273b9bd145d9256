package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_readTickerFile(t *testing.T) {
	t.Run("skips headers, comments and blanks", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tickers.csv")
		content := "ticker,weight\n# large caps\naapl,0.5\nMSFT,0.3\n\ngoogl\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		got, err := readTickerFile(path)
		require.NoError(t, err)
		require.Equal(t, []string{"AAPL", "MSFT", "GOOGL"}, got)
	})

	t.Run("rejects a file with no tickers", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tickers.csv")
		require.NoError(t, os.WriteFile(path, []byte("ticker\n"), 0o644))

		_, err := readTickerFile(path)
		require.ErrorContains(t, err, "no tickers")
	})

	t.Run("rejects a missing file", func(t *testing.T) {
		_, err := readTickerFile(filepath.Join(t.TempDir(), "nope.csv"))
		require.ErrorContains(t, err, "failed to read ticker file")
	})
}

func Test_gatherSymbols(t *testing.T) {
	t.Run("merges args with the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tickers.txt")
		require.NoError(t, os.WriteFile(path, []byte("NVDA\n"), 0o644))

		got, err := gatherSymbols([]string{" aapl "}, path)
		require.NoError(t, err)
		require.Equal(t, []string{"AAPL", "NVDA"}, got)
	})

	t.Run("rejects an empty set", func(t *testing.T) {
		_, err := gatherSymbols(nil, "")
		require.ErrorContains(t, err, "no tickers")
	})
}
