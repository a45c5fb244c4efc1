package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salvarez/backtrade/internal/backtest"
	"github.com/salvarez/backtrade/internal/types"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestWriteTradesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	trades := []backtest.Trade{
		{
			EntryDate:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			EntryPrice: 100,
			ExitDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			ExitPrice:  110,
			Shares:     100,
			Profit:     1000,
			ProfitPct:  10,
			ExitReason: backtest.ExitSignal,
		},
	}

	assert.NoError(t, WriteTradesCSV(trades, path))

	rows := readAll(t, path)
	assert.Equal(t, 2, len(rows))
	assert.Equal(t, "entry_date", rows[0][0])
	assert.Equal(t, "2024-01-02", rows[1][0])
	assert.Equal(t, "110", rows[1][3])
	assert.Equal(t, "SIGNAL", rows[1][7])
}

func TestWriteEquityCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equity.csv")
	curve := []backtest.EquityPoint{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Equity: 10000, Signal: types.HOLD},
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Equity: 10100, Signal: types.BUY},
	}

	assert.NoError(t, WriteEquityCSV(curve, path))

	rows := readAll(t, path)
	assert.Equal(t, 3, len(rows))
	assert.Equal(t, []string{"date", "equity", "signal"}, rows[0])
	assert.Equal(t, []string{"2024-01-03", "10100", "BUY"}, rows[2])
}

func TestWriteTradesCSV_BadPath(t *testing.T) {
	err := WriteTradesCSV(nil, "/nonexistent/dir/trades.csv")
	assert.Error(t, err)
}
