package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salvarez/backtrade/internal/backtest"
)

func sampleResult() *backtest.Result {
	return &backtest.Result{
		Ticker:         "TEST",
		InitialCapital: 10000,
		FinalCash:      11000,
		Trades: []backtest.Trade{
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
		},
		Metrics: &backtest.Metrics{
			FinalValue:  11000,
			TotalReturn: 10,
			NumTrades:   1,
			WinRate:     100,
		},
	}
}

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	rec, err := NewSQLiteRecorder(dbPath)
	assert.NoError(t, err)
	defer rec.Close()

	runID, err := rec.RecordRun(sampleResult())
	assert.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	var count int
	err = rec.db.QueryRow("SELECT COUNT(*) FROM backtest_trades WHERE run_id = ?", runID).Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	var ticker string
	var finalCash float64
	err = rec.db.QueryRow("SELECT ticker, final_cash FROM backtest_runs WHERE id = ?", runID).Scan(&ticker, &finalCash)
	assert.NoError(t, err)
	assert.Equal(t, "TEST", ticker)
	assert.Equal(t, 11000.0, finalCash)
}

func TestSQLiteRecorder_MultipleRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	rec, err := NewSQLiteRecorder(dbPath)
	assert.NoError(t, err)
	defer rec.Close()

	id1, err := rec.RecordRun(sampleResult())
	assert.NoError(t, err)
	id2, err := rec.RecordRun(sampleResult())
	assert.NoError(t, err)

	assert.Greater(t, id2, id1)
}

func TestNoop(t *testing.T) {
	rec := NewNoop()

	id, err := rec.RecordRun(sampleResult())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), id)
	assert.NoError(t, rec.Close())
}
