// Package export writes backtest output to CSV for spreadsheet or
// charting tools.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/salvarez/backtrade/internal/backtest"
)

// WriteTradesCSV writes the trade ledger to path.
func WriteTradesCSV(trades []backtest.Trade, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{
		"entry_date", "entry_price", "exit_date", "exit_price",
		"shares", "profit", "profit_pct", "exit_reason",
	}); err != nil {
		return err
	}
	for _, t := range trades {
		if err := w.Write([]string{
			t.EntryDate.Format("2006-01-02"), formatF(t.EntryPrice),
			t.ExitDate.Format("2006-01-02"), formatF(t.ExitPrice),
			formatF(t.Shares), formatF(t.Profit), formatF(t.ProfitPct), t.ExitReason,
		}); err != nil {
			return err
		}
	}
	return nil
}

// WriteEquityCSV writes the equity curve to path.
func WriteEquityCSV(curve []backtest.EquityPoint, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"date", "equity", "signal"}); err != nil {
		return err
	}
	for _, p := range curve {
		if err := w.Write([]string{
			p.Date.Format("2006-01-02"), formatF(p.Equity), string(p.Signal),
		}); err != nil {
			return err
		}
	}
	return nil
}

func formatF(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
