package backtest

import (
	"fmt"
)

// Print writes the performance summary to stdout.
func (m *Metrics) Print() {
	fmt.Println("\n=== Backtest Results ===")
	fmt.Printf("Final Account Value:  $%.2f\n", m.FinalValue)
	fmt.Printf("Total Profit/Loss:    $%.2f\n", m.TotalProfit)
	fmt.Printf("Total Return:         %.2f%%\n", m.TotalReturn)
	if m.CAGRValid {
		fmt.Printf("CAGR:                 %.2f%%\n", m.CAGR)
	} else {
		fmt.Println("CAGR:                 n/a")
	}

	fmt.Printf("\nSharpe Ratio:         %.3f\n", m.SharpeRatio)
	fmt.Printf("Sortino Ratio:        %.3f\n", m.SortinoRatio)
	fmt.Printf("Max Drawdown:         %.2f%%\n", m.MaxDrawdown)

	fmt.Printf("\nNumber of Trades:     %d\n", m.NumTrades)
	fmt.Printf("Win Rate:             %.2f%%\n", m.WinRate)
	fmt.Printf("Avg Profit/Trade:     $%.2f\n", m.AvgProfit)
	fmt.Printf("Stop-Loss Exits:      %d\n", m.StopLossCount)

	fmt.Printf("\nBest Trade:           %.2f%% on %s\n", m.BestTrade.ProfitPct, m.BestTrade.ExitDate.Format("2006-01-02"))
	fmt.Printf("Worst Trade:          %.2f%% on %s\n", m.WorstTrade.ProfitPct, m.WorstTrade.ExitDate.Format("2006-01-02"))
}

// PrintTrades writes the full trade ledger to stdout.
func (r *Result) PrintTrades() {
	fmt.Println("\n=== Trade List ===")
	for i, t := range r.Trades {
		fmt.Printf("#%d | Entry: %.2f @ %s | Exit: %.2f @ %s | P&L: $%.2f (%.2f%%) | %s\n",
			i+1,
			t.EntryPrice,
			t.EntryDate.Format("2006-01-02"),
			t.ExitPrice,
			t.ExitDate.Format("2006-01-02"),
			t.Profit,
			t.ProfitPct,
			t.ExitReason,
		)
	}
}

// PrintTradesBetween writes the ledger slice [from, to) to stdout,
// clamped to the available range.
func (r *Result) PrintTradesBetween(from, to int) {
	if from < 0 {
		from = 0
	}
	if to > len(r.Trades) {
		to = len(r.Trades)
	}
	fmt.Println("\n=== Trade List ===")
	for i := from; i < to; i++ {
		t := r.Trades[i]
		fmt.Printf("#%d | Entry: %.2f @ %s | Exit: %.2f @ %s | P&L: $%.2f (%.2f%%) | %s\n",
			i+1,
			t.EntryPrice,
			t.EntryDate.Format("2006-01-02"),
			t.ExitPrice,
			t.ExitDate.Format("2006-01-02"),
			t.Profit,
			t.ProfitPct,
			t.ExitReason,
		)
	}
}
