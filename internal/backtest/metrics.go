package backtest

import (
	"math"
)

const (
	tradingDaysPerYear = 252
	annualRiskFree     = 0.02
)

// Metrics summarises a completed backtest. It is nil when the run
// produced no trades, which is distinct from a run with all-zero stats.
type Metrics struct {
	FinalValue  float64
	TotalProfit float64
	TotalReturn float64 // percent

	// CAGR is only computable over a positive elapsed period.
	CAGR      float64
	CAGRValid bool

	NumTrades int
	WinRate   float64 // percent
	AvgProfit float64

	MaxDrawdown  float64 // percent
	SharpeRatio  float64
	SortinoRatio float64

	BestTrade  Trade // by ProfitPct, first occurrence wins ties
	WorstTrade Trade

	StopLossCount int
}

// calculateMetrics computes the performance summary from the finished
// ledger and equity curve. Degenerate cases (zero-variance returns,
// zero elapsed years) fall back to defined values instead of failing.
func calculateMetrics(res *Result, cfg Config) *Metrics {
	if len(res.Trades) == 0 {
		return nil
	}

	m := &Metrics{
		FinalValue: res.FinalCash,
		NumTrades:  len(res.Trades),
	}

	m.TotalReturn = (res.FinalCash/res.InitialCapital - 1) * 100

	years := cfg.EndDate.Sub(cfg.StartDate).Hours() / 24 / 365.25
	if years > 0 {
		m.CAGR = (math.Pow(res.FinalCash/res.InitialCapital, 1/years) - 1) * 100
		m.CAGRValid = true
	}

	wins := 0
	m.BestTrade = res.Trades[0]
	m.WorstTrade = res.Trades[0]
	for _, t := range res.Trades {
		m.TotalProfit += t.Profit
		if t.Profit > 0 {
			wins++
		}
		if t.ProfitPct > m.BestTrade.ProfitPct {
			m.BestTrade = t
		}
		if t.ProfitPct < m.WorstTrade.ProfitPct {
			m.WorstTrade = t
		}
		if t.ExitReason == ExitStopLoss {
			m.StopLossCount++
		}
	}
	m.WinRate = float64(wins) / float64(len(res.Trades)) * 100
	m.AvgProfit = m.TotalProfit / float64(len(res.Trades))

	m.MaxDrawdown = maxDrawdown(res.EquityCurve)

	daily := dailyReturns(res.EquityCurve)
	m.SharpeRatio = sharpeRatio(daily)
	m.SortinoRatio = sortinoRatio(daily)

	return m
}

// maxDrawdown returns the largest peak-to-trough equity decline as a
// percentage of the running peak.
func maxDrawdown(curve []EquityPoint) float64 {
	if len(curve) == 0 {
		return 0
	}

	peak := curve[0].Equity
	maxDD := 0.0
	for _, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		dd := (peak - p.Equity) / peak
		if dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD * 100
}

// dailyReturns is the pct-change of consecutive equity values. The
// first point has no prior value and is excluded.
func dailyReturns(curve []EquityPoint) []float64 {
	if len(curve) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		returns = append(returns, (curve[i].Equity-prev)/prev)
	}
	return returns
}

// sharpeRatio annualises mean excess return over the volatility of the
// daily return series. Zero when the series is too short or flat.
func sharpeRatio(daily []float64) float64 {
	if len(daily) < 2 {
		return 0
	}

	rf := annualRiskFree / tradingDaysPerYear
	std := sampleStdev(daily)
	if std == 0 {
		return 0
	}

	excess := make([]float64, len(daily))
	for i, r := range daily {
		excess[i] = r - rf
	}
	return math.Sqrt(tradingDaysPerYear) * mean(excess) / std
}

// sortinoRatio is the Sharpe variant that only penalises downside
// volatility. Zero when there are fewer than two negative returns or
// their deviation is zero.
func sortinoRatio(daily []float64) float64 {
	if len(daily) < 2 {
		return 0
	}

	var downside []float64
	for _, r := range daily {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	if len(downside) < 2 {
		return 0
	}

	std := sampleStdev(downside)
	if std == 0 {
		return 0
	}

	rf := annualRiskFree / tradingDaysPerYear
	return math.Sqrt(tradingDaysPerYear) * (mean(daily) - rf) / std
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStdev is the n-1 standard deviation.
func sampleStdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mu := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - mu
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
