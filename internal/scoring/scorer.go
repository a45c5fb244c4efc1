// Package scoring rates a stock 0-5 across ten fundamental and
// technical indicators and maps the 50-point total onto a discrete
// recommendation. Missing inputs receive benefit-of-the-doubt defaults
// instead of failing the analysis.
package scoring

import (
	"github.com/salvarez/backtrade/internal/types"
)

// Fundamentals carries the possibly-missing financial inputs. A nil
// field means the data provider had no value for it.
type Fundamentals struct {
	PEGRatio        *float64
	OperatingMargin *float64
	FreeCashFlow    *float64
	Revenue         *float64
	RevenueGrowth   *float64 // percent YoY
	FCFGrowth       *float64 // percent YoY
	DebtToEquity    *float64
}

// Technicals carries the price-derived inputs. MA/RSI/volume fields are
// NaN when their lookback window has not filled.
type Technicals struct {
	Price       float64
	ShortMA     float64
	LongMA      float64
	RSI         float64
	VolumeRatio float64
	VIX         *float64
}

// Ranges holds the scoring cutoffs for each indicator.
type Ranges struct {
	PEGRatio        [3]float64
	OperatingMargin [2]float64
	FCFMargin       [2]float64
	RevenueGrowth   [2]float64
	FCFGrowth       [2]float64
	DebtToEquity    [3]float64
	RSI             [3]float64
	VolumeRatio     [2]float64
	VIX             [3]float64
}

// Thresholds maps the 50-point total onto a recommendation.
type Thresholds struct {
	StrongBuy int
	Buy       int
	Hold      int
	WeakSell  int
}

// MaxScore is the highest achievable total across the ten indicators.
const MaxScore = 50

// DefaultRanges returns the tuned cutoffs the strategy ships with.
func DefaultRanges() Ranges {
	return Ranges{
		PEGRatio:        [3]float64{1.5, 2.5, 3.5},
		OperatingMargin: [2]float64{0.01, 0.10},
		FCFMargin:       [2]float64{0.02, 0.10},
		RevenueGrowth:   [2]float64{3, 10},
		FCFGrowth:       [2]float64{0, 10},
		DebtToEquity:    [3]float64{0.5, 1.5, 2.5},
		RSI:             [3]float64{35, 55, 70},
		VolumeRatio:     [2]float64{1.05, 1.20},
		VIX:             [3]float64{20, 28, 35},
	}
}

// DefaultThresholds returns the standard recommendation cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{StrongBuy: 38, Buy: 28, Hold: 18, WeakSell: 8}
}

// Scorer rates indicators against a fixed set of ranges.
type Scorer struct {
	ranges     Ranges
	thresholds Thresholds
}

func NewScorer(ranges Ranges, thresholds Thresholds) *Scorer {
	return &Scorer{ranges: ranges, thresholds: thresholds}
}

// IndicatorScore is one rated indicator.
type IndicatorScore struct {
	Name  string
	Score int
}

// Report is a complete ten-indicator analysis.
type Report struct {
	Scores         []IndicatorScore
	TotalScore     int
	Percentage     float64
	Recommendation string
}

// Evaluate rates all ten indicators and derives the recommendation.
func (s *Scorer) Evaluate(f Fundamentals, t Technicals) Report {
	scores := []IndicatorScore{
		{"PEG Ratio", s.ScorePEGRatio(f.PEGRatio)},
		{"Operating Margin", s.ScoreOperatingMargin(f.OperatingMargin)},
		{"Free Cash Flow", s.ScoreFreeCashFlow(f.FreeCashFlow, f.Revenue)},
		{"Revenue Growth", s.ScoreRevenueGrowth(f.RevenueGrowth)},
		{"FCF Growth", s.ScoreFCFGrowth(f.FCFGrowth)},
		{"Debt-to-Equity", s.ScoreDebtToEquity(f.DebtToEquity)},
		{"Trend", s.ScoreTrend(t.Price, t.ShortMA, t.LongMA)},
		{"Momentum (RSI)", s.ScoreRSI(t.RSI)},
		{"Volume", s.ScoreVolume(t.VolumeRatio)},
		{"VIX Filter", s.ScoreVIX(t.VIX)},
	}

	total := 0
	for _, sc := range scores {
		total += sc.Score
	}

	return Report{
		Scores:         scores,
		TotalScore:     total,
		Percentage:     float64(total) / MaxScore * 100,
		Recommendation: s.Recommendation(total),
	}
}

// Recommendation maps a total score onto the discrete call.
func (s *Scorer) Recommendation(total int) string {
	switch {
	case total >= s.thresholds.StrongBuy:
		return "STRONG BUY"
	case total >= s.thresholds.Buy:
		return "BUY"
	case total >= s.thresholds.Hold:
		return "HOLD"
	case total >= s.thresholds.WeakSell:
		return "WEAK SELL"
	default:
		return "AVOID"
	}
}

// ScorePEGRatio rates the PEG ratio, lower is better.
func (s *Scorer) ScorePEGRatio(peg *float64) int {
	if peg == nil || *peg <= 0 {
		return 2 // benefit of the doubt when missing
	}
	switch {
	case *peg <= s.ranges.PEGRatio[0]:
		return 5
	case *peg <= s.ranges.PEGRatio[1]:
		return 4
	case *peg <= s.ranges.PEGRatio[2]:
		return 3
	default:
		return 1
	}
}

// ScoreOperatingMargin rates operating margin, higher is better.
func (s *Scorer) ScoreOperatingMargin(margin *float64) int {
	if margin == nil || *margin < 0 {
		return 1
	}
	switch {
	case *margin > s.ranges.OperatingMargin[1]:
		return 5
	case *margin > s.ranges.OperatingMargin[0]:
		return 3
	default:
		return 1
	}
}

// ScoreFreeCashFlow rates FCF as a margin of revenue.
func (s *Scorer) ScoreFreeCashFlow(fcf, revenue *float64) int {
	if fcf == nil || revenue == nil || *revenue == 0 {
		return 2
	}
	margin := *fcf / *revenue
	switch {
	case margin < 0:
		return 1
	case margin > s.ranges.FCFMargin[1]:
		return 5
	case margin > s.ranges.FCFMargin[0]:
		return 3
	case margin > 0:
		return 2
	default:
		return 1
	}
}

// ScoreRevenueGrowth rates YoY revenue growth in percent.
func (s *Scorer) ScoreRevenueGrowth(growth *float64) int {
	if growth == nil {
		return 2
	}
	switch {
	case *growth < 0:
		return 1
	case *growth > s.ranges.RevenueGrowth[1]:
		return 5
	case *growth > s.ranges.RevenueGrowth[0]:
		return 3
	case *growth > 0:
		return 2
	default:
		return 1
	}
}

// ScoreFCFGrowth rates YoY free-cash-flow growth in percent.
func (s *Scorer) ScoreFCFGrowth(growth *float64) int {
	if growth == nil {
		return 2
	}
	switch {
	case *growth < 0:
		return 1
	case *growth > s.ranges.FCFGrowth[1]:
		return 5
	case *growth > s.ranges.FCFGrowth[0]:
		return 3
	default:
		return 1
	}
}

// ScoreDebtToEquity rates leverage, lower is better.
func (s *Scorer) ScoreDebtToEquity(de *float64) int {
	if de == nil || *de < 0 {
		return 2
	}
	switch {
	case *de < s.ranges.DebtToEquity[0]:
		return 5
	case *de < s.ranges.DebtToEquity[1]:
		return 4
	case *de < s.ranges.DebtToEquity[2]:
		return 3
	default:
		return 1
	}
}

// ScoreTrend rates the price position relative to both moving averages.
func (s *Scorer) ScoreTrend(price, shortMA, longMA float64) int {
	if types.Undefined(price) || types.Undefined(shortMA) || types.Undefined(longMA) {
		return 2
	}
	switch {
	case price > longMA && price > shortMA:
		return 5 // strong uptrend
	case price > shortMA && price > longMA*0.98:
		return 4 // uptrend, close to the long MA
	case price > shortMA:
		return 3 // recovering
	case price > longMA:
		return 2 // mixed
	default:
		return 1 // downtrend
	}
}

// ScoreRSI rates momentum; the 35-55 zone is ideal.
func (s *Scorer) ScoreRSI(rsi float64) int {
	if types.Undefined(rsi) {
		return 2
	}
	switch {
	case rsi < s.ranges.RSI[0]:
		return 4 // oversold, building
	case rsi < s.ranges.RSI[1]:
		return 5 // good zone
	case rsi < s.ranges.RSI[2]:
		return 3 // getting hot
	default:
		return 1 // overbought
	}
}

// ScoreVolume rates volume relative to its trailing average.
func (s *Scorer) ScoreVolume(ratio float64) int {
	if types.Undefined(ratio) {
		return 2
	}
	switch {
	case ratio > s.ranges.VolumeRatio[1]:
		return 5
	case ratio > s.ranges.VolumeRatio[0]:
		return 3
	case ratio > 0.8:
		return 2
	default:
		return 1
	}
}

// ScoreVIX rates the market-volatility regime, lower is better.
func (s *Scorer) ScoreVIX(vix *float64) int {
	if vix == nil {
		return 3
	}
	switch {
	case *vix < s.ranges.VIX[0]:
		return 5
	case *vix < s.ranges.VIX[1]:
		return 4
	case *vix < s.ranges.VIX[2]:
		return 2
	default:
		return 1
	}
}
