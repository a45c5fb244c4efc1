// Package strategy converts indicator snapshots into trading signals.
package strategy

import (
	"github.com/salvarez/backtrade/internal/logging"
	"github.com/salvarez/backtrade/internal/types"
)

var signalLog = logging.New("signal")

// Thresholds maps the per-bar score onto a signal. The score ranges
// 0..6: trend contributes 0-3, momentum 0-2, volume 0-1.
type Thresholds struct {
	BuyScore  int // score >= BuyScore emits BUY
	HoldScore int // score >= HoldScore emits HOLD, anything below SELL
}

// DefaultThresholds returns the standard cutoffs (BUY at 5, HOLD at 3).
func DefaultThresholds() Thresholds {
	return Thresholds{BuyScore: 5, HoldScore: 3}
}

// Generate scores a single bar and returns its signal. Pure function of
// the bar and its snapshot, no lookahead.
//
// A bar without a long MA (insufficient history) is always HOLD: the
// strategy refuses to trade without a long-term trend reference.
func Generate(bar types.Bar, snap types.Snapshot, th Thresholds) types.Signal {
	if types.Undefined(snap.LongMA) {
		return types.HOLD
	}

	score := scoreBar(bar, snap)

	signalLog.Debug("Scored bar", "date", bar.Date, "close", bar.Close, "score", score)

	switch {
	case score >= th.BuyScore:
		return types.BUY
	case score >= th.HoldScore:
		return types.HOLD
	default:
		return types.SELL
	}
}

func scoreBar(bar types.Bar, snap types.Snapshot) int {
	score := 0
	price := bar.Close

	// Trend (0-3 points)
	switch {
	case price > snap.ShortMA && price > snap.LongMA:
		score += 3 // strong uptrend
	case price > snap.ShortMA:
		score += 2 // uptrend
	case price > snap.LongMA:
		score += 1 // weak uptrend
	}

	// Momentum (0-2 points)
	if !types.Undefined(snap.RSI) {
		if snap.RSI > 30 && snap.RSI < 70 {
			score += 2 // healthy range
		} else if snap.RSI < 30 {
			score += 1 // oversold, potential bounce
		}
	}

	// Volume confirmation (0-1 point)
	if !types.Undefined(snap.VolumeRatio) && snap.VolumeRatio > 1.0 {
		score++
	}

	return score
}
