package types

import (
	"math"
	"time"
)

const (
	BUY  Signal = "BUY"
	HOLD Signal = "HOLD"
	SELL Signal = "SELL"
)

// Signal is the per-bar trading decision.
type Signal string

// Bar is a single trading day of price data. Bars are immutable once
// loaded and must be strictly increasing by date.
type Bar struct {
	Date   time.Time
	Close  float64
	Volume float64
}

// Snapshot holds the derived indicator values for one bar. A field is
// NaN while its lookback window has not filled yet.
type Snapshot struct {
	ShortMA     float64
	LongMA      float64
	RSI         float64
	VolumeRatio float64
}

// Undefined reports whether an indicator value is missing for this bar.
func Undefined(v float64) bool {
	return math.IsNaN(v)
}
