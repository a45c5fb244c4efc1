package indicator

import (
	"math"

	"github.com/salvarez/backtrade/internal/logging"
)

var rsiLog = logging.New("rsi")

// SMA computes the simple moving average over a rolling window.
// The first period-1 entries are NaN while the window fills.
func SMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// RSI computes the Relative Strength Index using rolling-mean gains and
// losses over the window. The first `period` entries are NaN (the first
// price change only exists from the second bar).
//
// A window with zero average loss reports 100. A window with no price
// movement at all has no meaningful RS and stays NaN.
func RSI(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}

	for i := period; i < len(closes); i++ {
		var avgGain, avgLoss float64
		for j := i - period + 1; j <= i; j++ {
			change := closes[j] - closes[j-1]
			if change > 0 {
				avgGain += change
			} else {
				avgLoss -= change
			}
		}
		avgGain /= float64(period)
		avgLoss /= float64(period)

		switch {
		case avgGain == 0 && avgLoss == 0:
			// flat window, leave NaN
		case avgLoss == 0:
			out[i] = 100.0
		default:
			rs := avgGain / avgLoss
			out[i] = 100.0 - 100.0/(1.0+rs)
		}

		rsiLog.Debug("RSI computed", "index", i, "avgGain", avgGain, "avgLoss", avgLoss, "value", out[i])
	}
	return out
}

// VolumeRatio divides each bar's volume by its trailing average volume.
// NaN until the window fills or when the average is zero.
func VolumeRatio(volumes []float64, period int) []float64 {
	out := nanSlice(len(volumes))
	avg := SMA(volumes, period)
	for i := range volumes {
		if !math.IsNaN(avg[i]) && avg[i] != 0 {
			out[i] = volumes[i] / avg[i]
		}
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
