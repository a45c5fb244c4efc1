package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salvarez/backtrade/internal/types"
)

func bar(close float64) types.Bar {
	return types.Bar{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: close, Volume: 1000}
}

func TestGenerate_UndefinedLongMAForcesHold(t *testing.T) {
	// Even a perfect setup elsewhere cannot trade without the long MA.
	snap := types.Snapshot{ShortMA: 90, LongMA: math.NaN(), RSI: 50, VolumeRatio: 1.5}
	assert.Equal(t, types.HOLD, Generate(bar(100), snap, DefaultThresholds()))
}

func TestGenerate_Scoring(t *testing.T) {
	tests := []struct {
		name string
		bar  types.Bar
		snap types.Snapshot
		want types.Signal
	}{
		{
			name: "max score is BUY",
			bar:  bar(100),
			snap: types.Snapshot{ShortMA: 90, LongMA: 95, RSI: 50, VolumeRatio: 1.5},
			want: types.BUY, // 3 + 2 + 1
		},
		{
			name: "trend plus momentum without volume is BUY",
			bar:  bar(100),
			snap: types.Snapshot{ShortMA: 90, LongMA: 95, RSI: 50, VolumeRatio: 1.0},
			want: types.BUY, // 3 + 2
		},
		{
			name: "above short MA only is HOLD",
			bar:  bar(100),
			snap: types.Snapshot{ShortMA: 95, LongMA: 105, RSI: 50, VolumeRatio: 0.5},
			want: types.HOLD, // 2 + 2
		},
		{
			name: "above long MA only with oversold RSI is SELL",
			bar:  bar(100),
			snap: types.Snapshot{ShortMA: 105, LongMA: 95, RSI: 25, VolumeRatio: 0.5},
			want: types.SELL, // 1 + 1
		},
		{
			name: "overbought RSI contributes nothing",
			bar:  bar(100),
			snap: types.Snapshot{ShortMA: 90, LongMA: 95, RSI: 75, VolumeRatio: 1.0},
			want: types.HOLD, // 3 + 0
		},
		{
			name: "undefined RSI contributes nothing",
			bar:  bar(100),
			snap: types.Snapshot{ShortMA: 90, LongMA: 95, RSI: math.NaN(), VolumeRatio: 1.0},
			want: types.HOLD, // 3 + 0
		},
		{
			name: "downtrend is SELL",
			bar:  bar(100),
			snap: types.Snapshot{ShortMA: 110, LongMA: 120, RSI: 80, VolumeRatio: 0.5},
			want: types.SELL, // 0
		},
		{
			name: "volume alone cannot rescue a weak bar",
			bar:  bar(100),
			snap: types.Snapshot{ShortMA: 110, LongMA: 120, RSI: 80, VolumeRatio: 2.0},
			want: types.SELL, // 0 + 0 + 1
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.bar, tt.snap, DefaultThresholds()))
		})
	}
}

func TestGenerate_CustomThresholds(t *testing.T) {
	// Lowering the BUY cutoff turns a default HOLD into a BUY.
	snap := types.Snapshot{ShortMA: 90, LongMA: 95, RSI: 75, VolumeRatio: 1.5}
	th := Thresholds{BuyScore: 4, HoldScore: 2}

	assert.Equal(t, types.BUY, Generate(bar(100), snap, th)) // score 4
	assert.Equal(t, types.HOLD, Generate(bar(100), snap, DefaultThresholds()))
}
