package feed

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salvarez/backtrade/internal/types"
)

func TestBuildSnapshots_WindowAlignment(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, 6)
	for i := range bars {
		bars[i] = types.Bar{
			Date:   base.AddDate(0, 0, i),
			Close:  100 + float64(i),
			Volume: 1000,
		}
	}

	p := Periods{ShortMA: 2, LongMA: 4, RSI: 2, Volume: 2}
	snaps := BuildSnapshots(bars, p)

	assert.Equal(t, len(bars), len(snaps))

	assert.True(t, math.IsNaN(snaps[0].ShortMA))
	assert.InDelta(t, 100.5, snaps[1].ShortMA, 1e-9)

	assert.True(t, math.IsNaN(snaps[2].LongMA))
	assert.InDelta(t, 101.5, snaps[3].LongMA, 1e-9)

	assert.True(t, math.IsNaN(snaps[1].RSI), "RSI needs period+1 bars")
	assert.InDelta(t, 100.0, snaps[2].RSI, 1e-9, "Monotonic rise pins RSI at 100")

	assert.InDelta(t, 1.0, snaps[1].VolumeRatio, 1e-9)
}

func TestDefaultPeriods(t *testing.T) {
	p := DefaultPeriods()
	assert.Equal(t, 50, p.ShortMA)
	assert.Equal(t, 200, p.LongMA)
	assert.Equal(t, 14, p.RSI)
	assert.Equal(t, 20, p.Volume)
}

func TestReadBars(t *testing.T) {
	csv := `date,close,volume
2024-01-02,150.25,120000
2024-01-03,151.10,98000
`
	bars, err := ReadBars(strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, 2, len(bars))
	assert.Equal(t, 150.25, bars[0].Close)
	assert.Equal(t, 98000.0, bars[1].Volume)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), bars[1].Date)
}

func TestReadBars_BadData(t *testing.T) {
	_, err := ReadBars(strings.NewReader("date,close,volume\nnot-a-date,1,2\n"))
	assert.ErrorContains(t, err, "parse date")

	_, err = ReadBars(strings.NewReader("date,close,volume\n2024-01-02,abc,2\n"))
	assert.ErrorContains(t, err, "parse close")

	_, err = ReadBars(strings.NewReader("date,close,volume\n2024-01-02,1,xyz\n"))
	assert.ErrorContains(t, err, "parse volume")

	_, err = ReadBars(strings.NewReader(""))
	assert.ErrorContains(t, err, "read header")
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV("/nonexistent/bars.csv")
	assert.ErrorContains(t, err, "open bar file")
}
