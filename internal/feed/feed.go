// Package feed turns raw price history into the per-bar indicator
// snapshots the signal generator consumes. Bars come from an offline
// CSV file; live retrieval is a separate concern and not handled here.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/salvarez/backtrade/internal/indicator"
	"github.com/salvarez/backtrade/internal/types"
)

// Periods holds the indicator lookback windows.
type Periods struct {
	ShortMA int
	LongMA  int
	RSI     int
	Volume  int
}

// DefaultPeriods returns the standard lookback windows (MA50, MA200,
// RSI14, 20-bar volume average).
func DefaultPeriods() Periods {
	return Periods{
		ShortMA: 50,
		LongMA:  200,
		RSI:     14,
		Volume:  20,
	}
}

// BuildSnapshots derives one indicator snapshot per input bar. Fields
// are NaN until the corresponding lookback window has filled.
func BuildSnapshots(bars []types.Bar, p Periods) []types.Snapshot {
	closes := make([]float64, len(bars))
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	shortMA := indicator.SMA(closes, p.ShortMA)
	longMA := indicator.SMA(closes, p.LongMA)
	rsi := indicator.RSI(closes, p.RSI)
	volRatio := indicator.VolumeRatio(volumes, p.Volume)

	snapshots := make([]types.Snapshot, len(bars))
	for i := range bars {
		snapshots[i] = types.Snapshot{
			ShortMA:     shortMA[i],
			LongMA:      longMA[i],
			RSI:         rsi[i],
			VolumeRatio: volRatio[i],
		}
	}
	return snapshots
}

// LoadCSV reads bars from a CSV file with a "date,close,volume" header.
// Dates use the 2006-01-02 layout and must already be in order.
func LoadCSV(path string) ([]types.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bar file: %w", err)
	}
	defer f.Close()

	return ReadBars(f)
}

// ReadBars parses CSV bar data from any reader.
func ReadBars(r io.Reader) ([]types.Bar, error) {
	cr := csv.NewReader(r)

	// header
	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var bars []types.Bar
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read bar record: %w", err)
		}
		line++
		if len(rec) < 3 {
			return nil, fmt.Errorf("line %d: expected date,close,volume", line)
		}

		date, err := time.Parse("2006-01-02", rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: parse date %q: %w", line, rec[0], err)
		}
		close, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse close %q: %w", line, rec[1], err)
		}
		volume, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse volume %q: %w", line, rec[2], err)
		}

		bars = append(bars, types.Bar{Date: date, Close: close, Volume: volume})
	}
	return bars, nil
}
