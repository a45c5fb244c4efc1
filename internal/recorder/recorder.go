package recorder

import "github.com/salvarez/backtrade/internal/backtest"

// Recorder persists completed backtest runs for later analysis.
type Recorder interface {
	// RecordRun stores a finished result and returns its run id.
	RecordRun(res *backtest.Result) (int64, error)
	Close() error
}
