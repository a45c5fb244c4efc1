package recorder

import "github.com/salvarez/backtrade/internal/backtest"

// Noop discards everything. Used when no database is configured.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) RecordRun(res *backtest.Result) (int64, error) { return 0, nil }

func (n *Noop) Close() error { return nil }
