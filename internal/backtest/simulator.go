// Package backtest replays the signal strategy over historical bars
// with stop-loss, position-sizing and daily-loss risk controls, then
// computes performance metrics over the resulting trade ledger.
package backtest

import (
	"fmt"
	"time"

	"github.com/salvarez/backtrade/internal/logging"
	"github.com/salvarez/backtrade/internal/strategy"
	"github.com/salvarez/backtrade/internal/types"
)

const (
	ExitSignal      = "SIGNAL"
	ExitStopLoss    = "STOP-LOSS"
	ExitEndOfPeriod = "END_OF_PERIOD"
)

var simLog = logging.New("sim")

// Config holds the caller-supplied backtest parameters. Zero-valued
// fields fall back to the defaults the strategy was designed around.
type Config struct {
	Ticker    string
	StartDate time.Time
	EndDate   time.Time

	InitialCapital float64 // default 10000

	// Risk controls
	StopLossPct       float64 // max loss per trade before forced exit, default 0.07
	MaxPositionPct    float64 // fraction of cash invested per entry, default 1.0
	DailyLossLimitPct float64 // circuit breaker threshold, default 0.10

	Thresholds strategy.Thresholds
}

func (c *Config) applyDefaults() {
	if c.InitialCapital <= 0 {
		c.InitialCapital = 10000
	}
	if c.StopLossPct <= 0 {
		c.StopLossPct = 0.07
	}
	if c.MaxPositionPct <= 0 || c.MaxPositionPct > 1 {
		c.MaxPositionPct = 1.0
	}
	if c.DailyLossLimitPct <= 0 {
		c.DailyLossLimitPct = 0.10
	}
	if c.Thresholds == (strategy.Thresholds{}) {
		c.Thresholds = strategy.DefaultThresholds()
	}
}

// Trade is a closed position. The ledger is append-only.
type Trade struct {
	EntryDate  time.Time
	EntryPrice float64
	ExitDate   time.Time
	ExitPrice  float64
	Shares     float64
	Profit     float64
	ProfitPct  float64
	ExitReason string
}

// EquityPoint records account equity at one bar, alongside the signal
// the strategy emitted for that bar (before any stop-loss override).
type EquityPoint struct {
	Date   time.Time
	Equity float64
	Signal types.Signal
}

// Result is the completed backtest output.
type Result struct {
	Ticker         string
	InitialCapital float64
	FinalCash      float64
	TradingHalted  bool
	Trades         []Trade
	EquityCurve    []EquityPoint
	Metrics        *Metrics
}

// position is the single open holding. At most one exists at a time.
type position struct {
	entryDate  time.Time
	entryPrice float64
	shares     float64
}

// Simulator runs the strategy over a bar sequence. A run is a pure
// function of (bars, snapshots, config): identical inputs produce an
// identical ledger and metrics.
type Simulator struct {
	cfg Config
}

func NewSimulator(cfg Config) *Simulator {
	cfg.applyDefaults()
	return &Simulator{cfg: cfg}
}

// Run validates the input series, generates per-bar signals and replays
// them through the risk-managed state machine. Input errors are fatal
// and surface before any simulation state is produced.
func (s *Simulator) Run(bars []types.Bar, snapshots []types.Snapshot) (*Result, error) {
	if err := validateInput(bars, snapshots); err != nil {
		return nil, err
	}

	signals := make([]types.Signal, len(bars))
	for i := range bars {
		signals[i] = strategy.Generate(bars[i], snapshots[i], s.cfg.Thresholds)
	}

	res := s.simulate(bars, signals)
	res.Metrics = calculateMetrics(res, s.cfg)
	return res, nil
}

func validateInput(bars []types.Bar, snapshots []types.Snapshot) error {
	if len(bars) == 0 {
		return fmt.Errorf("no price history")
	}
	if len(snapshots) != len(bars) {
		return fmt.Errorf("snapshot count %d does not match bar count %d", len(snapshots), len(bars))
	}
	for i, b := range bars {
		if b.Close <= 0 {
			return fmt.Errorf("bar %d (%s): non-positive close %v", i, b.Date.Format("2006-01-02"), b.Close)
		}
		if b.Volume < 0 {
			return fmt.Errorf("bar %d (%s): negative volume %v", i, b.Date.Format("2006-01-02"), b.Volume)
		}
		if i > 0 && !b.Date.After(bars[i-1].Date) {
			return fmt.Errorf("bar %d (%s): dates not strictly increasing", i, b.Date.Format("2006-01-02"))
		}
	}
	return nil
}

func (s *Simulator) simulate(bars []types.Bar, signals []types.Signal) *Result {
	cfg := s.cfg

	res := &Result{
		Ticker:         cfg.Ticker,
		InitialCapital: cfg.InitialCapital,
		Trades:         []Trade{},
		EquityCurve:    make([]EquityPoint, 0, len(bars)),
	}

	cash := cfg.InitialCapital
	dailyStartEquity := cfg.InitialCapital
	halted := false
	var pos *position

	simLog.Debug("Starting simulation", "ticker", cfg.Ticker, "initial_capital", cfg.InitialCapital, "bars", len(bars))

	for i, bar := range bars {
		price := bar.Close
		signal := signals[i]

		equity := cash
		if pos != nil {
			equity = cash + pos.shares*price
		}

		// Circuit breaker: halt new entries once the loss against the
		// daily baseline exceeds the limit. The baseline resets only on
		// the halted->active edge, matching the observed behaviour of
		// the strategy on one-bar-per-day data.
		if i > 0 && equity < dailyStartEquity*(1-cfg.DailyLossLimitPct) {
			if !halted {
				halted = true
				simLog.Info("Circuit breaker triggered", "date", bar.Date, "equity", equity, "baseline", dailyStartEquity)
			}
		} else if halted {
			halted = false
			dailyStartEquity = equity
			simLog.Info("Circuit breaker reset", "date", bar.Date, "equity", equity)
		}

		// Equity point carries the pre-override signal.
		res.EquityCurve = append(res.EquityCurve, EquityPoint{Date: bar.Date, Equity: equity, Signal: signal})

		// Stop-loss override on the open position.
		stopLossTriggered := false
		if pos != nil {
			lossPct := (price - pos.entryPrice) / pos.entryPrice
			if lossPct <= -cfg.StopLossPct {
				signal = types.SELL
				stopLossTriggered = true
				simLog.Info("Stop-loss triggered", "date", bar.Date, "loss_pct", lossPct*100)
			}
		}

		if signal == types.BUY && pos == nil && cash > 0 && !halted {
			investment := cash * cfg.MaxPositionPct
			pos = &position{
				entryDate:  bar.Date,
				entryPrice: price,
				shares:     investment / price,
			}
			cash -= investment
			simLog.Debug("Opened position", "date", bar.Date, "price", price, "shares", pos.shares, "investment", investment)
		} else if signal == types.SELL && pos != nil {
			reason := ExitSignal
			if stopLossTriggered {
				reason = ExitStopLoss
			}
			cash = s.closePosition(res, pos, bar.Date, price, cash, reason)
			pos = nil
		}
	}

	// Forced close at the final bar if still holding.
	if pos != nil {
		last := bars[len(bars)-1]
		cash = s.closePosition(res, pos, last.Date, last.Close, cash, ExitEndOfPeriod)
		pos = nil
	}

	res.FinalCash = cash
	res.TradingHalted = halted
	return res
}

func (s *Simulator) closePosition(res *Result, pos *position, date time.Time, price, cash float64, reason string) float64 {
	proceeds := pos.shares * price
	cost := pos.shares * pos.entryPrice
	profit := proceeds - cost

	res.Trades = append(res.Trades, Trade{
		EntryDate:  pos.entryDate,
		EntryPrice: pos.entryPrice,
		ExitDate:   date,
		ExitPrice:  price,
		Shares:     pos.shares,
		Profit:     profit,
		ProfitPct:  profit / cost * 100,
		ExitReason: reason,
	})

	simLog.Debug("Closed position", "date", date, "price", price, "profit", profit, "reason", reason)
	return cash + proceeds
}
