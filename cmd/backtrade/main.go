package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/salvarez/backtrade/internal/backtest"
	"github.com/salvarez/backtrade/internal/config"
	"github.com/salvarez/backtrade/internal/export"
	"github.com/salvarez/backtrade/internal/feed"
	"github.com/salvarez/backtrade/internal/recorder"
	"github.com/salvarez/backtrade/internal/types"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid config", "error", err)
		os.Exit(1)
	}

	bars, err := feed.LoadCSV(cfg.Data.BarsCSV)
	if err != nil {
		slog.Error("Failed to load bar data", "error", err)
		os.Exit(1)
	}

	simCfg := backtest.Config{
		Ticker:            cfg.Ticker,
		InitialCapital:    cfg.InitialCapital,
		StopLossPct:       cfg.StopLossPct,
		MaxPositionPct:    cfg.MaxPositionPct,
		DailyLossLimitPct: cfg.DailyLossLimitPct,
	}

	if cfg.StartDate != "" || cfg.EndDate != "" {
		start, end, err := cfg.DateRange()
		if err != nil {
			slog.Error("Invalid date range", "error", err)
			os.Exit(1)
		}
		bars = sliceRange(bars, start, end)
		simCfg.StartDate = start
		simCfg.EndDate = end
	} else if len(bars) > 0 {
		simCfg.StartDate = bars[0].Date
		simCfg.EndDate = bars[len(bars)-1].Date
	}

	slog.Info("Loaded bars", "ticker", cfg.Ticker, "count", len(bars))

	snapshots := feed.BuildSnapshots(bars, cfg.Periods())

	sim := backtest.NewSimulator(simCfg)
	res, err := sim.Run(bars, snapshots)
	if err != nil {
		slog.Error("Backtest failed", "error", err)
		os.Exit(1)
	}

	if res.Metrics == nil {
		fmt.Println("\nNo trades were executed!")
		fmt.Println("The strategy may be too conservative or the history too short.")
		return
	}

	res.Metrics.Print()

	fmt.Println()
	res.PrintTradesBetween(len(res.Trades)-5, len(res.Trades))

	var rec recorder.Recorder = recorder.NewNoop()
	if cfg.Database.SQLitePath != "" {
		sqlRec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			slog.Error("Failed to open recorder", "error", err)
			os.Exit(1)
		}
		rec = sqlRec
	}
	defer rec.Close()

	runID, err := rec.RecordRun(res)
	if err != nil {
		slog.Error("Failed to record run", "error", err)
	} else if runID > 0 {
		slog.Info("Recorded run", "run_id", runID)
	}

	if cfg.Export.TradesCSV != "" {
		if err := export.WriteTradesCSV(res.Trades, cfg.Export.TradesCSV); err != nil {
			slog.Error("Failed to export trades", "error", err)
		}
	}
	if cfg.Export.EquityCSV != "" {
		if err := export.WriteEquityCSV(res.EquityCurve, cfg.Export.EquityCSV); err != nil {
			slog.Error("Failed to export equity curve", "error", err)
		}
	}
}

// sliceRange keeps the bars inside [start, end] inclusive.
func sliceRange(bars []types.Bar, start, end time.Time) []types.Bar {
	var out []types.Bar
	for _, b := range bars {
		if b.Date.Before(start) || b.Date.After(end) {
			continue
		}
		out = append(out, b)
	}
	return out
}
