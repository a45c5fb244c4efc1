package recorder

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/salvarez/backtrade/internal/backtest"
)

// SQLiteRecorder persists backtest runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so readers don't block a recording run.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Info("sqlite recorder opened", "path", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS backtest_runs (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			ticker           TEXT NOT NULL,
			initial_capital  REAL,
			final_cash       REAL,
			total_return     REAL,
			cagr             REAL,
			sharpe_ratio     REAL,
			sortino_ratio    REAL,
			max_drawdown     REAL,
			win_rate         REAL,
			num_trades       INTEGER,
			stop_loss_count  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON backtest_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS backtest_trades (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      INTEGER NOT NULL,
			entry_date  TEXT,
			entry_price REAL,
			exit_date   TEXT,
			exit_price  REAL,
			shares      REAL,
			profit      REAL,
			profit_pct  REAL,
			exit_reason TEXT,
			FOREIGN KEY(run_id) REFERENCES backtest_runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_run ON backtest_trades(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores the run summary and its full trade ledger.
func (r *SQLiteRecorder) RecordRun(res *backtest.Result) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var cagr, totalReturn, sharpe, sortino, maxDD, winRate float64
	var numTrades, stopLossCount int
	if m := res.Metrics; m != nil {
		totalReturn = m.TotalReturn
		if m.CAGRValid {
			cagr = m.CAGR
		}
		sharpe = m.SharpeRatio
		sortino = m.SortinoRatio
		maxDD = m.MaxDrawdown
		winRate = m.WinRate
		numTrades = m.NumTrades
		stopLossCount = m.StopLossCount
	}

	result, err := tx.Exec(`INSERT INTO backtest_runs
		(timestamp, ticker, initial_capital, final_cash, total_return, cagr,
		 sharpe_ratio, sortino_ratio, max_drawdown, win_rate, num_trades, stop_loss_count)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), res.Ticker, res.InitialCapital, res.FinalCash,
		totalReturn, cagr, sharpe, sortino, maxDD, winRate, numTrades, stopLossCount,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	for _, t := range res.Trades {
		if _, err := tx.Exec(`INSERT INTO backtest_trades
			(run_id, entry_date, entry_price, exit_date, exit_price, shares, profit, profit_pct, exit_reason)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			runID, t.EntryDate.Format("2006-01-02"), t.EntryPrice,
			t.ExitDate.Format("2006-01-02"), t.ExitPrice,
			t.Shares, t.Profit, t.ProfitPct, t.ExitReason,
		); err != nil {
			return 0, fmt.Errorf("insert trade: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

func (r *SQLiteRecorder) Close() error {
	slog.Info("closing sqlite recorder")
	return r.db.Close()
}
