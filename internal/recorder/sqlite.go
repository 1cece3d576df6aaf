package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"TrendBoard/internal/model"
)

// SQLiteRecorder persists cycle results to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the service writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trend_results (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			view          TEXT NOT NULL,
			asset         TEXT NOT NULL,
			chain         TEXT,
			symbol        TEXT,
			quote         TEXT,
			venue         TEXT,
			price         REAL,
			ema8          REAL,
			ema20         REAL,
			uptrend       INTEGER,
			derived       INTEGER,
			change_7d     REAL,
			change_14d    REAL,
			error         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_ts ON trend_results(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_results_asset ON trend_results(asset, quote)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordCycle stores one row per (asset, quote) result in the report.
func (r *SQLiteRecorder) RecordCycle(report *model.AnalysisReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO trend_results
		(timestamp, view, asset, chain, symbol, quote, venue,
		 price, ema8, ema20, uptrend, derived, change_7d, change_14d, error)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	ts := report.GeneratedAt.Unix()
	views := []struct {
		name    string
		entries []model.AssetAnalysis
	}{
		{"portfolio", report.Portfolio},
		{"watchlist", report.Watchlist},
	}
	for _, v := range views {
		for _, e := range v.entries {
			for _, res := range []*model.TrendResult{e.USD, e.BTC} {
				if res == nil {
					continue
				}
				if _, err := stmt.Exec(
					ts, v.name, e.Asset, e.Chain, res.Symbol, res.QuoteCurrency, res.Exchange,
					res.CurrentPrice, res.EMA8, res.EMA20,
					boolInt(res.IsUptrend), boolInt(res.IsCalculated),
					floatOrNil(res.Change7D), floatOrNil(res.Change14D), res.Err,
				); err != nil {
					return fmt.Errorf("insert %s/%s: %w", e.Asset, res.QuoteCurrency, err)
				}
			}
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func floatOrNil(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
