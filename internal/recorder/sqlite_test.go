package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"TrendBoard/internal/model"
)

func TestSQLiteRecorder_RecordCycle(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "trends.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	defer r.Close()

	change := 10.0
	report := &model.AnalysisReport{
		GeneratedAt: time.Now(),
		Portfolio: []model.AssetAnalysis{
			{
				Asset: "BTC",
				USD: &model.TrendResult{
					Symbol: "BTC-USD", CurrentPrice: 65000, EMA8: 64000, EMA20: 63000,
					IsUptrend: true, TrendText: "Uptrend", QuoteCurrency: "USD",
					Exchange: "coinbase", Change7D: &change,
				},
				BTC: &model.TrendResult{Symbol: "BTC/BTC", QuoteCurrency: "BTC", Err: "Same asset"},
			},
		},
		Watchlist: []model.AssetAnalysis{
			{
				Asset: "TIG", Chain: "base",
				USD: &model.TrendResult{Symbol: "TIG/USD", Err: "connect xt: unreachable"},
			},
		},
	}

	if err := r.RecordCycle(report); err != nil {
		t.Fatalf("RecordCycle: %v", err)
	}

	var rows int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM trend_results`).Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 3 {
		t.Errorf("rows = %d, want 3", rows)
	}

	var price float64
	var errStr string
	err = r.db.QueryRow(`SELECT price, error FROM trend_results WHERE asset = 'TIG'`).Scan(&price, &errStr)
	if err != nil {
		t.Fatal(err)
	}
	if price != 0 || errStr == "" {
		t.Errorf("TIG row: price=%v error=%q", price, errStr)
	}
}
