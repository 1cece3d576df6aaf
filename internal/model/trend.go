package model

import "time"

// TrendResult holds the computed trend analysis for one asset in one quote
// currency. A result is never mutated after construction; each cycle builds
// fresh instances.
type TrendResult struct {
	Symbol        string   `json:"symbol"`
	CurrentPrice  float64  `json:"current_price,omitempty"`
	EMA8          float64  `json:"ema8,omitempty"`
	EMA20         float64  `json:"ema20,omitempty"`
	IsUptrend     bool     `json:"is_uptrend"`
	TrendText     string   `json:"trend_text,omitempty"`
	QuoteCurrency string   `json:"quote_currency,omitempty"`
	Chain         string   `json:"chain,omitempty"`
	Exchange      string   `json:"exchange,omitempty"`
	IsCalculated  bool     `json:"is_calculated"`
	Change7D      *float64 `json:"change_7d,omitempty"`
	Change14D     *float64 `json:"change_14d,omitempty"`
	Err           string   `json:"error,omitempty"`
}

// OK reports whether the result carries computed fields rather than an error.
func (r *TrendResult) OK() bool { return r != nil && r.Err == "" }

// AssetAnalysis pairs an asset's dollar-quoted result (USD or USDT depending
// on venue) with its BTC-quoted result.
type AssetAnalysis struct {
	Asset string       `json:"asset"`
	Chain string       `json:"chain,omitempty"`
	USD   *TrendResult `json:"usd"`
	BTC   *TrendResult `json:"btc"`
}

// AnalysisReport is the output of one full analysis cycle.
type AnalysisReport struct {
	Portfolio   []AssetAnalysis `json:"portfolio"`
	Watchlist   []AssetAnalysis `json:"watchlist"`
	GeneratedAt time.Time       `json:"generated_at"`
}
