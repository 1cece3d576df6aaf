package analyzer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"TrendBoard/internal/cache"
	"TrendBoard/internal/exchange"
	"TrendBoard/internal/model"
	"TrendBoard/internal/resolver"
)

type fakeConnector struct {
	attempts []string
	venues   map[string]exchange.Venue // missing id => connect failure
}

func (f *fakeConnector) Connect(venueID string) (exchange.Venue, error) {
	f.attempts = append(f.attempts, venueID)
	v, ok := f.venues[venueID]
	if !ok {
		return nil, &exchange.ConnectError{Venue: venueID, Err: errors.New("unreachable")}
	}
	return v, nil
}

func candlesFromCloses(closes ...float64) []model.Candle {
	candles := make([]model.Candle, len(closes))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		candles[i] = model.Candle{Time: base.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1}
	}
	return candles
}

func newTestCache() *cache.Cache {
	return cache.New(time.Hour, time.Hour, 64, 0)
}

func TestAnalyze_FallbackOrder(t *testing.T) {
	// kucoin and gate are down; mexc lists NATIX.
	conn := &fakeConnector{venues: map[string]exchange.Venue{
		"mexc": &exchange.MockVenue{Name: "mexc", Candles: candlesFromCloses(1, 2, 3, 4, 5, 6, 7, 8)},
	}}
	a := New(conn, newTestCache())

	res := a.Analyze(model.AssetSpec{Symbol: "NATIX"}, "USD")
	if !res.OK() {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if res.Exchange != "mexc" {
		t.Errorf("exchange = %s, want mexc", res.Exchange)
	}
	want := []string{"kucoin", "gate", "mexc"}
	if len(conn.attempts) != 3 {
		t.Fatalf("attempts = %v, want %v", conn.attempts, want)
	}
	for i, v := range want {
		if conn.attempts[i] != v {
			t.Fatalf("attempts = %v, want %v", conn.attempts, want)
		}
	}

	// Within the TTL window nothing is retried, including the failures.
	a.Analyze(model.AssetSpec{Symbol: "NATIX"}, "USD")
	if len(conn.attempts) != 3 {
		t.Errorf("failed venues were retried: attempts = %v", conn.attempts)
	}
}

func TestAnalyze_AllVenuesFail(t *testing.T) {
	conn := &fakeConnector{venues: map[string]exchange.Venue{}}
	a := New(conn, newTestCache())

	res := a.Analyze(model.AssetSpec{Symbol: "FAI"}, "USD")
	if res.OK() {
		t.Fatal("expected an error result")
	}
	if res.Err == "" {
		t.Error("error string should be populated")
	}
	if res.CurrentPrice != 0 {
		t.Errorf("current price should stay unset, got %v", res.CurrentPrice)
	}
	if res.Exchange != "bingx" {
		t.Errorf("exchange = %s, want last attempted venue bingx", res.Exchange)
	}
	if !strings.Contains(res.Err, "all venues failed") {
		t.Errorf("err = %q", res.Err)
	}
}

func TestAnalyze_DerivedCrossRate(t *testing.T) {
	conn := &fakeConnector{venues: map[string]exchange.Venue{
		"kucoin":   &exchange.MockVenue{Name: "kucoin", Candles: candlesFromCloses(2, 2, 2, 2, 2, 2, 2, 2)},
		"coinbase": &exchange.MockVenue{Name: "coinbase", Candles: candlesFromCloses(40000, 40000, 40000, 40000, 40000, 40000, 40000, 40000)},
	}}
	a := New(conn, newTestCache())

	res := a.Analyze(model.AssetSpec{Symbol: "NATIX"}, resolver.QuoteBTC)
	if !res.OK() {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if !res.IsCalculated {
		t.Error("cross-rate result should be flagged as calculated")
	}
	if res.QuoteCurrency != "BTC" {
		t.Errorf("quote = %s, want BTC", res.QuoteCurrency)
	}
	if res.CurrentPrice != 2.0/40000 {
		t.Errorf("current price = %v, want %v", res.CurrentPrice, 2.0/40000)
	}
	if res.Exchange != "kucoin" || res.Symbol != "NATIX-USDT" {
		t.Errorf("result = %+v", res)
	}
	if res.Change7D == nil || *res.Change7D != 0 {
		t.Errorf("7-day change = %v, want 0", res.Change7D)
	}
}

func TestAnalyze_DirectBTCMarket(t *testing.T) {
	conn := &fakeConnector{venues: map[string]exchange.Venue{
		"coinbase": &exchange.MockVenue{Name: "coinbase", Candles: candlesFromCloses(0.05, 0.05, 0.05)},
	}}
	a := New(conn, newTestCache())

	res := a.Analyze(model.AssetSpec{Symbol: "ETH"}, resolver.QuoteBTC)
	if !res.OK() {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if res.IsCalculated {
		t.Error("direct BTC market should not be flagged as calculated")
	}
	if res.Symbol != "ETH-BTC" {
		t.Errorf("symbol = %s, want ETH-BTC", res.Symbol)
	}
}

func TestRun_FailureIsolation(t *testing.T) {
	// xt (TIG's only venue) is down; coinbase works for everyone else.
	conn := &fakeConnector{venues: map[string]exchange.Venue{
		"coinbase": &exchange.MockVenue{Name: "coinbase"},
	}}
	a := New(conn, newTestCache())

	report := a.Run([]model.AssetSpec{
		{Symbol: "BTC"},
		{Symbol: "TIG", Chain: "base"},
		{Symbol: "ETH"},
	}, nil)

	if len(report.Portfolio) != 3 {
		t.Fatalf("portfolio entries = %d, want 3", len(report.Portfolio))
	}
	btc, tig, eth := report.Portfolio[0], report.Portfolio[1], report.Portfolio[2]

	if !btc.USD.OK() || btc.USD.CurrentPrice == 0 {
		t.Errorf("BTC/USD should be populated: %+v", btc.USD)
	}
	if btc.BTC.Err != "Same asset" {
		t.Errorf("BTC-in-BTC sentinel = %+v", btc.BTC)
	}

	if tig.USD.OK() {
		t.Error("TIG should carry an error")
	}
	if tig.USD.CurrentPrice != 0 || tig.USD.Err == "" {
		t.Errorf("TIG error entry = %+v", tig.USD)
	}

	if !eth.USD.OK() || !eth.BTC.OK() {
		t.Errorf("ETH should be fully populated despite TIG failing: usd=%+v btc=%+v", eth.USD, eth.BTC)
	}
	if report.GeneratedAt.IsZero() {
		t.Error("report timestamp missing")
	}
}

func TestRun_EmptyFetchIsError(t *testing.T) {
	conn := &fakeConnector{venues: map[string]exchange.Venue{
		"xt": &exchange.MockVenue{Name: "xt", Err: exchange.ErrNoData},
	}}
	a := New(conn, newTestCache())

	res := a.Analyze(model.AssetSpec{Symbol: "TIG"}, "USD")
	if res.OK() {
		t.Fatal("empty series must not produce indicators")
	}
	if !strings.Contains(res.Err, "no data") {
		t.Errorf("err = %q", res.Err)
	}
}

func TestAnalyze_PreferredVenueIsTerminal(t *testing.T) {
	// FAI normally falls back to bingx, but the pin makes bitmart terminal.
	conn := &fakeConnector{venues: map[string]exchange.Venue{
		"bingx": &exchange.MockVenue{Name: "bingx"},
	}}
	a := New(conn, newTestCache())

	res := a.Analyze(model.AssetSpec{Symbol: "FAI", Venue: "bitmart"}, "USD")
	if res.OK() {
		t.Fatal("pinned venue failure must be terminal")
	}
	for _, v := range conn.attempts {
		if v == "bingx" {
			t.Error("fallback venue was tried despite the pin")
		}
	}
}
