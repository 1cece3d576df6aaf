// Package analyzer drives one analysis cycle: resolve venues per asset,
// fetch candles through the cache, and turn them into trend results.
package analyzer

import (
	"fmt"
	"log"
	"time"

	"TrendBoard/internal/cache"
	"TrendBoard/internal/exchange"
	"TrendBoard/internal/model"
	"TrendBoard/internal/resolver"
	"TrendBoard/internal/trend"
)

// lookbackDays is the fixed daily-candle window every indicator runs on.
const lookbackDays = 50

// Connector yields validated venue handles.
type Connector interface {
	Connect(venueID string) (exchange.Venue, error)
}

// Analyzer owns one analysis pipeline. Venue handles and price series are
// only ever reached through the cache, never by calling the connector or a
// venue directly.
type Analyzer struct {
	connector Connector
	cache     *cache.Cache
}

// New creates an Analyzer on top of the given connector and cache.
func New(connector Connector, c *cache.Cache) *Analyzer {
	return &Analyzer{connector: connector, cache: c}
}

// Run executes one full cycle over the portfolio and watchlist, in input
// order. A failing asset yields an error-bearing entry; it never aborts the
// rest of the cycle.
func (a *Analyzer) Run(portfolio, watchlist []model.AssetSpec) *model.AnalysisReport {
	return &model.AnalysisReport{
		Portfolio:   a.analyzeAll(portfolio),
		Watchlist:   a.analyzeAll(watchlist),
		GeneratedAt: time.Now(),
	}
}

func (a *Analyzer) analyzeAll(assets []model.AssetSpec) []model.AssetAnalysis {
	out := make([]model.AssetAnalysis, 0, len(assets))
	for _, asset := range assets {
		entry := model.AssetAnalysis{Asset: asset.Symbol, Chain: asset.Chain}
		entry.USD = a.Analyze(asset, "USD")
		if asset.Symbol == "BTC" {
			entry.BTC = &model.TrendResult{
				Symbol:        "BTC/BTC",
				QuoteCurrency: resolver.QuoteBTC,
				Chain:         asset.Chain,
				Err:           "Same asset",
			}
		} else {
			entry.BTC = a.Analyze(asset, resolver.QuoteBTC)
		}
		if !entry.USD.OK() {
			log.Printf("[WARN] analyze %s: %s", asset.Symbol, entry.USD.Err)
		}
		out = append(out, entry)
	}
	return out
}

// Analyze produces the trend result for one asset in one quote currency,
// walking the resolver's candidates in order. The first venue that both
// connects and returns data wins; venues before it are never revisited and
// venues after it are never tried.
func (a *Analyzer) Analyze(asset model.AssetSpec, quote string) *model.TrendResult {
	candidates := resolver.Candidates(asset, quote)
	if len(candidates) == 0 {
		return errResult(asset, quote, "", fmt.Sprintf("no venue lists %s", asset.Symbol))
	}

	var lastErr error
	var lastVenue string
	for _, cand := range candidates {
		closes, err := a.closesFor(cand)
		if err != nil {
			lastErr, lastVenue = err, cand.Venue
			continue
		}
		if cand.Derived {
			ref, err := a.closesFor(resolver.BTCReference())
			if err != nil {
				lastErr, lastVenue = err, cand.Venue
				continue
			}
			closes = trend.CrossRate(closes, ref)
		}
		return a.buildResult(asset, cand, closes)
	}

	msg := lastErr.Error()
	if len(candidates) > 1 {
		msg = fmt.Sprintf("all venues failed, last: %v", lastErr)
	}
	return errResult(asset, quote, lastVenue, msg)
}

// closesFor returns the closing prices for one candidate, going through the
// cache for both the venue handle and the series.
func (a *Analyzer) closesFor(cand resolver.VenueCandidate) ([]float64, error) {
	handle, err := a.cache.GetOrFetch("venue:"+cand.Venue, cache.Long, func() (any, error) {
		return a.connector.Connect(cand.Venue)
	})
	if err != nil {
		return nil, err
	}
	venue := handle.(exchange.Venue)

	key := "series:" + cand.Venue + ":" + cand.Pair
	cached, err := a.cache.GetOrFetch(key, cache.Short, func() (any, error) {
		candles, err := venue.FetchDailyCandles(cand.Pair, lookbackDays)
		if err != nil {
			return nil, err
		}
		return &model.PriceSeries{
			Venue:     cand.Venue,
			Pair:      cand.Pair,
			Candles:   candles,
			FetchedAt: time.Now(),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return cached.(*model.PriceSeries).Closes(), nil
}

func (a *Analyzer) buildResult(asset model.AssetSpec, cand resolver.VenueCandidate, closes []float64) *model.TrendResult {
	if len(closes) == 0 {
		// Only reachable when a cross-rate truncated to nothing.
		return errResult(asset, cand.Quote, cand.Venue, "derived series is empty")
	}
	ema8, err := trend.EMA(closes, 8)
	if err != nil {
		return errResult(asset, cand.Quote, cand.Venue, err.Error())
	}
	ema20, err := trend.EMA(closes, 20)
	if err != nil {
		return errResult(asset, cand.Quote, cand.Venue, err.Error())
	}
	direction := trend.Classify(ema8, ema20)

	res := &model.TrendResult{
		Symbol:        cand.Pair,
		CurrentPrice:  closes[len(closes)-1],
		EMA8:          ema8,
		EMA20:         ema20,
		IsUptrend:     direction == trend.Uptrend,
		TrendText:     direction.Text(),
		QuoteCurrency: cand.Quote,
		Chain:         asset.Chain,
		Exchange:      cand.Venue,
		IsCalculated:  cand.Derived,
	}
	if p, ok := trend.Performance(closes, 7); ok {
		res.Change7D = &p
	}
	if p, ok := trend.Performance(closes, 14); ok {
		res.Change14D = &p
	}
	return res
}

func errResult(asset model.AssetSpec, quote, venue, msg string) *model.TrendResult {
	return &model.TrendResult{
		Symbol:        asset.Symbol + "/" + quote,
		QuoteCurrency: quote,
		Chain:         asset.Chain,
		Exchange:      venue,
		Err:           msg,
	}
}
