package exchange

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"TrendBoard/internal/model"
)

// coinbaseVenue is the primary spot venue. Pairs are hyphen-delimited and
// quoted in USD ("BTC-USD").
type coinbaseVenue struct {
	client  *http.Client
	baseURL string
}

func newCoinbase(client *http.Client, baseURL string) *coinbaseVenue {
	if baseURL == "" {
		baseURL = "https://api.exchange.coinbase.com"
	}
	return &coinbaseVenue{client: client, baseURL: baseURL}
}

func (v *coinbaseVenue) ID() string { return "coinbase" }

func (v *coinbaseVenue) loadMarkets() error {
	var products []struct {
		ID string `json:"id"`
	}
	if err := getJSON(v.client, v.baseURL+"/products", &products); err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("empty product listing")
	}
	return nil
}

func (v *coinbaseVenue) FetchDailyCandles(pair string, limit int) ([]model.Candle, error) {
	// Response rows are [time, low, high, open, close, volume], newest first.
	u := fmt.Sprintf("%s/products/%s/candles?granularity=86400", v.baseURL, url.PathEscape(pair))
	var rows [][]float64
	if err := getJSON(v.client, u, &rows); err != nil {
		return finish(v.ID(), pair, nil, limit, err)
	}
	candles := make([]model.Candle, 0, len(rows))
	for _, r := range rows {
		if len(r) < 6 {
			continue
		}
		candles = append(candles, model.Candle{
			Time:   time.Unix(int64(r[0]), 0),
			Low:    r[1],
			High:   r[2],
			Open:   r[3],
			Close:  r[4],
			Volume: r[5],
		})
	}
	return finish(v.ID(), pair, candles, limit, nil)
}
