package exchange

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"TrendBoard/internal/model"
)

// gateVenue speaks the Gate.io v4 API. Pairs are underscore-delimited
// ("NATIX_USDT").
type gateVenue struct {
	client  *http.Client
	baseURL string
}

func newGate(client *http.Client, baseURL string) *gateVenue {
	if baseURL == "" {
		baseURL = "https://api.gateio.ws/api/v4"
	}
	return &gateVenue{client: client, baseURL: baseURL}
}

func (v *gateVenue) ID() string { return "gate" }

func (v *gateVenue) loadMarkets() error {
	var pairs []struct {
		ID string `json:"id"`
	}
	if err := getJSON(v.client, v.baseURL+"/spot/currency_pairs", &pairs); err != nil {
		return err
	}
	if len(pairs) == 0 {
		return fmt.Errorf("empty pair listing")
	}
	return nil
}

func (v *gateVenue) FetchDailyCandles(pair string, limit int) ([]model.Candle, error) {
	// Rows are [time, quote volume, close, high, low, open, base volume, ...]
	// as strings, oldest first.
	u := fmt.Sprintf("%s/spot/candlesticks?currency_pair=%s&interval=1d&limit=%d",
		v.baseURL, url.QueryEscape(pair), limit)
	var rows [][]string
	if err := getJSON(v.client, u, &rows); err != nil {
		return finish(v.ID(), pair, nil, limit, err)
	}
	candles := make([]model.Candle, 0, len(rows))
	for _, r := range rows {
		if len(r) < 7 {
			continue
		}
		ts, _ := strconv.ParseInt(r[0], 10, 64)
		candles = append(candles, model.Candle{
			Time:   time.Unix(ts, 0),
			Close:  toFloat(r[2]),
			High:   toFloat(r[3]),
			Low:    toFloat(r[4]),
			Open:   toFloat(r[5]),
			Volume: toFloat(r[6]),
		})
	}
	return finish(v.ID(), pair, candles, limit, nil)
}
