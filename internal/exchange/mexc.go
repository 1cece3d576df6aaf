package exchange

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"TrendBoard/internal/model"
)

// mexcVenue speaks the MEXC spot API. Pairs are concatenated ("NATIXUSDT").
type mexcVenue struct {
	client  *http.Client
	baseURL string
}

func newMexc(client *http.Client, baseURL string) *mexcVenue {
	if baseURL == "" {
		baseURL = "https://api.mexc.com"
	}
	return &mexcVenue{client: client, baseURL: baseURL}
}

func (v *mexcVenue) ID() string { return "mexc" }

func (v *mexcVenue) loadMarkets() error {
	var resp struct {
		Symbols []struct {
			Symbol string `json:"symbol"`
		} `json:"symbols"`
	}
	if err := getJSON(v.client, v.baseURL+"/api/v3/exchangeInfo", &resp); err != nil {
		return err
	}
	if len(resp.Symbols) == 0 {
		return fmt.Errorf("empty symbol listing")
	}
	return nil
}

func (v *mexcVenue) FetchDailyCandles(pair string, limit int) ([]model.Candle, error) {
	// Rows are [open time ms, open, high, low, close, volume, close time, ...]
	// with prices as strings, oldest first.
	u := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=1d&limit=%d",
		v.baseURL, url.QueryEscape(pair), limit)
	var rows [][]any
	if err := getJSON(v.client, u, &rows); err != nil {
		return finish(v.ID(), pair, nil, limit, err)
	}
	candles := make([]model.Candle, 0, len(rows))
	for _, r := range rows {
		if len(r) < 6 {
			continue
		}
		candles = append(candles, model.Candle{
			Time:   time.UnixMilli(int64(toFloat(r[0]))),
			Open:   toFloat(r[1]),
			High:   toFloat(r[2]),
			Low:    toFloat(r[3]),
			Close:  toFloat(r[4]),
			Volume: toFloat(r[5]),
		})
	}
	return finish(v.ID(), pair, candles, limit, nil)
}
