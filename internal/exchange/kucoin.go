package exchange

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"TrendBoard/internal/model"
)

// kucoinVenue speaks the KuCoin public API. Pairs are hyphen-delimited
// ("NATIX-USDT").
type kucoinVenue struct {
	client  *http.Client
	baseURL string
}

func newKucoin(client *http.Client, baseURL string) *kucoinVenue {
	if baseURL == "" {
		baseURL = "https://api.kucoin.com"
	}
	return &kucoinVenue{client: client, baseURL: baseURL}
}

func (v *kucoinVenue) ID() string { return "kucoin" }

func (v *kucoinVenue) loadMarkets() error {
	var resp struct {
		Code string `json:"code"`
		Data []struct {
			Symbol string `json:"symbol"`
		} `json:"data"`
	}
	if err := getJSON(v.client, v.baseURL+"/api/v1/symbols", &resp); err != nil {
		return err
	}
	if resp.Code != "200000" {
		return fmt.Errorf("api code %s", resp.Code)
	}
	if len(resp.Data) == 0 {
		return fmt.Errorf("empty symbol listing")
	}
	return nil
}

func (v *kucoinVenue) FetchDailyCandles(pair string, limit int) ([]model.Candle, error) {
	// Rows are [time, open, close, high, low, volume, turnover] as strings,
	// newest first, time in seconds.
	u := fmt.Sprintf("%s/api/v1/market/candles?type=1day&symbol=%s", v.baseURL, url.QueryEscape(pair))
	var resp struct {
		Code string     `json:"code"`
		Data [][]string `json:"data"`
	}
	if err := getJSON(v.client, u, &resp); err != nil {
		return finish(v.ID(), pair, nil, limit, err)
	}
	if resp.Code != "200000" {
		return finish(v.ID(), pair, nil, limit, fmt.Errorf("api code %s", resp.Code))
	}
	candles := make([]model.Candle, 0, len(resp.Data))
	for _, r := range resp.Data {
		if len(r) < 6 {
			continue
		}
		ts, _ := strconv.ParseInt(r[0], 10, 64)
		candles = append(candles, model.Candle{
			Time:   time.Unix(ts, 0),
			Open:   toFloat(r[1]),
			Close:  toFloat(r[2]),
			High:   toFloat(r[3]),
			Low:    toFloat(r[4]),
			Volume: toFloat(r[5]),
		})
	}
	return finish(v.ID(), pair, candles, limit, nil)
}
