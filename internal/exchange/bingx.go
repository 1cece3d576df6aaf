package exchange

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"TrendBoard/internal/model"
)

// bingxVenue speaks the BingX open API. Pairs are hyphen-delimited
// ("FAI-USDT").
type bingxVenue struct {
	client  *http.Client
	baseURL string
}

func newBingx(client *http.Client, baseURL string) *bingxVenue {
	if baseURL == "" {
		baseURL = "https://open-api.bingx.com"
	}
	return &bingxVenue{client: client, baseURL: baseURL}
}

func (v *bingxVenue) ID() string { return "bingx" }

func (v *bingxVenue) loadMarkets() error {
	var resp struct {
		Code int `json:"code"`
		Data struct {
			Symbols []struct {
				Symbol string `json:"symbol"`
			} `json:"symbols"`
		} `json:"data"`
	}
	if err := getJSON(v.client, v.baseURL+"/openApi/spot/v1/common/symbols", &resp); err != nil {
		return err
	}
	if resp.Code != 0 {
		return fmt.Errorf("api code %d", resp.Code)
	}
	if len(resp.Data.Symbols) == 0 {
		return fmt.Errorf("empty symbol listing")
	}
	return nil
}

func (v *bingxVenue) FetchDailyCandles(pair string, limit int) ([]model.Candle, error) {
	// Rows are [open time ms, open, high, low, close, volume] as numbers,
	// newest first.
	u := fmt.Sprintf("%s/openApi/spot/v2/market/kline?symbol=%s&interval=1d&limit=%d",
		v.baseURL, url.QueryEscape(pair), limit)
	var resp struct {
		Code int     `json:"code"`
		Data [][]any `json:"data"`
	}
	if err := getJSON(v.client, u, &resp); err != nil {
		return finish(v.ID(), pair, nil, limit, err)
	}
	if resp.Code != 0 {
		return finish(v.ID(), pair, nil, limit, fmt.Errorf("api code %d", resp.Code))
	}
	candles := make([]model.Candle, 0, len(resp.Data))
	for _, r := range resp.Data {
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
