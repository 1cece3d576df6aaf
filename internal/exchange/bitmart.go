package exchange

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"TrendBoard/internal/model"
)

// bitmartVenue speaks the BitMart cloud API. Pairs are underscore-delimited
// ("FAI_USDT").
type bitmartVenue struct {
	client  *http.Client
	baseURL string
}

func newBitmart(client *http.Client, baseURL string) *bitmartVenue {
	if baseURL == "" {
		baseURL = "https://api-cloud.bitmart.com"
	}
	return &bitmartVenue{client: client, baseURL: baseURL}
}

func (v *bitmartVenue) ID() string { return "bitmart" }

func (v *bitmartVenue) loadMarkets() error {
	var resp struct {
		Code int `json:"code"`
		Data struct {
			Symbols []string `json:"symbols"`
		} `json:"data"`
	}
	if err := getJSON(v.client, v.baseURL+"/spot/v1/symbols", &resp); err != nil {
		return err
	}
	if resp.Code != 1000 {
		return fmt.Errorf("api code %d", resp.Code)
	}
	if len(resp.Data.Symbols) == 0 {
		return fmt.Errorf("empty symbol listing")
	}
	return nil
}

func (v *bitmartVenue) FetchDailyCandles(pair string, limit int) ([]model.Candle, error) {
	// Rows are [time, open, high, low, close, volume, quote volume] as
	// strings; step is in minutes, 1440 = daily.
	u := fmt.Sprintf("%s/spot/quotation/v3/lite-klines?symbol=%s&step=1440&limit=%d",
		v.baseURL, url.QueryEscape(pair), limit)
	var resp struct {
		Code int        `json:"code"`
		Data [][]string `json:"data"`
	}
	if err := getJSON(v.client, u, &resp); err != nil {
		return finish(v.ID(), pair, nil, limit, err)
	}
	if resp.Code != 1000 {
		return finish(v.ID(), pair, nil, limit, fmt.Errorf("api code %d", resp.Code))
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
			High:   toFloat(r[2]),
			Low:    toFloat(r[3]),
			Close:  toFloat(r[4]),
			Volume: toFloat(r[5]),
		})
	}
	return finish(v.ID(), pair, candles, limit, nil)
}
