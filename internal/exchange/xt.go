package exchange

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"TrendBoard/internal/model"
)

// xtVenue speaks the XT.com public API. Pairs are lowercase underscore
// ("tig_usdt").
type xtVenue struct {
	client  *http.Client
	baseURL string
}

func newXT(client *http.Client, baseURL string) *xtVenue {
	if baseURL == "" {
		baseURL = "https://sapi.xt.com"
	}
	return &xtVenue{client: client, baseURL: baseURL}
}

func (v *xtVenue) ID() string { return "xt" }

func (v *xtVenue) loadMarkets() error {
	var resp struct {
		RC     int `json:"rc"`
		Result struct {
			Symbols []struct {
				Symbol string `json:"symbol"`
			} `json:"symbols"`
		} `json:"result"`
	}
	if err := getJSON(v.client, v.baseURL+"/v4/public/symbol", &resp); err != nil {
		return err
	}
	if resp.RC != 0 {
		return fmt.Errorf("api rc %d", resp.RC)
	}
	if len(resp.Result.Symbols) == 0 {
		return fmt.Errorf("empty symbol listing")
	}
	return nil
}

func (v *xtVenue) FetchDailyCandles(pair string, limit int) ([]model.Candle, error) {
	u := fmt.Sprintf("%s/v4/public/kline?symbol=%s&interval=1d&limit=%d",
		v.baseURL, url.QueryEscape(pair), limit)
	var resp struct {
		RC     int `json:"rc"`
		Result []struct {
			T int64  `json:"t"`
			O string `json:"o"`
			H string `json:"h"`
			L string `json:"l"`
			C string `json:"c"`
			V string `json:"v"`
		} `json:"result"`
	}
	if err := getJSON(v.client, u, &resp); err != nil {
		return finish(v.ID(), pair, nil, limit, err)
	}
	if resp.RC != 0 {
		return finish(v.ID(), pair, nil, limit, fmt.Errorf("api rc %d", resp.RC))
	}
	candles := make([]model.Candle, 0, len(resp.Result))
	for _, r := range resp.Result {
		candles = append(candles, model.Candle{
			Time:   time.UnixMilli(r.T),
			Open:   toFloat(r.O),
			High:   toFloat(r.H),
			Low:    toFloat(r.L),
			Close:  toFloat(r.C),
			Volume: toFloat(r.V),
		})
	}
	return finish(v.ID(), pair, candles, limit, nil)
}
