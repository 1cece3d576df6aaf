package exchange

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"TrendBoard/internal/model"
)

// Venue is a connected handle to one market-data source.
type Venue interface {
	ID() string
	// FetchDailyCandles returns up to limit most recent daily candles for
	// the venue-native symbol pair, chronological ascending.
	FetchDailyCandles(pair string, limit int) ([]model.Candle, error)
}

// venueClient adds the validation step run once at connect time.
type venueClient interface {
	Venue
	loadMarkets() error
}

// Connector builds and validates venue handles. All venues share one
// proxy-aware HTTP client.
type Connector struct {
	client    *http.Client
	factories map[string]func(*http.Client) venueClient
}

// NewConnector creates a Connector with optional proxy support.
func NewConnector(proxyURL string) *Connector {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	client := &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
	return &Connector{
		client: client,
		factories: map[string]func(*http.Client) venueClient{
			"coinbase": func(c *http.Client) venueClient { return newCoinbase(c, "") },
			"kucoin":   func(c *http.Client) venueClient { return newKucoin(c, "") },
			"gate":     func(c *http.Client) venueClient { return newGate(c, "") },
			"mexc":     func(c *http.Client) venueClient { return newMexc(c, "") },
			"xt":       func(c *http.Client) venueClient { return newXT(c, "") },
			"bitmart":  func(c *http.Client) venueClient { return newBitmart(c, "") },
			"bingx":    func(c *http.Client) venueClient { return newBingx(c, "") },
		},
	}
}

// Connect initializes the venue and validates it by loading its market
// listing. Any failure is returned as a *ConnectError; Connect never panics.
func (c *Connector) Connect(venueID string) (Venue, error) {
	factory, ok := c.factories[venueID]
	if !ok {
		return nil, &ConnectError{Venue: venueID, Err: ErrUnknownVenue}
	}
	v := factory(c.client)
	if err := v.loadMarkets(); err != nil {
		return nil, &ConnectError{Venue: venueID, Err: err}
	}
	return v, nil
}

// getJSON performs a GET and decodes the JSON body into out.
func getJSON(client *http.Client, rawURL string, out any) error {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, truncate(body, 200))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// toFloat converts the mixed string/number values venues put in kline
// arrays. Unparseable values become 0.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	case json.Number:
		f, _ := n.Float64()
		return f
	default:
		return 0
	}
}

// finish normalizes a venue response: wraps errors, sorts ascending, trims
// to the limit most recent candles, and maps an empty result to ErrNoData.
func finish(venueID, pair string, candles []model.Candle, limit int, err error) ([]model.Candle, error) {
	if err != nil {
		return nil, &FetchError{Venue: venueID, Pair: pair, Err: err}
	}
	if len(candles) == 0 {
		return nil, &FetchError{Venue: venueID, Pair: pair, Err: ErrNoData}
	}
	sort.Slice(candles, func(i, j int) bool { return candles[i].Time.Before(candles[j].Time) })
	if limit > 0 && len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	return candles, nil
}
