package exchange

import (
	"time"

	"TrendBoard/internal/model"
)

// MockVenue returns controllable fixed data for development and testing.
type MockVenue struct {
	Name    string
	Candles []model.Candle
	Err     error
}

func (m *MockVenue) ID() string { return m.Name }

func (m *MockVenue) FetchDailyCandles(pair string, limit int) ([]model.Candle, error) {
	if m.Err != nil {
		return nil, &FetchError{Venue: m.Name, Pair: pair, Err: m.Err}
	}
	if m.Candles != nil {
		return finish(m.Name, pair, append([]model.Candle(nil), m.Candles...), limit, nil)
	}
	return finish(m.Name, pair, GenerateCandles(100, limit), limit, nil)
}

// GenerateCandles builds a deterministic gently-rising daily series ending
// today, for mocks and tests.
func GenerateCandles(basePrice float64, count int) []model.Candle {
	candles := make([]model.Candle, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		candles[i] = model.Candle{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return candles
}
