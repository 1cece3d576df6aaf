package model

import "time"

// Candle represents a single daily OHLCV bar.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds one venue's daily candles for a symbol pair,
// chronological ascending.
type PriceSeries struct {
	Venue     string
	Pair      string
	Candles   []Candle
	FetchedAt time.Time
}

// Closes extracts the closing prices in order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		closes[i] = c.Close
	}
	return closes
}
