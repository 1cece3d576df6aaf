package trend

import "errors"

// Trend is the classification of an EMA crossover.
type Trend int

const (
	Downtrend Trend = iota
	Uptrend
)

// Text returns the display label for the trend.
func (t Trend) Text() string {
	if t == Uptrend {
		return "Uptrend"
	}
	return "Downtrend"
}

// EMA computes the exponential moving average of closes over the given period
// and returns the value at the last index. The smoothing factor is
// 2/(period+1) and the recurrence is seeded from the first value.
func EMA(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) == 0 {
		return 0, errors.New("empty series")
	}
	alpha := 2.0 / float64(period+1)
	ema := closes[0]
	for _, c := range closes[1:] {
		ema = alpha*c + (1-alpha)*ema
	}
	return ema, nil
}

// Classify returns Uptrend iff ema8 is strictly above ema20. Equality counts
// as Downtrend.
func Classify(ema8, ema20 float64) Trend {
	if ema8 > ema20 {
		return Uptrend
	}
	return Downtrend
}

// Performance returns the percentage change between the close `days` bars ago
// and the last close. The second return is false when the series is too short
// or the reference close is zero.
func Performance(closes []float64, days int) (float64, bool) {
	if days <= 0 || len(closes) < days {
		return 0, false
	}
	ref := closes[len(closes)-days]
	if ref == 0 {
		return 0, false
	}
	return (closes[len(closes)-1] - ref) / ref * 100, true
}

// CrossRate derives a synthetic series by dividing base closes by ref closes
// elementwise, truncated to the shorter input. Alignment is by index, not by
// timestamp: both inputs are assumed to share the same daily cadence and
// start point. If the two series were fetched across a day boundary the last
// ratio can mix adjacent days — known limitation, kept as-is.
func CrossRate(base, ref []float64) []float64 {
	n := len(base)
	if len(ref) < n {
		n = len(ref)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = base[i] / ref[i]
	}
	return out
}
