package recorder

import "TrendBoard/internal/model"

// Recorder persists the outcome of analysis cycles. Only computed results
// are stored; raw candle series never leave the cache.
type Recorder interface {
	RecordCycle(report *model.AnalysisReport) error
	Close() error
}
