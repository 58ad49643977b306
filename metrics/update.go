package metrics

import "sync/atomic"

// SyncMetrics aggregates counters across every target of one job run.
type SyncMetrics struct {
	StocksPushed     atomic.Int32
	PricesPushed     atomic.Int32
	BatchesSubmitted atomic.Int32
	FailedTargets    atomic.Int32
}
