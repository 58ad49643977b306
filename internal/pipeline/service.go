package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Evgeny1337/seller-apis/metrics"
	"github.com/Evgeny1337/seller-apis/pkg/logger"
)

// Report summarizes one completed sync cycle against a single target.
type Report struct {
	Marketplace   string
	StockRecords  int
	NonZeroStocks int
	StockBatches  int
	PriceRecords  int
	PriceBatches  int
	Duration      time.Duration
}

// Service drives the sync cycle for a single marketplace target:
// fetch offer ids, reconcile, submit in batches. Submission is sequential
// with no retries; a failed batch leaves earlier batches applied and aborts
// the rest of the cycle.
type Service struct {
	target Marketplace
	sm     *metrics.SyncMetrics
	log    *logger.BaseLogger
}

func NewService(target Marketplace, sm *metrics.SyncMetrics, writer io.Writer) *Service {
	return &Service{
		target: target,
		sm:     sm,
		log:    logger.NewLogger(writer, fmt.Sprintf("[sync:%s]", target.Name())),
	}
}

// UploadStocks reconciles the snapshot against the target's current listing
// and submits the stock records. Returns the non-zero-stock subset and the
// full record set.
func (s *Service) UploadStocks(ctx context.Context, remnants []Remnant) ([]StockRecord, []StockRecord, error) {
	offerIDs, err := s.target.FetchOfferIDs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching %s offer ids: %w", s.target.Name(), err)
	}

	stocks, _, err := Reconcile(remnants, offerIDs)
	if err != nil {
		return nil, nil, err
	}

	batches, err := Chunk(stocks, s.target.StockBatchSize())
	if err != nil {
		return nil, nil, err
	}
	for i, batch := range batches {
		if err := s.target.SubmitStocks(ctx, batch); err != nil {
			return nil, nil, fmt.Errorf("stock batch %d of %d: %w", i+1, len(batches), err)
		}
		s.sm.StocksPushed.Add(int32(len(batch)))
		s.sm.BatchesSubmitted.Add(1)
		metrics.RecordSubmission(s.target.Name(), "stocks", len(batch))
	}

	notEmpty := make([]StockRecord, 0, len(stocks))
	for _, record := range stocks {
		if record.Stock != 0 {
			notEmpty = append(notEmpty, record)
		}
	}
	s.log.Log("uploaded %d stock records (%d non-zero) in %d batches", len(stocks), len(notEmpty), len(batches))
	return notEmpty, stocks, nil
}

// UploadPrices reconciles the snapshot against the target's current listing
// and submits the price records. Returns the submitted prices.
func (s *Service) UploadPrices(ctx context.Context, remnants []Remnant) ([]PriceRecord, error) {
	offerIDs, err := s.target.FetchOfferIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s offer ids: %w", s.target.Name(), err)
	}

	_, prices, err := Reconcile(remnants, offerIDs)
	if err != nil {
		return nil, err
	}

	batches, err := Chunk(prices, s.target.PriceBatchSize())
	if err != nil {
		return nil, err
	}
	for i, batch := range batches {
		if err := s.target.SubmitPrices(ctx, batch); err != nil {
			return nil, fmt.Errorf("price batch %d of %d: %w", i+1, len(batches), err)
		}
		s.sm.PricesPushed.Add(int32(len(batch)))
		s.sm.BatchesSubmitted.Add(1)
		metrics.RecordSubmission(s.target.Name(), "prices", len(batch))
	}

	s.log.Log("uploaded %d price records in %d batches", len(prices), len(batches))
	return prices, nil
}

// Run performs one full cycle against the target: stocks first, then prices.
// Each phase refetches the listing, matching the behaviour of the upstream
// batch job this replaces.
func (s *Service) Run(ctx context.Context, remnants []Remnant) (*Report, error) {
	started := time.Now()

	notEmpty, stocks, err := s.UploadStocks(ctx, remnants)
	if err != nil {
		return nil, err
	}

	prices, err := s.UploadPrices(ctx, remnants)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Marketplace:   s.target.Name(),
		StockRecords:  len(stocks),
		NonZeroStocks: len(notEmpty),
		StockBatches:  batchCount(len(stocks), s.target.StockBatchSize()),
		PriceRecords:  len(prices),
		PriceBatches:  batchCount(len(prices), s.target.PriceBatchSize()),
		Duration:      time.Since(started),
	}
	return report, nil
}

func batchCount(records, size int) int {
	if records == 0 {
		return 0
	}
	return (records + size - 1) / size
}
