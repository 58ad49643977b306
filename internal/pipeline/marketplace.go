package pipeline

import "context"

// Marketplace is one selling platform target: a source of currently listed
// offer ids and a sink for stock and price updates. Implementations own the
// wire formats, authentication and pagination; batch size limits differ per
// platform and per endpoint, so the target reports its own.
type Marketplace interface {
	Name() string
	FetchOfferIDs(ctx context.Context) ([]string, error)
	SubmitStocks(ctx context.Context, batch []StockRecord) error
	SubmitPrices(ctx context.Context, batch []PriceRecord) error
	StockBatchSize() int
	PriceBatchSize() int
}
