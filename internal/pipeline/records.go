package pipeline

import "time"

// Remnant is one row of the vendor stock snapshot: raw tokens exactly as
// published, no normalization applied yet.
type Remnant struct {
	Code     string
	Quantity string
	Price    string
}

// StockRecord is a marketplace-neutral stock update for a single offer.
// WarehouseID and UpdatedAt are filled only by targets that need them;
// clients substitute their own defaults for zero values.
type StockRecord struct {
	OfferID     string
	Stock       int
	WarehouseID string
	UpdatedAt   time.Time
}

// PriceRecord is a marketplace-neutral price update. Price is the integral
// part of the vendor price as a digit string; currency and the rest of the
// wire metadata belong to the marketplace clients.
type PriceRecord struct {
	OfferID string
	Price   string
}
