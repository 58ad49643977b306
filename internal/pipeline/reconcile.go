package pipeline

import "fmt"

// Reconcile merges a vendor snapshot with the offer ids a marketplace
// currently lists. Two phases: a match scan over the remnants, then a
// zero-stock fill for every listed offer the snapshot did not mention.
// Neither input is modified.
//
// Every offer id ends up in exactly one stock record: matched ones first in
// remnant order, then the residual in offer-id order. Price records cover
// only the matched offers; an offer missing from the snapshot keeps its last
// price on the marketplace.
func Reconcile(remnants []Remnant, offerIDs []string) ([]StockRecord, []PriceRecord, error) {
	listed := make(map[string]bool, len(offerIDs))
	for _, id := range offerIDs {
		listed[id] = true
	}

	accounted := make(map[string]bool, len(offerIDs))
	stocks := make([]StockRecord, 0, len(offerIDs))
	prices := make([]PriceRecord, 0, len(offerIDs))

	for _, remnant := range remnants {
		if !listed[remnant.Code] || accounted[remnant.Code] {
			continue
		}
		stock, err := NormalizeQuantity(remnant.Quantity)
		if err != nil {
			return nil, nil, fmt.Errorf("remnant %s: %w", remnant.Code, err)
		}
		price, err := NormalizePrice(remnant.Price)
		if err != nil {
			return nil, nil, fmt.Errorf("remnant %s: %w", remnant.Code, err)
		}
		stocks = append(stocks, StockRecord{OfferID: remnant.Code, Stock: stock})
		prices = append(prices, PriceRecord{OfferID: remnant.Code, Price: price})
		accounted[remnant.Code] = true
	}

	// Чего нет в выгрузке — обнуляем, чтобы не продавать отсутствующее.
	for _, id := range offerIDs {
		if accounted[id] {
			continue
		}
		stocks = append(stocks, StockRecord{OfferID: id, Stock: 0})
		accounted[id] = true
	}

	return stocks, prices, nil
}
