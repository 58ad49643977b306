package dto

// UpdateStocksRequest is the body of PUT /campaigns/{id}/offers/stocks.
type UpdateStocksRequest struct {
	Skus []Sku `json:"skus"`
}

type Sku struct {
	Sku         string      `json:"sku"`
	WarehouseID string      `json:"warehouseId"`
	Items       []StockItem `json:"items"`
}

type StockItem struct {
	Count     int    `json:"count"`
	Type      string `json:"type"`
	UpdatedAt string `json:"updatedAt"`
}

// UpdatePricesRequest is the body of POST /campaigns/{id}/offer-prices/updates.
type UpdatePricesRequest struct {
	Offers []OfferPrice `json:"offers"`
}

type OfferPrice struct {
	ID    string `json:"id"`
	Price Price  `json:"price"`
}

type Price struct {
	Value      int    `json:"value"`
	CurrencyID string `json:"currencyId"`
}
