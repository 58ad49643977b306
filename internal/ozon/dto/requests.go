package dto

// ProductListRequest is the body of POST /v2/product/list.
type ProductListRequest struct {
	Filter ProductListFilter `json:"filter"`
	LastID string            `json:"last_id"`
	Limit  int               `json:"limit"`
}

type ProductListFilter struct {
	Visibility string `json:"visibility"`
}

// ImportStocksRequest is the body of POST /v1/product/import/stocks.
type ImportStocksRequest struct {
	Stocks []Stock `json:"stocks"`
}

type Stock struct {
	OfferID string `json:"offer_id"`
	Stock   int    `json:"stock"`
}

// ImportPricesRequest is the body of POST /v1/product/import/prices.
type ImportPricesRequest struct {
	Prices []Price `json:"prices"`
}

type Price struct {
	AutoActionEnabled string `json:"auto_action_enabled"`
	CurrencyCode      string `json:"currency_code"`
	OfferID           string `json:"offer_id"`
	OldPrice          string `json:"old_price"`
	Price             string `json:"price"`
}
