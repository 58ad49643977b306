package ozon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Evgeny1337/seller-apis/internal/ozon/dto"
	"github.com/Evgeny1337/seller-apis/internal/pipeline"
	"github.com/Evgeny1337/seller-apis/metrics"
	"github.com/Evgeny1337/seller-apis/pkg/apierror"
	"github.com/Evgeny1337/seller-apis/pkg/logger"
)

const (
	DefaultHost = "https://api-seller.ozon.ru"

	productListPath  = "/v2/product/list"
	importStocksPath = "/v1/product/import/stocks"
	importPricesPath = "/v1/product/import/prices"

	productListPageLimit = 1000

	// Лимиты эндпоинтов import/stocks и import/prices.
	defaultStockBatchSize = 100
	defaultPriceBatchSize = 900
)

// Client talks to the Ozon Seller API for one shop and implements
// pipeline.Marketplace for it.
type Client struct {
	host           string
	clientID       string
	apiKey         string
	stockBatchSize int
	priceBatchSize int
	http           *http.Client
	log            *logger.BaseLogger
}

type Option func(*Client)

func WithHost(host string) Option {
	return func(c *Client) { c.host = host }
}

func WithBatchSizes(stock, price int) Option {
	return func(c *Client) {
		if stock > 0 {
			c.stockBatchSize = stock
		}
		if price > 0 {
			c.priceBatchSize = price
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.http = client }
}

func NewClient(clientID, apiKey string, writer io.Writer, opts ...Option) *Client {
	c := &Client{
		host:           DefaultHost,
		clientID:       clientID,
		apiKey:         apiKey,
		stockBatchSize: defaultStockBatchSize,
		priceBatchSize: defaultPriceBatchSize,
		http:           &http.Client{Timeout: 100 * time.Second},
		log:            logger.NewLogger(writer, "[ozon]"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string        { return "ozon" }
func (c *Client) StockBatchSize() int { return c.stockBatchSize }
func (c *Client) PriceBatchSize() int { return c.priceBatchSize }

// FetchOfferIDs walks the shop's product list page by page (last_id
// pagination) and returns every offer id the shop currently lists.
func (c *Client) FetchOfferIDs(ctx context.Context) ([]string, error) {
	var offerIDs []string
	lastID := ""
	total := 0
	for {
		page, err := c.productList(ctx, lastID)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Result.Items {
			offerIDs = append(offerIDs, item.OfferID)
		}
		lastID = page.Result.LastID
		total = page.Result.Total
		if len(page.Result.Items) == 0 || len(offerIDs) >= total {
			break
		}
	}
	c.log.Log("fetched %d offer ids (reported total %d)", len(offerIDs), total)
	return offerIDs, nil
}

func (c *Client) productList(ctx context.Context, lastID string) (*dto.ProductListResponse, error) {
	request := dto.ProductListRequest{
		Filter: dto.ProductListFilter{Visibility: "ALL"},
		LastID: lastID,
		Limit:  productListPageLimit,
	}
	var response dto.ProductListResponse
	if err := c.post(ctx, productListPath, request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) SubmitStocks(ctx context.Context, batch []pipeline.StockRecord) error {
	request := dto.ImportStocksRequest{Stocks: make([]dto.Stock, 0, len(batch))}
	for _, record := range batch {
		request.Stocks = append(request.Stocks, dto.Stock{
			OfferID: record.OfferID,
			Stock:   record.Stock,
		})
	}
	return c.post(ctx, importStocksPath, request, nil)
}

func (c *Client) SubmitPrices(ctx context.Context, batch []pipeline.PriceRecord) error {
	request := dto.ImportPricesRequest{Prices: make([]dto.Price, 0, len(batch))}
	for _, record := range batch {
		request.Prices = append(request.Prices, dto.Price{
			AutoActionEnabled: "UNKNOWN",
			CurrencyCode:      "RUB",
			OfferID:           record.OfferID,
			OldPrice:          "0",
			Price:             record.Price,
		})
	}
	return c.post(ctx, importPricesPath, request, nil)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Client-Id", c.clientID)
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	metrics.RecordRequest(c.Name(), path, resp.StatusCode, time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return apierror.New(c.Name(), path, resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s response: %w", path, err)
		}
	}
	return nil
}
