package yandex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Evgeny1337/seller-apis/internal/pipeline"
	"github.com/Evgeny1337/seller-apis/internal/yandex/dto"
	"github.com/Evgeny1337/seller-apis/metrics"
	"github.com/Evgeny1337/seller-apis/pkg/apierror"
	"github.com/Evgeny1337/seller-apis/pkg/logger"
)

const (
	DefaultHost = "https://api.partner.market.yandex.ru"

	offerMappingsPageLimit = 200

	// Лимиты эндпоинтов offers/stocks и offer-prices/updates.
	defaultStockBatchSize = 2000
	defaultPriceBatchSize = 500
)

// Client talks to the Yandex Market Partner API for one campaign (a sales
// channel such as FBS or DBS) and implements pipeline.Marketplace for it.
// Independent channels get independent clients, nothing is shared.
type Client struct {
	name           string
	host           string
	campaignID     string
	warehouseID    string
	auth           *BearerAuth
	stockBatchSize int
	priceBatchSize int
	http           *http.Client
	now            func() time.Time
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

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient builds a client for one campaign. name distinguishes the sales
// channels in logs and metrics ("yandex-fbs", "yandex-dbs").
func NewClient(name, campaignID, warehouseID, token string, writer io.Writer, opts ...Option) *Client {
	c := &Client{
		name:           name,
		host:           DefaultHost,
		campaignID:     campaignID,
		warehouseID:    warehouseID,
		auth:           NewBearerAuth(token),
		stockBatchSize: defaultStockBatchSize,
		priceBatchSize: defaultPriceBatchSize,
		http:           &http.Client{Timeout: 100 * time.Second},
		now:            time.Now,
		log:            logger.NewLogger(writer, "["+name+"]"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string        { return c.name }
func (c *Client) StockBatchSize() int { return c.stockBatchSize }
func (c *Client) PriceBatchSize() int { return c.priceBatchSize }

// FetchOfferIDs walks the campaign's offer mapping entries page by page
// (page_token pagination) and returns every shopSku the campaign lists.
func (c *Client) FetchOfferIDs(ctx context.Context) ([]string, error) {
	var offerIDs []string
	pageToken := ""
	for {
		page, err := c.offerMappings(ctx, pageToken)
		if err != nil {
			return nil, err
		}
		for _, entry := range page.Result.OfferMappingEntries {
			offerIDs = append(offerIDs, entry.Offer.ShopSku)
		}
		pageToken = page.Result.Paging.NextPageToken
		if pageToken == "" {
			break
		}
	}
	c.log.Log("fetched %d offer ids", len(offerIDs))
	return offerIDs, nil
}

func (c *Client) offerMappings(ctx context.Context, pageToken string) (*dto.OfferMappingsResponse, error) {
	endpoint := fmt.Sprintf("/campaigns/%s/offer-mapping-entries", c.campaignID)
	query := url.Values{}
	query.Set("limit", strconv.Itoa(offerMappingsPageLimit))
	if pageToken != "" {
		query.Set("page_token", pageToken)
	}

	var response dto.OfferMappingsResponse
	if err := c.do(ctx, http.MethodGet, endpoint, query, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) SubmitStocks(ctx context.Context, batch []pipeline.StockRecord) error {
	request := dto.UpdateStocksRequest{Skus: make([]dto.Sku, 0, len(batch))}
	for _, record := range batch {
		warehouseID := record.WarehouseID
		if warehouseID == "" {
			warehouseID = c.warehouseID
		}
		updatedAt := record.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = c.now()
		}
		request.Skus = append(request.Skus, dto.Sku{
			Sku:         record.OfferID,
			WarehouseID: warehouseID,
			Items: []dto.StockItem{
				{
					Count:     record.Stock,
					Type:      "FIT",
					UpdatedAt: updatedAt.UTC().Truncate(time.Second).Format(time.RFC3339),
				},
			},
		})
	}
	endpoint := fmt.Sprintf("/campaigns/%s/offers/stocks", c.campaignID)
	return c.do(ctx, http.MethodPut, endpoint, nil, request, nil)
}

func (c *Client) SubmitPrices(ctx context.Context, batch []pipeline.PriceRecord) error {
	request := dto.UpdatePricesRequest{Offers: make([]dto.OfferPrice, 0, len(batch))}
	for _, record := range batch {
		value, err := strconv.Atoi(record.Price)
		if err != nil {
			return fmt.Errorf("price %q for offer %s: %w", record.Price, record.OfferID, err)
		}
		request.Offers = append(request.Offers, dto.OfferPrice{
			ID: record.OfferID,
			Price: dto.Price{
				Value:      value,
				CurrencyID: "RUR",
			},
		})
	}
	endpoint := fmt.Sprintf("/campaigns/%s/offer-prices/updates", c.campaignID)
	return c.do(ctx, http.MethodPost, endpoint, nil, request, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling %s request: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	requestURL := c.host + endpoint
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return err
	}
	c.auth.SetApiKey(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	metrics.RecordRequest(c.name, endpoint, resp.StatusCode, time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return apierror.New(c.name, endpoint, resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s response: %w", endpoint, err)
		}
	}
	return nil
}
