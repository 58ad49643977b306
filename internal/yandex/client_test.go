package yandex

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Evgeny1337/seller-apis/internal/pipeline"
	"github.com/Evgeny1337/seller-apis/internal/yandex/dto"
	"github.com/Evgeny1337/seller-apis/pkg/apierror"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	opts = append([]Option{WithHost(server.URL)}, opts...)
	return NewClient("yandex-fbs", "cmp-1", "wh-1", "token-1", io.Discard, opts...)
}

func TestClient_FetchOfferIDs_Paginated(t *testing.T) {
	var tokens []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/campaigns/cmp-1/offer-mapping-entries", r.URL.Path)
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		require.Equal(t, "200", r.URL.Query().Get("limit"))
		tokens = append(tokens, r.URL.Query().Get("page_token"))

		response := dto.OfferMappingsResponse{}
		if r.URL.Query().Get("page_token") == "" {
			response.Result.OfferMappingEntries = []dto.OfferMappingEntry{
				{Offer: dto.Offer{ShopSku: "A1"}},
				{Offer: dto.Offer{ShopSku: "A2"}},
			}
			response.Result.Paging.NextPageToken = "next-1"
		} else {
			response.Result.OfferMappingEntries = []dto.OfferMappingEntry{
				{Offer: dto.Offer{ShopSku: "A3"}},
			}
		}
		json.NewEncoder(w).Encode(response)
	}))

	offerIDs, err := client.FetchOfferIDs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"A1", "A2", "A3"}, offerIDs)
	assert.Equal(t, []string{"", "next-1"}, tokens)
}

func TestClient_SubmitStocks(t *testing.T) {
	fixed := time.Date(2024, 5, 17, 10, 30, 45, 123456789, time.UTC)

	var got dto.UpdateStocksRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/campaigns/cmp-1/offers/stocks", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{}`))
	}), WithClock(func() time.Time { return fixed }))

	err := client.SubmitStocks(context.Background(), []pipeline.StockRecord{
		{OfferID: "A1", Stock: 100},
		{OfferID: "A2", Stock: 0, WarehouseID: "wh-override"},
	})
	require.NoError(t, err)

	require.Len(t, got.Skus, 2)
	assert.Equal(t, "A1", got.Skus[0].Sku)
	assert.Equal(t, "wh-1", got.Skus[0].WarehouseID)
	require.Len(t, got.Skus[0].Items, 1)
	assert.Equal(t, 100, got.Skus[0].Items[0].Count)
	assert.Equal(t, "FIT", got.Skus[0].Items[0].Type)
	assert.Equal(t, "2024-05-17T10:30:45Z", got.Skus[0].Items[0].UpdatedAt)

	assert.Equal(t, "wh-override", got.Skus[1].WarehouseID)
	assert.Equal(t, 0, got.Skus[1].Items[0].Count)
}

func TestClient_SubmitPrices(t *testing.T) {
	var got dto.UpdatePricesRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/campaigns/cmp-1/offer-prices/updates", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{}`))
	}))

	err := client.SubmitPrices(context.Background(), []pipeline.PriceRecord{
		{OfferID: "A1", Price: "5990"},
	})
	require.NoError(t, err)

	require.Len(t, got.Offers, 1)
	assert.Equal(t, "A1", got.Offers[0].ID)
	assert.Equal(t, dto.Price{Value: 5990, CurrencyID: "RUR"}, got.Offers[0].Price)
}

func TestClient_RemoteError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"code":"LOCKED"}]}`, http.StatusLocked)
	}))

	err := client.SubmitPrices(context.Background(), []pipeline.PriceRecord{{OfferID: "A1", Price: "10"}})
	require.Error(t, err)

	var remoteErr *apierror.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusLocked, remoteErr.StatusCode)
	assert.Equal(t, "yandex-fbs", remoteErr.Marketplace)
}

func TestClient_BatchSizes(t *testing.T) {
	client := NewClient("yandex-dbs", "cmp-2", "wh-2", "token", io.Discard)
	assert.Equal(t, 2000, client.StockBatchSize())
	assert.Equal(t, 500, client.PriceBatchSize())
}
