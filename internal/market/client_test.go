package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoAssetsJSON = `[
  {"id":"bitcoin","symbol":"btc","name":"Bitcoin","image":"https://img/btc.png",
   "current_price":61234.5,"market_cap":1200000000000,"market_cap_rank":1,
   "total_volume":35000000000,"high_24h":62000,"low_24h":60000,
   "price_change_percentage_24h":-1.25,"circulating_supply":19700000,
   "ath":73000,"atl":67.81},
  {"id":"ethereum","symbol":"eth","name":"Ethereum","image":"https://img/eth.png",
   "current_price":3000.1,"market_cap":null,"market_cap_rank":2,
   "total_volume":15000000000,"high_24h":3100,"low_24h":2900,
   "price_change_percentage_24h":2.5,"circulating_supply":120000000,
   "ath":4800,"atl":0.43}
]`

func setupTestServer(t *testing.T, status int, body string) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/markets", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client := NewClientWithResty(ClientConfig{BaseURL: server.URL}, resty.NewWithClient(server.Client()))
	return server, client
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(ClientConfig{})
	cfg := c.Config()

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultVsCurrency, cfg.VsCurrency)
	assert.Equal(t, DefaultPerPage, cfg.PerPage)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestFetchAssets_Success(t *testing.T) {
	_, client := setupTestServer(t, http.StatusOK, twoAssetsJSON)

	assets, err := client.FetchAssets(context.Background())
	require.NoError(t, err)
	require.Len(t, assets, 2)

	btc := assets[0]
	assert.Equal(t, "bitcoin", btc.ID)
	assert.Equal(t, "Bitcoin", btc.Name)
	assert.Equal(t, "btc", btc.Symbol)
	assert.InDelta(t, 61234.5, btc.CurrentPrice, 1e-9)
	assert.InDelta(t, -1.25, btc.PriceChangePercentage24h, 1e-9)
	assert.Equal(t, 1, btc.MarketCapRank)
	assert.InDelta(t, 67.81, btc.ATL, 1e-9)

	// null numeric fields decode to zero
	assert.Zero(t, assets[1].MarketCap)
}

func TestFetchAssets_QueryParameters(t *testing.T) {
	var gotCurrency, gotPerPage, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCurrency = r.URL.Query().Get("vs_currency")
		gotPerPage = r.URL.Query().Get("per_page")
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClientWithResty(ClientConfig{
		BaseURL:    server.URL,
		VsCurrency: "usd",
		PerPage:    10,
		UserAgent:  "cryptoboard/test",
	}, resty.NewWithClient(server.Client()))

	assets, err := client.FetchAssets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, assets)
	assert.Equal(t, "usd", gotCurrency)
	assert.Equal(t, "10", gotPerPage)
	assert.Equal(t, "cryptoboard/test", gotUA)
}

func TestFetchAssets_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind FetchKind
		wantErr  error
	}{
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     `{"error":"boom"}`,
			wantKind: FetchKindStatus,
		},
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			body:     `{"status":{"error_code":429}}`,
			wantKind: FetchKindStatus,
		},
		{
			name:     "not json",
			status:   http.StatusOK,
			body:     `<html>maintenance</html>`,
			wantKind: FetchKindDecode,
		},
		{
			name:     "object instead of array",
			status:   http.StatusOK,
			body:     `{"id":"bitcoin"}`,
			wantKind: FetchKindDecode,
		},
		{
			name:     "null payload",
			status:   http.StatusOK,
			body:     `null`,
			wantKind: FetchKindDecode,
		},
		{
			name:     "wrong field type",
			status:   http.StatusOK,
			body:     `[{"id":"bitcoin","name":"Bitcoin","current_price":"cheap"}]`,
			wantKind: FetchKindDecode,
		},
		{
			name:     "missing id",
			status:   http.StatusOK,
			body:     `[{"name":"Bitcoin"}]`,
			wantKind: FetchKindDecode,
			wantErr:  ErrMissingID,
		},
		{
			name:     "missing name",
			status:   http.StatusOK,
			body:     `[{"id":"bitcoin","name":"Bitcoin"},{"id":"ethereum"}]`,
			wantKind: FetchKindDecode,
			wantErr:  ErrMissingName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := setupTestServer(t, tt.status, tt.body)

			assets, err := client.FetchAssets(context.Background())
			require.Error(t, err)
			assert.Nil(t, assets)
			assert.ErrorIs(t, err, ErrFetch)

			var fetchErr *FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, tt.wantKind, fetchErr.Kind)
			if tt.wantKind == FetchKindStatus {
				assert.Equal(t, tt.status, fetchErr.StatusCode)
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestFetchAssets_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	url := server.URL
	server.Close()

	client := NewClientWithResty(ClientConfig{BaseURL: url, Timeout: time.Second}, resty.New())
	_, err := client.FetchAssets(context.Background())

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, FetchKindNetwork, fetchErr.Kind)
}

func TestFetchAssets_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClientWithResty(ClientConfig{BaseURL: server.URL}, resty.NewWithClient(server.Client()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchAssets(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, FetchKindNetwork, fetchErr.Kind)
}

func TestFetchKind_String(t *testing.T) {
	assert.Equal(t, "network", FetchKindNetwork.String())
	assert.Equal(t, "status", FetchKindStatus.String())
	assert.Equal(t, "decode", FetchKindDecode.String())
	assert.Equal(t, "unknown", FetchKind(42).String())
}

func TestFindByID(t *testing.T) {
	assets := []Asset{{ID: "bitcoin", Name: "Bitcoin"}, {ID: "ethereum", Name: "Ethereum"}}

	got, ok := FindByID(assets, "ethereum")
	assert.True(t, ok)
	assert.Equal(t, "Ethereum", got.Name)

	_, ok = FindByID(assets, "dogecoin")
	assert.False(t, ok)
}
