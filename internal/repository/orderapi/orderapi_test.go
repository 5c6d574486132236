package orderapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ibeloyar/oilcheckout/internal/model"
	"github.com/ibeloyar/oilcheckout/pgk/retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(address string) *Client {
	return New(address, retryablehttp.NewRetryableClient(retryablehttp.RetryConfig{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
		MaxJitter:  time.Millisecond,
	}))
}

func TestClient_FetchOrder_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/checkout/order", r.URL.Path)
		assert.Equal(t, "Bearer order-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"shop_id":"shop-1","quantity_liters":1000}}`))
	}))
	defer server.Close()

	raw, err := newTestClient(server.URL).FetchOrder(context.Background(), "order-token")

	require.NoError(t, err)
	assert.Equal(t, "shop-1", raw["shop_id"])
	assert.Equal(t, float64(1000), raw["quantity_liters"])
}

func TestClient_FetchShopConfig_PathAndNoEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shops/shop 1/config", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Write([]byte(`{"shop_id":"shop 1","data":{"x":1}}`))
	}))
	defer server.Close()

	raw, err := newTestClient(server.URL+"/").FetchShopConfig(context.Background(), "shop 1")

	require.NoError(t, err)
	assert.Equal(t, "shop 1", raw["shop_id"])
	assert.Contains(t, raw, "data")
}

func TestClient_FetchBankData_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shops/shop-1/bank-data", r.URL.Path)
		w.Write([]byte(`{"iban":"DE89370400440532013000"}`))
	}))
	defer server.Close()

	raw, err := newTestClient(server.URL).FetchBankData(context.Background(), "shop-1")

	require.NoError(t, err)
	assert.Equal(t, "DE89370400440532013000", raw["iban"])
}

func TestClient_StatusMapping(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		body      string
		sentinel  error
		kind      model.ErrorKind
		message   string
		wantCalls int32
	}{
		{"unauthorized is not retried", http.StatusUnauthorized, `{"message":"token expired"}`, model.ErrTokenExpired, model.KindTokenExpired, "token expired", 1},
		{"bad request", http.StatusBadRequest, `{"error":"zip invalid"}`, model.ErrUpstreamValidation, model.KindValidation, "zip invalid", 1},
		{"not found", http.StatusNotFound, "", model.ErrAPI, model.KindAPI, "Not Found", 1},
		{"server error is retried", http.StatusInternalServerError, "boom", model.ErrServer, model.KindServer, "", 3},
		{"bad gateway is retried", http.StatusBadGateway, "", model.ErrServer, model.KindServer, "", 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).FetchOrder(context.Background(), "token")

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.sentinel)

			var remoteErr *model.RemoteError
			require.True(t, errors.As(err, &remoteErr))
			assert.Equal(t, tc.kind, remoteErr.Kind)
			assert.Equal(t, tc.status, remoteErr.StatusCode)
			if tc.message != "" {
				assert.Equal(t, tc.message, remoteErr.Message)
			}
			assert.Equal(t, tc.wantCalls, calls.Load())
		})
	}
}

func TestClient_TooManyRequests_RetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchShopConfig(context.Background(), "shop-1")

	var remoteErr *model.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, model.KindAPI, remoteErr.Kind)
	assert.Equal(t, http.StatusTooManyRequests, remoteErr.StatusCode)
	assert.Equal(t, time.Duration(0), remoteErr.RetryAfter)
}

func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	address := server.URL
	server.Close()

	_, err := newTestClient(address).FetchShopConfig(context.Background(), "shop-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNetwork)

	var remoteErr *model.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, model.KindNetwork, remoteErr.Kind)
	assert.False(t, remoteErr.Retryable())
}

func TestClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).FetchOrder(ctx, "token")

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, model.ErrNetwork)
}

func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchOrder(context.Background(), "token")

	assert.ErrorIs(t, err, model.ErrAPI)
}

func TestClient_SubmitOrder_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "Bearer order-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload model.OrderSubmission
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Max", payload.Customer.FirstName)
		assert.Equal(t, "shop-1", payload.Order.ShopID)
		assert.Equal(t, model.PaymentMethodVorkasse, payload.Order.PaymentMethod)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"order_number":"HO-1001"}`))
	}))
	defer server.Close()

	payload := model.OrderSubmission{
		Customer: model.Customer{FirstName: "Max"},
		Order: model.OrderSubmissionLine{
			ShopID:        "shop-1",
			PaymentMethod: model.PaymentMethodVorkasse,
		},
	}

	result, err := newTestClient(server.URL).SubmitOrder(context.Background(), "order-token", payload)

	require.NoError(t, err)
	assert.Equal(t, "HO-1001", result["order_number"])
}

func TestClient_SubmitOrder_NotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SubmitOrder(context.Background(), "token", model.OrderSubmission{})

	assert.ErrorIs(t, err, model.ErrServer)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_SubmitOrder_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).SubmitOrder(context.Background(), "token", model.OrderSubmission{})

	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestUnwrapData(t *testing.T) {
	inner := map[string]any{"shop_id": "s"}

	assert.Equal(t, inner, unwrapData(map[string]any{"data": inner}))
	assert.Equal(t, map[string]any{"data": "text"}, unwrapData(map[string]any{"data": "text"}))
	assert.Equal(t, map[string]any{}, unwrapData(map[string]any{}))
}
