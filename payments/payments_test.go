package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider(t *testing.T) {
	p := NewMockProvider()

	id, err := p.CreateSession(context.Background(), CheckoutRequest{CourseName: "C1"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "cs_test_"))

	paid, err := p.ConfirmSession(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, paid)

	paid, err = p.ConfirmSession(context.Background(), "foreign")
	require.NoError(t, err)
	assert.False(t, paid)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider("", PayPalConfig{})
	require.NoError(t, err)
	assert.Equal(t, "mock", p.Name())

	p, err = NewProvider("paypal", PayPalConfig{})
	require.NoError(t, err)
	assert.Equal(t, "paypal", p.Name())

	_, err = NewProvider("stripe", PayPalConfig{})
	assert.Error(t, err)
}

func fakePayPal(t *testing.T, tokenCalls *int32) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client", user)
		assert.Equal(t, "secret", pass)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "tok", "expires_in": 3600})
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "CAPTURE", body["intent"])
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(PayPalOrder{ID: "ORDER-1", Status: "CREATED"})
	})
	mux.HandleFunc("/v2/checkout/orders/ORDER-1/capture", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(PayPalOrder{ID: "ORDER-1", Status: "COMPLETED"})
	})
	return httptest.NewServer(mux)
}

func TestPayPalProvider(t *testing.T) {
	var tokenCalls int32
	srv := fakePayPal(t, &tokenCalls)
	defer srv.Close()

	p := NewPayPalProvider(PayPalConfig{APIBaseURL: srv.URL, ClientID: "client", ClientSecret: "secret"})

	id, err := p.CreateSession(context.Background(), CheckoutRequest{CourseName: "C1", Amount: 25, Currency: "USD"})
	require.NoError(t, err)
	assert.Equal(t, "ORDER-1", id)

	paid, err := p.ConfirmSession(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, paid)

	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
}

func TestPayPalProviderUnknownOrder(t *testing.T) {
	var tokenCalls int32
	srv := fakePayPal(t, &tokenCalls)
	defer srv.Close()

	p := NewPayPalProvider(PayPalConfig{APIBaseURL: srv.URL, ClientID: "client", ClientSecret: "secret"})
	_, err := p.ConfirmSession(context.Background(), "ORDER-404")
	assert.Error(t, err)
}

func TestTokenCacheRefreshesAfterExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := &tokenCache{now: func() time.Time { return now }}
	calls := 0
	fetch := func(context.Context) (string, int, error) {
		calls++
		return "tok", 600, nil
	}

	for i := 0; i < 3; i++ {
		tok, err := cache.get(context.Background(), fetch)
		require.NoError(t, err)
		assert.Equal(t, "tok", tok)
	}
	assert.Equal(t, 1, calls)

	now = now.Add(301 * time.Second)
	_, err := cache.get(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
