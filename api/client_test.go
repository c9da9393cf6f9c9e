package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kariqs/amexan-storefront/models"
	"github.com/Kariqs/amexan-storefront/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, models.User{ID: "u1", Name: "Mina"})
	}))
	defer srv.Close()

	ctx := context.Background()
	store := storage.NewMemoryStorage()
	c := NewClient(srv.URL, WithTokenStorage(store))
	c.SetToken(ctx, "tok-123")

	user, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mina", user.Name)
	assert.Equal(t, "Bearer tok-123", gotAuth)

	persisted, err := store.Load(ctx, TokenNamespace)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", string(persisted))
}

func TestClientUnauthorizedClearsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
	}))
	defer srv.Close()

	ctx := context.Background()
	store := storage.NewMemoryStorage()
	fired := 0
	c := NewClient(srv.URL, WithTokenStorage(store), WithUnauthorizedHandler(func() { fired++ }))
	c.SetToken(ctx, "stale")

	_, err := c.CurrentUser(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "token expired", apiErr.Message)

	assert.Empty(t, c.Token())
	assert.Equal(t, 1, fired)
	_, err = store.Load(ctx, TokenNamespace)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestClientRestoreToken(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	require.NoError(t, store.Save(ctx, TokenNamespace, []byte("saved")))

	c := NewClient("", WithTokenStorage(store))
	token, err := c.RestoreToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "saved", token)
	assert.Equal(t, "saved", c.Token())
}

func TestCreateOrderSendsIdempotencyKey(t *testing.T) {
	var gotKey string
	var gotBody createOrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		gotKey = r.Header.Get(IdempotencyHeader)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusCreated, models.Order{ID: "o1", OrderStatus: models.OrderPending, TotalAmount: gotBody.TotalAmount})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	order, err := c.CreateOrder(context.Background(), models.OrderDraft{
		TotalAmount:    42000,
		ShippingFee:    3000,
		PaymentMethod:  models.PaymentCard,
		IdempotencyKey: "key-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, int64(42000), order.TotalAmount)
	assert.Equal(t, "key-1", gotKey)
	assert.Equal(t, models.PaymentCard, gotBody.PaymentMethod)
}

func TestProductsQueryAndPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "tops", r.URL.Query().Get("category"))
		assert.Empty(t, r.URL.Query().Get("brand"))
		writeJSON(w, http.StatusOK, models.ApiProductPage{
			Content:       []models.ApiProduct{{ID: "p1", Brand: models.ApiBrand{Name: "Amexan"}, Category: models.ApiCategory{ID: "tops"}}},
			TotalElements: 13,
			TotalPages:    2,
			Number:        1,
			Size:          12,
		})
	}))
	defer srv.Close()

	page, err := NewClient(srv.URL).Products(context.Background(), models.ProductQuery{Page: 2, Category: "tops"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 13, page.Total)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Amexan", page.Products[0].Brand)
}

func TestAPIErrorFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).CancelOrder(context.Background(), "o1")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}
