package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kariqs/amexan-storefront/api"
	"github.com/Kariqs/amexan-storefront/models"
	"github.com/Kariqs/amexan-storefront/storage"
	"github.com/Kariqs/amexan-storefront/stores"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeShop(t *testing.T) *httptest.Server {
	t.Helper()
	reply := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, models.ApiProductPage{
			Content: []models.ApiProduct{
				{ID: "p1", Name: "Linen Shirt", Brand: models.ApiBrand{Name: "Amexan"}, Price: 30000,
					Category: models.ApiCategory{ID: "tops"}, ReviewCount: 10},
				{ID: "p2", Name: "Wool Coat", Brand: models.ApiBrand{Name: "Mori"}, Price: 210000,
					Category: models.ApiCategory{ID: "outer"}, ReviewCount: 3},
			},
			TotalElements: 2,
			TotalPages:    1,
			Size:          12,
		})
	})
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, models.AuthResponse{Token: "opaque", ID: "u1", Name: "Mina", Email: "mina@example.com"})
	})
	mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(api.IdempotencyHeader) == "" {
			reply(w, http.StatusBadRequest, map[string]string{"message": "missing idempotency key"})
			return
		}
		var body struct {
			TotalAmount int64 `json:"totalAmount"`
			ShippingFee int64 `json:"shippingFee"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		reply(w, http.StatusCreated, models.Order{
			ID:          "o1",
			OrderNumber: "ORD1",
			OrderStatus: models.OrderPending,
			TotalAmount: body.TotalAmount,
			ShippingFee: body.ShippingFee,
			CreatedAt:   time.Now(),
		})
	})
	mux.HandleFunc("PATCH /orders/{id}/cancel", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mem := storage.NewMemoryStorage()
	client := api.NewClient(fakeShop(t).URL, api.WithTokenStorage(mem))
	sf := stores.NewStorefront(stores.Deps{Client: client, Storage: mem})
	require.NoError(t, sf.Initialize(context.Background()))

	server := gin.New()
	Register(server, sf)
	return server
}

func call(t *testing.T, server *gin.Engine, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func TestCheckoutFlow(t *testing.T) {
	server := newTestServer(t)

	code, _ := call(t, server, http.MethodPost, "/catalog/refresh", nil)
	require.Equal(t, http.StatusOK, code)

	code, body := call(t, server, http.MethodPost, "/cart/items", gin.H{"productId": "p1", "quantity": 1})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Linen Shirt added to cart", body["message"])

	code, body = call(t, server, http.MethodPost, "/cart/items", gin.H{"productId": "p1", "quantity": 1})
	require.Equal(t, http.StatusCreated, code)
	cart := body["cart"].(map[string]any)
	assert.EqualValues(t, 2, cart["totalItems"])
	assert.Equal(t, "60,000원", cart["formattedTotal"])

	code, _ = call(t, server, http.MethodPost, "/checkout", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = call(t, server, http.MethodPost, "/auth/login", gin.H{"email": "mina@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, code)

	code, body = call(t, server, http.MethodPost, "/checkout/submit", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "start checkout before submitting an order.", body["message"])

	code, body = call(t, server, http.MethodPost, "/checkout", nil)
	require.Equal(t, http.StatusCreated, code)
	draft := body["draft"].(map[string]any)
	assert.EqualValues(t, 60000, draft["totalAmount"])
	assert.EqualValues(t, 0, draft["shippingFee"])

	code, _ = call(t, server, http.MethodPut, "/checkout/shipping", gin.H{
		"recipient": "Mina", "phone": "010-1234-5678", "zipCode": "04524", "address": "Seoul",
	})
	require.Equal(t, http.StatusOK, code)

	code, _ = call(t, server, http.MethodPut, "/checkout/payment", gin.H{"paymentMethod": "BITCOIN"})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = call(t, server, http.MethodPut, "/checkout/payment", gin.H{"paymentMethod": "NAVER PAY"})
	require.Equal(t, http.StatusOK, code)

	code, body = call(t, server, http.MethodPost, "/checkout/submit", nil)
	require.Equal(t, http.StatusCreated, code)
	order := body["order"].(map[string]any)
	assert.Equal(t, "o1", order["id"])

	_, body = call(t, server, http.MethodGet, "/cart", nil)
	assert.EqualValues(t, 0, body["cart"].(map[string]any)["totalItems"])

	code, _ = call(t, server, http.MethodPatch, "/orders/o1/cancel", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(t, server, http.MethodPatch, "/orders/o1/cancel", nil)
	assert.Equal(t, http.StatusConflict, code)
	code, _ = call(t, server, http.MethodPatch, "/orders/missing/cancel", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCatalogEndpoints(t *testing.T) {
	server := newTestServer(t)
	code, _ := call(t, server, http.MethodPost, "/catalog/refresh", nil)
	require.Equal(t, http.StatusOK, code)

	code, body := call(t, server, http.MethodPut, "/catalog/sort", gin.H{"sortOption": "price-high"})
	require.Equal(t, http.StatusOK, code)
	products := body["catalog"].(map[string]any)["products"].([]any)
	require.Len(t, products, 2)
	assert.Equal(t, "p2", products[0].(map[string]any)["id"])

	code, _ = call(t, server, http.MethodPut, "/catalog/sort", gin.H{"sortOption": "cheapest"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = call(t, server, http.MethodPut, "/catalog/filters", gin.H{"brands": []string{"Amexan"}})
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["catalog"].(map[string]any)["products"], 1)

	_, body = call(t, server, http.MethodGet, "/catalog/search?q=wool", nil)
	assert.EqualValues(t, 1, body["total"])

	code, body = call(t, server, http.MethodGet, "/products/p1", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["inWishlist"])

	_, body = call(t, server, http.MethodPost, "/wishlist/p1", nil)
	assert.Equal(t, true, body["inWishlist"])

	_, body = call(t, server, http.MethodGet, "/recently-viewed", nil)
	assert.Equal(t, []any{"p1"}, body["recentlyViewed"])
}
