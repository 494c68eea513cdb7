package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fashionkart/storefront/internal/account"
	"github.com/fashionkart/storefront/internal/api"
	"github.com/fashionkart/storefront/internal/cart"
	"github.com/fashionkart/storefront/internal/catalog"
	"github.com/fashionkart/storefront/internal/notify"
	"github.com/fashionkart/storefront/internal/orders"
	filestore "github.com/fashionkart/storefront/internal/storage/file"
	"github.com/fashionkart/storefront/internal/wishlist"
	"github.com/fashionkart/storefront/pkg/health"
	"github.com/fashionkart/storefront/pkg/middleware"
)

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupRouter wires the production route layout over real stores backed by a
// temp directory, with the platform API served by the given handler. A nil
// platform handler simulates an unreachable backend.
func setupRouter(t *testing.T, platform http.HandlerFunc) http.Handler {
	t.Helper()

	var srv *httptest.Server
	if platform == nil {
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()
	} else {
		srv = httptest.NewServer(platform)
		t.Cleanup(srv.Close)
	}

	fs, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	logger := testLogger()
	ctx := context.Background()
	notices := notify.NewQueue(10)
	client := api.New(srv.URL, logger)

	return NewRouter(Deps{
		Cart:     cart.New(ctx, fs, logger),
		Wishlist: wishlist.New(ctx, fs, notices, logger),
		Catalog:  catalog.NewService(client, logger),
		Account:  account.NewService(client, logger),
		Orders:   orders.NewService(client, logger),
		Notices:  notices,
		Health:   health.NewHandler(),
		Logger:   logger,

		CORS:               middleware.CORSConfig{AllowedOrigins: []string{"*"}},
		CatalogCacheMaxAge: 60,
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func addCartItemBody(id, name, price, size string, qty int) map[string]any {
	return map[string]any{
		"product":  map[string]any{"_id": id, "productName": name, "price": price},
		"size":     size,
		"quantity": qty,
	}
}

// ============================================================================
// Cart
// ============================================================================

func TestCartEndpoints_AddAndGet(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", addCartItemBody("p1", "Tee", "100", "L", 2))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	assert.Equal(t, float64(2), data["total_items"])
	assert.Equal(t, float64(200), data["total_price"])
	items := data["items"].([]any)
	require.Len(t, items, 1)
}

func TestCartEndpoints_AddWithoutProductID(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"product":  map[string]any{"productName": "Tee"},
		"quantity": 1,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartEndpoints_SetQuantityAndRemove(t *testing.T) {
	router := setupRouter(t, nil)

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", addCartItemBody("p1", "Tee", "100", "M", 1))

	rec := doJSON(t, router, http.MethodPut, "/api/v1/cart/items/p1/M", map[string]any{"quantity": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(5), decodeData(t, rec)["total_items"])

	// Quantity zero removes the entry.
	rec = doJSON(t, router, http.MethodPut, "/api/v1/cart/items/p1/M", map[string]any{"quantity": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decodeData(t, rec)["total_items"])
}

func TestCartEndpoints_Clear(t *testing.T) {
	router := setupRouter(t, nil)

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", addCartItemBody("p1", "Tee", "100", "M", 3))

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decodeData(t, rec)["total_items"])
}

// ============================================================================
// Wishlist
// ============================================================================

func TestWishlistEndpoints_AddContainsRemove(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/wishlist/items", map[string]any{
		"product": map[string]any{"_id": "p1", "productName": "Tee", "price": "100"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeData(t, rec)["total_items"])

	rec = doJSON(t, router, http.MethodGet, "/api/v1/wishlist/items/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeData(t, rec)["in_wishlist"])

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/wishlist/items/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/wishlist/items/p1", nil)
	assert.Equal(t, false, decodeData(t, rec)["in_wishlist"])
}

func TestNotificationsEndpoint_DrainsWishlistNotices(t *testing.T) {
	router := setupRouter(t, nil)

	doJSON(t, router, http.MethodPost, "/api/v1/wishlist/items", map[string]any{
		"product": map[string]any{"_id": "p1", "productName": "Denim Jacket", "price": "100"},
	})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/notifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	notices := decodeData(t, rec)["notices"].([]any)
	require.Len(t, notices, 1)
	first := notices[0].(map[string]any)
	assert.Equal(t, "Added to wishlist", first["title"])

	// The queue is drained: a second call returns nothing.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/notifications", nil)
	assert.Empty(t, decodeData(t, rec)["notices"])
}

// ============================================================================
// Catalog
// ============================================================================

func TestProductsEndpoint_FallbackWhenBackendDown(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/products?category=Women", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=60")

	data := decodeData(t, rec)
	assert.Equal(t, true, data["fallback"])
}

func TestProductsEndpoint_Online(t *testing.T) {
	router := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"products":[{"_id":"p1","productName":"Shirt","price":"899"}],"total":1}`)
	})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	assert.Equal(t, false, data["fallback"])
}

// ============================================================================
// Orders
// ============================================================================

func TestOrdersEndpoint_EmptyCartRejected(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/orders", map[string]any{
		"street": "12 MG Road", "city": "Pune", "state": "MH",
		"pincode": "411001", "phone": "9876543210",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrdersEndpoint_PlaceClearsCart(t *testing.T) {
	router := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/consumer/placeorder" {
			var input orders.PlaceInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
			require.Len(t, input.Products, 1)
			assert.Equal(t, "p1", input.Products[0].ProductID)
			assert.Equal(t, 2, input.Products[0].Quantity)
			assert.Equal(t, float64(200), input.TotalAmount)
			io.WriteString(w, `{"orderId":"ord-1"}`)
		}
	})

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", addCartItemBody("p1", "Tee", "100", "M", 2))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/orders", map[string]any{
		"street": "12 MG Road", "city": "Pune", "state": "MH",
		"pincode": "411001", "phone": "9876543210",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ord-1", decodeData(t, rec)["order_id"])

	rec = doJSON(t, router, http.MethodGet, "/api/v1/cart", nil)
	assert.Equal(t, float64(0), decodeData(t, rec)["total_items"])
}

func TestOrdersEndpoint_ValidationError(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/orders", map[string]any{
		"street": "x",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Error struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
	assert.NotEmpty(t, envelope.Error.Fields)
}

// ============================================================================
// Auth
// ============================================================================

func TestAuthMe_Relays401(t *testing.T) {
	router := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMe_BackendDownYieldsNullUser(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decodeData(t, rec)["user"])
}

func TestAuthLogin_ValidationError(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email": "not-an-email",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// Health
// ============================================================================

func TestHealthEndpoints(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
