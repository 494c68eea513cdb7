package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fashionkart/storefront/internal/cart"
	"github.com/fashionkart/storefront/internal/domain"
	"github.com/fashionkart/storefront/pkg/httputil"
	"github.com/fashionkart/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for the cart store.
type CartHandler struct {
	store  *cart.Store
	logger *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(store *cart.Store, logger *slog.Logger) *CartHandler {
	return &CartHandler{store: store, logger: logger}
}

// AddItemRequest is the JSON request body for adding an item to the cart.
type AddItemRequest struct {
	Product  domain.Product `json:"product" validate:"required"`
	Size     string         `json:"size"`
	Quantity int            `json:"quantity" validate:"gte=0,lte=999"`
}

// SetQuantityRequest is the JSON request body for replacing an item quantity.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0,lte=999"`
}

// cartView is the cart snapshot plus its derived aggregates.
type cartView struct {
	Items      []domain.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice float64           `json:"total_price"`
}

func (h *CartHandler) view() cartView {
	return cartView{
		Items:      h.store.Items(),
		TotalItems: h.store.TotalItems(),
		TotalPrice: h.store.TotalPrice(),
	}
}

// Get handles GET /api/v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if req.Product.ID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "product _id is required"},
		})
		return
	}

	h.store.Add(r.Context(), req.Product, req.Size, req.Quantity)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// SetQuantity handles PUT /api/v1/cart/items/{productId}/{size}
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	size := chi.URLParam(r, "size")

	var req SetQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	h.store.SetQuantity(r.Context(), productID, req.Quantity, size)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}/{size}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	size := chi.URLParam(r, "size")

	h.store.Remove(r.Context(), productID, size)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.store.Clear(r.Context())

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}
