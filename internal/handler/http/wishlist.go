package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fashionkart/storefront/internal/domain"
	"github.com/fashionkart/storefront/internal/wishlist"
	"github.com/fashionkart/storefront/pkg/httputil"
	"github.com/fashionkart/storefront/pkg/validator"
)

// WishlistHandler handles HTTP requests for the wishlist store.
type WishlistHandler struct {
	store  *wishlist.Store
	logger *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(store *wishlist.Store, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{store: store, logger: logger}
}

// AddWishlistRequest is the JSON request body for adding a product.
type AddWishlistRequest struct {
	Product domain.Product `json:"product" validate:"required"`
}

type wishlistView struct {
	Items      []domain.Product `json:"items"`
	TotalItems int              `json:"total_items"`
}

func (h *WishlistHandler) view() wishlistView {
	return wishlistView{
		Items:      h.store.Items(),
		TotalItems: h.store.TotalItems(),
	}
}

// Get handles GET /api/v1/wishlist
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// AddItem handles POST /api/v1/wishlist/items
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddWishlistRequest
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

	h.store.Add(r.Context(), req.Product)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// Contains handles GET /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]bool{
		"in_wishlist": h.store.Contains(productID),
	}})
}

// RemoveItem handles DELETE /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	h.store.Remove(r.Context(), productID)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// Clear handles DELETE /api/v1/wishlist
func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.store.Clear(r.Context())

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}
