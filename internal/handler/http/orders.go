package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fashionkart/storefront/internal/cart"
	"github.com/fashionkart/storefront/internal/domain"
	"github.com/fashionkart/storefront/internal/orders"
	"github.com/fashionkart/storefront/pkg/httputil"
	"github.com/fashionkart/storefront/pkg/validator"
)

// OrdersHandler handles HTTP requests for checkout and order history.
type OrdersHandler struct {
	service *orders.Service
	cart    *cart.Store
	logger  *slog.Logger
}

// NewOrdersHandler creates a new orders HTTP handler.
func NewOrdersHandler(svc *orders.Service, cartStore *cart.Store, logger *slog.Logger) *OrdersHandler {
	return &OrdersHandler{service: svc, cart: cartStore, logger: logger}
}

// PlaceOrderRequest is the JSON request body for checkout. The order lines
// are built server-side from the cart snapshot; the caller supplies only the
// shipping address.
type PlaceOrderRequest struct {
	Street  string `json:"street" validate:"required,min=3,max=200"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required,min=4,max=10"`
	Phone   string `json:"phone" validate:"required,min=7,max=15"`
}

// UpdateOrderRequest is the JSON request body for changing shipping details.
type UpdateOrderRequest struct {
	Street string `json:"street" validate:"required,min=3,max=200"`
	Phone  string `json:"phone" validate:"required,min=7,max=15"`
}

// Place handles POST /api/v1/orders. On success the cart is cleared, the same
// sequencing the checkout flow always had.
func (h *OrdersHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	items := h.cart.Items()
	if len(items) == 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "cart is empty"},
		})
		return
	}

	lines := make([]domain.OrderProduct, 0, len(items))
	for _, item := range items {
		lines = append(lines, domain.OrderProduct{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Price:     item.Product.UnitPrice(),
		})
	}

	input := orders.PlaceInput{
		Products:    lines,
		TotalAmount: h.cart.TotalPrice(),
		ShippingAddress: domain.ShippingAddress{
			Street:  req.Street,
			City:    req.City,
			State:   req.State,
			Pincode: req.Pincode,
			Phone:   req.Phone,
		},
	}

	result, err := h.service.Place(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.cart.Clear(r.Context())

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// List handles GET /api/v1/orders
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"orders": list,
	}})
}

// UpdateShipping handles PUT /api/v1/orders/{orderId}
func (h *OrdersHandler) UpdateShipping(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var req UpdateOrderRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.UpdateShipping(r.Context(), orderID, req.Street, req.Phone); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "updated"}})
}

// Cancel handles DELETE /api/v1/orders/{orderId}
func (h *OrdersHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	if err := h.service.Cancel(r.Context(), orderID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cancelled"}})
}
