// Package orders wraps the platform's consumer order endpoints.
package orders

import (
	"context"
	"log/slog"

	"github.com/fashionkart/storefront/internal/api"
	"github.com/fashionkart/storefront/internal/domain"
	apperrors "github.com/fashionkart/storefront/pkg/errors"
)

// PlaceInput is an order request built from the cart contents at checkout.
type PlaceInput struct {
	Products        []domain.OrderProduct  `json:"products" validate:"required,min=1,dive"`
	TotalAmount     float64                `json:"totalAmount" validate:"gte=0"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress" validate:"required"`
}

// PlaceResult reports a successfully placed order. PaymentLink, when present,
// points to an external payment page the view layer should open.
type PlaceResult struct {
	OrderID     string `json:"order_id,omitempty"`
	PaymentLink string `json:"payment_link,omitempty"`
}

// Service is the orders client.
type Service struct {
	client *api.Client
	logger *slog.Logger
}

// NewService creates an orders service over the platform API client.
func NewService(client *api.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Place submits an order. The caller clears the cart on success.
func (s *Service) Place(ctx context.Context, input PlaceInput) (*PlaceResult, error) {
	resp := s.client.Post(ctx, "/consumer/placeorder", input)

	if err := rejection(resp, "place order"); err != nil {
		return nil, err
	}

	var result struct {
		ID          string `json:"_id"`
		OrderID     string `json:"orderId"`
		PaymentLink string `json:"payment_link"`
	}
	if err := resp.JSON(&result); err != nil {
		// The order went through; only the confirmation body was odd.
		s.logger.Warn("unparseable place-order response",
			slog.String("error", err.Error()),
		)
		return &PlaceResult{}, nil
	}

	orderID := result.OrderID
	if orderID == "" {
		orderID = result.ID
	}
	return &PlaceResult{OrderID: orderID, PaymentLink: result.PaymentLink}, nil
}

// List fetches the account's orders. Accepts both the {"orders": [...]}
// envelope and a bare array, which the platform has served interchangeably.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	resp := s.client.Get(ctx, "/consumer/getallorders")

	if err := rejection(resp, "list orders"); err != nil {
		return nil, err
	}

	var envelope struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := resp.JSON(&envelope); err == nil && envelope.Orders != nil {
		return envelope.Orders, nil
	}

	var bare []domain.Order
	if err := resp.JSON(&bare); err != nil {
		return nil, apperrors.Wrap(err, "decode orders")
	}
	return bare, nil
}

// UpdateShipping changes the street and phone of a placed order.
func (s *Service) UpdateShipping(ctx context.Context, orderID, street, phone string) error {
	resp := s.client.Put(ctx, "/consumer/updateorder/"+orderID, map[string]any{
		"shippingAddress": map[string]string{
			"street": street,
			"phone":  phone,
		},
	})
	return rejection(resp, "update order")
}

// Cancel cancels a placed order. The endpoint spelling is the platform's.
func (s *Service) Cancel(ctx context.Context, orderID string) error {
	resp := s.client.Delete(ctx, "/consumer/cancleorder/"+orderID)
	return rejection(resp, "cancel order")
}

// rejection maps a non-OK descriptor to the matching application error.
func rejection(resp *api.Response, op string) error {
	switch {
	case resp.OK:
		return nil
	case resp.Fallback():
		return apperrors.Unavailable("backend not available, please try again later")
	case resp.AuthRequired:
		return apperrors.Unauthorized("authentication required")
	default:
		return apperrors.InvalidInput("failed to " + op)
	}
}
