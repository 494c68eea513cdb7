package domain

// Order statuses as reported by the platform API.
const (
	OrderStatusPlaced    = "order_placed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderProduct is one line of a placed order.
type OrderProduct struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Price     float64 `json:"price"`
}

// ShippingAddress is the delivery address attached to an order.
type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
	Phone   string `json:"phone"`
}

// Order is a placed order as returned by the platform API.
type Order struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"userId"`
	Products        []OrderProduct  `json:"products"`
	TotalAmount     float64         `json:"totalAmount"`
	Status          string          `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}
