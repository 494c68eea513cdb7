package domain

// DefaultSize is the size applied when a cart operation does not name one.
const DefaultSize = "M"

// CartItem is a single cart entry. Entries are keyed by (product id, size):
// at most one entry exists per pair, and adding the same pair again increments
// the quantity instead of duplicating.
type CartItem struct {
	Product  Product `json:"product"`
	Size     string  `json:"size"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns unit price times quantity for this entry.
func (i CartItem) Subtotal() float64 {
	return i.Product.UnitPrice() * float64(i.Quantity)
}
