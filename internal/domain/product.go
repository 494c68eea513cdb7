package domain

import "strconv"

// Product is a catalog entry as served by the platform API. The state layer
// treats it as an immutable value: it is snapshotted into the cart and
// wishlist at add time and never mutated locally.
//
// JSON field names follow the platform API wire format, which is also the
// format persisted under the durable storage keys.
type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"productName"`
	Price       string   `json:"price"`
	Brand       string   `json:"brand,omitempty"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"productImage,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Reviews     int      `json:"reviews,omitempty"`
	Discount    float64  `json:"discount,omitempty"`
	InStock     bool     `json:"inStock,omitempty"`
}

// UnitPrice parses the decimal price text. A malformed price yields zero, the
// same lenient behavior the platform's clients rely on.
func (p Product) UnitPrice() float64 {
	v, err := strconv.ParseFloat(p.Price, 64)
	if err != nil {
		return 0
	}
	return v
}
