// Package cart holds the shopping cart entry model. A cart line is keyed by
// the (product, color, size) triple; the aggregate logic lives in the cart
// service.
package cart

import (
	"fmt"
	"time"
)

// Entry is one cart line. Display fields are denormalized at add time and
// not refreshed from the catalog; the unit price is the price the visitor
// saw when adding.
type Entry struct {
	ProductID   string    `json:"product_id"`
	ColorID     string    `json:"color_id"`
	SizeID      string    `json:"size_id"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	ProductName string    `json:"product_name"`
	ImageURL    string    `json:"image_url"`
	AddedAt     time.Time `json:"added_at"`
}

// Key uniquely identifies the line within a cart.
func (e Entry) Key() string {
	return EntryKey(e.ProductID, e.ColorID, e.SizeID)
}

// EntryKey builds the composite line key.
func EntryKey(productID, colorID, sizeID string) string {
	return fmt.Sprintf("%s/%s/%s", productID, colorID, sizeID)
}

// LineTotal is the entry's contribution to the subtotal.
func (e Entry) LineTotal() float64 {
	return e.UnitPrice * float64(e.Quantity)
}
