// Package catalog holds the storefront's merchandising entities.
package catalog

import "time"

// Product is one sellable item. Stock is tracked per color/size variant.
type Product struct {
	ID            string
	Name          string
	Description   string
	BasePrice     float64
	ImageURL      string
	CategoryID    string
	CollectionIDs []string
	IsNew         bool
	IsPublished   bool
	Inventory     []InventoryLevel
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InventoryLevel is the stock of one (color, size) variant of a product.
type InventoryLevel struct {
	ColorID  string
	SizeID   string
	Quantity int
}

// RequiresVariant reports whether the product is sold in color/size variants.
// Products without inventory rows are sold as-is.
func (p Product) RequiresVariant() bool {
	return len(p.Inventory) > 0
}

// VariantInStock reports whether the given variant has stock.
func (p Product) VariantInStock(colorID, sizeID string) bool {
	for _, level := range p.Inventory {
		if level.ColorID == colorID && level.SizeID == sizeID {
			return level.Quantity > 0
		}
	}
	return false
}

// Category groups products in the storefront navigation.
type Category struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Color is a product variant axis.
type Color struct {
	ID        string
	Name      string
	Hex       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Size is a product variant axis.
type Size struct {
	ID        string
	Name      string
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Collection is a curated set of products (seasonal drops, lookbooks).
type Collection struct {
	ID          string
	Name        string
	Slug        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
