// Package order holds customer orders ("sales" in back-office terms).
package order

import "time"

// Order status values.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Order is one placed sale.
type Order struct {
	ID         string
	CustomerID string
	Status     string
	Lines      []Line
	Total      float64
	PlacedAt   time.Time
	UpdatedAt  time.Time
}

// Line is one purchased variant. Display fields are denormalized at order
// time so the record survives later catalog edits.
type Line struct {
	ProductID   string
	ProductName string
	ColorID     string
	SizeID      string
	Quantity    int
	UnitPrice   float64
}

// transitions maps each status to the statuses an admin may move it to.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
