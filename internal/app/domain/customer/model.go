// Package customer holds shop account records.
package customer

import "time"

// Customer is a registered shop account.
type Customer struct {
	ID          string
	DisplayName string
	Username    string
	Email       string
	IsAdmin     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
