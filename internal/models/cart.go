package models

import "time"

// LineItem is a product snapshot copied into the cart when it was added.
// LineID and AddedAt are absent on carts written by older clients.
type LineItem struct {
	Product
	LineID  string     `json:"line_id,omitempty"`
	AddedAt *time.Time `json:"added_at,omitempty"`
}
