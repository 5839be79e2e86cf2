package entity

import (
	"time"
)

// Order is a customer's cart. An order with Status true is the single open
// cart for its customer; checkout flips Status to false, which is terminal.
type Order struct {
	OrderID      int64  // Serial primary key assigned by storage.
	CustomerID   string // Owning account.
	CustomerName string // Name snapshot taken when the order was opened.
	Status       bool   // true = open (active cart), false = closed (checked out).
	TotalAmount  int64  // Running total, maintained incrementally on every mutation.
	Comment      string // Free text; stamped with a completion note at checkout.
	CreatedDate  time.Time
	UpdatedDate  time.Time

	Items []*OrderItem // Line items currently in the order.
}

// OrderItem is a single cart line. Items are created on add-to-cart and
// deleted on removal, never updated in place.
type OrderItem struct {
	ID               int64
	OrderID          int64
	LicenseID        string // Product identifier snapshot.
	LicenseName      string // Product name snapshot.
	Quantity         int
	PriceAtOrderTime int64  // Unit price snapshot taken when the item was added.
	CreatedBy        string // Customer who added the line.
	CreatedDate      time.Time
}

// Subtotal is the line's contribution to the order total.
func (i *OrderItem) Subtotal() int64 {
	return int64(i.Quantity) * i.PriceAtOrderTime
}
