package usecase

import (
	"context"

	"certshop/internal/domain/entity"
)

// AddItemInput defines the data required to put a certification into the
// customer's cart.
type AddItemInput struct {
	CustomerID string
	LicenseID  string
	Quantity   int
}

// CheckoutInput defines the data required to close the open cart.
type CheckoutInput struct {
	CustomerID string
	Comment    string
}

// CartOutput returns the open order together with its items.
type CartOutput struct {
	Order *entity.Order
}

// CartUsecase defines the interface for shopping cart business operations.
// A customer has at most one open order at a time; the open order is the cart.
type CartUsecase interface {
	AddItem(ctx context.Context, input *AddItemInput) (*CartOutput, error)
	ViewCart(ctx context.Context, customerID string) (*CartOutput, error)
	RemoveItem(ctx context.Context, customerID string, itemID int64) (*CartOutput, error)
	Checkout(ctx context.Context, input *CheckoutInput) (*CartOutput, error)
}
