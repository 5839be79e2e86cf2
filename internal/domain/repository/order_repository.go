// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"certshop/internal/domain/entity"
	"certshop/internal/errors"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when no open order exists for a customer.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderItemNotFound is returned when a line item is absent from the order.
	ErrOrderItemNotFound = errors.New("order item not found")
	// ErrOpenOrderExists is returned when creating a second open order for the
	// same customer; the partial unique index on open orders raises it.
	ErrOpenOrderExists = errors.New("customer already has an open order")
)

// OrderRepository defines the interface for order and line-item persistence.
type OrderRepository interface {
	// CreateOrder persists a new open order with a zero total.
	// Returns ErrOpenOrderExists when the customer already has an open order.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// FindOpenOrder retrieves the customer's open order without its items.
	// Returns ErrOrderNotFound when the customer has no open order.
	FindOpenOrder(ctx context.Context, customerID string) (*entity.Order, error)

	// FindOpenOrderWithItems retrieves the customer's open order and its line items.
	FindOpenOrderWithItems(ctx context.Context, customerID string) (*entity.Order, error)

	// CreateItems appends line items to an order in a single multi-row insert.
	CreateItems(ctx context.Context, items []*entity.OrderItem) error

	// FindItem retrieves a line item by ID scoped to one order.
	// Returns ErrOrderItemNotFound when the item is absent or belongs elsewhere.
	FindItem(ctx context.Context, orderID int64, itemID int64) (*entity.OrderItem, error)

	// DeleteItem removes a line item by ID scoped to one order.
	DeleteItem(ctx context.Context, orderID int64, itemID int64) error

	// AddToTotal shifts the order's running total by delta (negative on
	// removals) and stamps updated_date.
	AddToTotal(ctx context.Context, orderID int64, delta int64) error

	// CloseOrder flips the order's status to closed and stamps the completion
	// comment and updated_date.
	CloseOrder(ctx context.Context, orderID int64, comment string) error
}
