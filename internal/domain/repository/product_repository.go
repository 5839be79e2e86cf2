// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"certshop/internal/domain/entity"
	"certshop/internal/errors"
)

// ErrProductNotFound is returned when a catalog entry is absent.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines read-only access to the catalog. The catalog's
// lifecycle is owned by an external process; this service never writes to it.
type ProductRepository interface {
	// ListProducts retrieves the full catalog, unfiltered and unpaginated.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// FindByLicenseID retrieves a single catalog entry.
	FindByLicenseID(ctx context.Context, licenseID string) (*entity.Product, error)
}
