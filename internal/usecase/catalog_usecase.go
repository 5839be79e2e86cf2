package usecase

import (
	"context"

	"certshop/internal/domain/entity"
)

// CatalogUsecase defines the interface for browsing the certification catalog.
type CatalogUsecase interface {
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	GetProduct(ctx context.Context, licenseID string) (*entity.Product, error)
}
