package postgres

import (
	"context"

	"certshop/internal/domain/entity"
	"certshop/internal/domain/repository"
	"certshop/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// ListProducts retrieves the full certification catalog.
func (repo *productRepository) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Order("license_id").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// FindByLicenseID retrieves a single catalog entry.
func (repo *productRepository) FindByLicenseID(ctx context.Context, licenseID string) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("license_id = ?", licenseID).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by license ID")
	}

	return toProductDomain(&productM), nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		LicenseID:         data.LicenseID,
		LicenseName:       data.LicenseName,
		LicenseInfo:       data.LicenseInfo,
		ExamDate:          data.ExamDate,
		Price:             data.Price,
		ExamLocation:      data.ExamLocation,
		RegistrationStart: data.RegistrationStart,
		RegistrationEnd:   data.RegistrationEnd,
		DisplayStatus:     data.DisplayStatus,
		CreatedAt:         data.CreatedAt,
		PictureURL:        data.PictureURL,
	}
}
