package postgres

import (
	"context"
	"time"

	"certshop/internal/domain/entity"
	domainerrors "certshop/internal/domain/errors"
	"certshop/internal/domain/repository"
	"certshop/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// CreateOrder persists a new open order. The partial unique index on open
// orders rejects a second open order for the same customer.
func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Omit("Items").Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrOpenOrderExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.OrderID = orderM.OrderID

	return nil
}

// FindOpenOrder retrieves the open order of a customer without its items.
func (repo *orderRepository) FindOpenOrder(ctx context.Context, customerID string) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("customer_id = ? AND status = ?", customerID, true).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find open order")
	}

	return toOrderDomain(&orderM), nil
}

// FindOpenOrderWithItems retrieves the open order of a customer together
// with its items.
func (repo *orderRepository) FindOpenOrderWithItems(ctx context.Context, customerID string) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ? AND status = ?", customerID, true).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find open order with items")
	}

	return toOrderDomain(&orderM), nil
}

// CreateItems persists a batch of order items.
func (repo *orderRepository) CreateItems(ctx context.Context, items []*entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	itemModels := make([]*model.OrderItemModel, 0, len(items))
	for _, item := range items {
		itemModels = append(itemModels, fromOrderItemDomain(item))
	}

	if err := repo.db.WithContext(ctx).Create(&itemModels).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrOrderNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order items")
	}

	for i, itemM := range itemModels {
		items[i].ID = itemM.ID
	}

	return nil
}

// FindItem retrieves a single item of an order.
func (repo *orderRepository) FindItem(ctx context.Context, orderID int64, itemID int64) (*entity.OrderItem, error) {
	var itemM model.OrderItemModel

	if err := repo.db.WithContext(ctx).
		Where("order_id = ? AND id = ?", orderID, itemID).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find order item")
	}

	return toOrderItemDomain(&itemM), nil
}

// DeleteItem removes a single item from an order.
func (repo *orderRepository) DeleteItem(ctx context.Context, orderID int64, itemID int64) error {
	result := repo.db.WithContext(ctx).
		Where("order_id = ? AND id = ?", orderID, itemID).
		Delete(&model.OrderItemModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete order item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderItemNotFound
	}

	return nil
}

// AddToTotal adjusts the running total of an order by delta and refreshes
// the update timestamp.
func (repo *orderRepository) AddToTotal(ctx context.Context, orderID int64, delta int64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("order_id = ?", orderID).
		Updates(map[string]any{
			"total_amount": gorm.Expr("total_amount + ?", delta),
			"updated_date": time.Now(),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order total")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// CloseOrder marks an open order as completed and stores the checkout comment.
func (repo *orderRepository) CloseOrder(ctx context.Context, orderID int64, comment string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("order_id = ? AND status = ?", orderID, true).
		Updates(map[string]any{
			"status":       false,
			"comment":      comment,
			"updated_date": time.Now(),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to close order")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, toOrderItemDomain(itemM))
	}

	return &entity.Order{
		OrderID:      data.OrderID,
		CustomerID:   data.CustomerID,
		CustomerName: data.CustomerName,
		Status:       data.Status,
		TotalAmount:  data.TotalAmount,
		Comment:      data.Comment,
		CreatedDate:  data.CreatedDate,
		UpdatedDate:  data.UpdatedDate,
		Items:        items,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	return &model.OrderModel{
		OrderID:      data.OrderID,
		CustomerID:   data.CustomerID,
		CustomerName: data.CustomerName,
		Status:       data.Status,
		TotalAmount:  data.TotalAmount,
		Comment:      data.Comment,
		CreatedDate:  data.CreatedDate,
		UpdatedDate:  data.UpdatedDate,
	}
}

// toOrderItemDomain converts a GORM OrderItemModel to a domain OrderItem entity.
func toOrderItemDomain(data *model.OrderItemModel) *entity.OrderItem {
	if data == nil {
		return nil
	}

	return &entity.OrderItem{
		ID:               data.ID,
		OrderID:          data.OrderID,
		LicenseID:        data.LicenseID,
		LicenseName:      data.LicenseName,
		Quantity:         data.Quantity,
		PriceAtOrderTime: data.PriceAtOrderTime,
		CreatedBy:        data.CreatedBy,
		CreatedDate:      data.CreatedDate,
	}
}

// fromOrderItemDomain converts a domain OrderItem entity to a GORM OrderItemModel.
func fromOrderItemDomain(data *entity.OrderItem) *model.OrderItemModel {
	if data == nil {
		return nil
	}

	return &model.OrderItemModel{
		ID:               data.ID,
		OrderID:          data.OrderID,
		LicenseID:        data.LicenseID,
		LicenseName:      data.LicenseName,
		Quantity:         data.Quantity,
		PriceAtOrderTime: data.PriceAtOrderTime,
		CreatedBy:        data.CreatedBy,
		CreatedDate:      data.CreatedDate,
	}
}
