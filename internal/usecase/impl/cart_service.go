package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	deliverycontext "certshop/internal/delivery/context"
	"certshop/internal/domain/entity"
	domainerrors "certshop/internal/domain/errors"
	"certshop/internal/domain/repository"
	"certshop/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Comments stamped on orders at the state transitions.
const (
	commentNewCart       = "新購物車"
	commentOrderComplete = "訂單完成"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Logger    *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		logger:    params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddItem puts a certification into the customer's cart. The open order is
// created on first use; lookup, insert, and total adjustment run in a single
// transaction so the stored total always equals the sum of item subtotals.
func (srv *cartService) AddItem(ctx context.Context, input *usecase.AddItemInput) (*usecase.CartOutput, error) {
	if input.Quantity <= 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "quantity must be positive")
	}

	var cart *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()
		productRepo := repoFactory.NewProductRepository()

		product, err := productRepo.FindByLicenseID(ctx, input.LicenseID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "certification not in catalog")
			}

			return errors.Wrap(err, "failed to load product for cart")
		}

		price, err := parsePrice(product.Price)
		if err != nil {
			return errors.Wrap(domainerrors.ErrValidationFailed, "product has no usable price")
		}

		order, err := srv.findOrCreateOpenOrder(ctx, repoFactory, input)
		if err != nil {
			return err
		}

		item := &entity.OrderItem{
			OrderID:          order.OrderID,
			LicenseID:        product.LicenseID,
			LicenseName:      product.LicenseName,
			Quantity:         input.Quantity,
			PriceAtOrderTime: price,
			CreatedBy:        input.CustomerID,
			CreatedDate:      time.Now(),
		}

		if err := orderRepo.CreateItems(ctx, []*entity.OrderItem{item}); err != nil {
			return errors.Wrap(err, "failed to add item to cart")
		}

		if err := orderRepo.AddToTotal(ctx, order.OrderID, item.Subtotal()); err != nil {
			return errors.Wrap(err, "failed to update cart total")
		}

		cart, err = orderRepo.FindOpenOrderWithItems(ctx, input.CustomerID)
		if err != nil {
			return errors.Wrap(err, "failed to reload cart")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to add item to cart",
			slog.String("customerID", input.CustomerID),
			slog.String("licenseID", input.LicenseID),
			slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Item added to cart",
		slog.String("customerID", input.CustomerID),
		slog.String("licenseID", input.LicenseID),
		slog.Int64("orderID", cart.OrderID))

	return &usecase.CartOutput{Order: cart}, nil
}

// findOrCreateOpenOrder returns the customer's open order, creating it when
// absent. A concurrent creator losing the race falls back to the winner's order.
func (srv *cartService) findOrCreateOpenOrder(ctx context.Context, repoFactory repository.RepositoryFactory, input *usecase.AddItemInput) (*entity.Order, error) {
	orderRepo := repoFactory.NewOrderRepository()

	order, err := orderRepo.FindOpenOrder(ctx, input.CustomerID)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, repository.ErrOrderNotFound) {
		return nil, errors.Wrap(err, "failed to look up open order")
	}

	// The order row denormalizes the customer name at creation time.
	account, err := repoFactory.NewAccountRepository().FindByCustomerID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "cart owner not found")
		}

		return nil, errors.Wrap(err, "failed to load account for new cart")
	}

	now := time.Now()
	newOrder := &entity.Order{
		CustomerID:   input.CustomerID,
		CustomerName: account.CustomerName,
		Status:       true,
		TotalAmount:  0,
		Comment:      commentNewCart,
		CreatedDate:  now,
		UpdatedDate:  now,
	}

	createErr := orderRepo.CreateOrder(ctx, newOrder)
	if createErr == nil {
		srv.log(ctx).Info("Opened new cart", slog.String("customerID", input.CustomerID), slog.Int64("orderID", newOrder.OrderID))

		return newOrder, nil
	}

	if errors.Is(createErr, repository.ErrOpenOrderExists) {
		order, err = orderRepo.FindOpenOrder(ctx, input.CustomerID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load concurrently created order")
		}

		return order, nil
	}

	return nil, errors.Wrap(createErr, "failed to create order")
}

// ViewCart returns the open order with its items.
func (srv *cartService) ViewCart(ctx context.Context, customerID string) (*usecase.CartOutput, error) {
	order, err := srv.orderRepo.FindOpenOrderWithItems(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "no open cart")
		}

		return nil, errors.Wrap(err, "failed to load cart")
	}

	return &usecase.CartOutput{Order: order}, nil
}

// RemoveItem deletes a line item from the open cart and subtracts its
// subtotal from the running total in the same transaction.
func (srv *cartService) RemoveItem(ctx context.Context, customerID string, itemID int64) (*usecase.CartOutput, error) {
	var cart *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		order, err := orderRepo.FindOpenOrder(ctx, customerID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "no open cart")
			}

			return errors.Wrap(err, "failed to look up open order")
		}

		item, err := orderRepo.FindItem(ctx, order.OrderID, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderItemNotFound) {
				return errors.Wrap(domainerrors.ErrOrderItemNotFound, "item not in cart")
			}

			return errors.Wrap(err, "failed to look up cart item")
		}

		if err := orderRepo.DeleteItem(ctx, order.OrderID, itemID); err != nil {
			return errors.Wrap(err, "failed to remove item from cart")
		}

		if err := orderRepo.AddToTotal(ctx, order.OrderID, -item.Subtotal()); err != nil {
			return errors.Wrap(err, "failed to update cart total")
		}

		cart, err = orderRepo.FindOpenOrderWithItems(ctx, customerID)
		if err != nil {
			return errors.Wrap(err, "failed to reload cart")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to remove item from cart",
			slog.String("customerID", customerID),
			slog.Int64("itemID", itemID),
			slog.Any("error", err))

		return nil, err
	}

	return &usecase.CartOutput{Order: cart}, nil
}

// Checkout closes the open cart. The closed order keeps its items and total;
// the next AddItem starts a fresh cart.
func (srv *cartService) Checkout(ctx context.Context, input *usecase.CheckoutInput) (*usecase.CartOutput, error) {
	var closed *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		order, err := orderRepo.FindOpenOrderWithItems(ctx, input.CustomerID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "no open cart to check out")
			}

			return errors.Wrap(err, "failed to look up open order")
		}

		comment := strings.TrimSpace(input.Comment)
		if comment == "" {
			comment = commentOrderComplete
		}

		if err := orderRepo.CloseOrder(ctx, order.OrderID, comment); err != nil {
			return errors.Wrap(err, "failed to close order")
		}

		order.Status = false
		order.Comment = comment
		order.UpdatedDate = time.Now()
		closed = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to check out cart", slog.String("customerID", input.CustomerID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Cart checked out", slog.String("customerID", input.CustomerID), slog.Int64("orderID", closed.OrderID))

	return &usecase.CartOutput{Order: closed}, nil
}

// parsePrice reads the catalog's price text as a whole amount in TWD.
func parsePrice(raw string) (int64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	price, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "unparsable price %q", raw)
	}
	if price < 0 {
		return 0, errors.Errorf("negative price %q", raw)
	}

	return price, nil
}
