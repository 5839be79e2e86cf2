package impl

import (
	"context"
	"testing"

	"certshop/internal/domain/entity"
	domainerrors "certshop/internal/domain/errors"
	"certshop/internal/domain/repository"
	"certshop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartService(orderRepo *fakeOrderRepo, productRepo *fakeProductRepo) usecase.CartUsecase {
	accountRepo := newFakeAccountRepo()
	accountRepo.accounts["ming@example.com"] = &entity.Account{
		CustomerID:   "cust-1",
		CustomerName: "王小明",
		Email:        "ming@example.com",
		Activate:     true,
	}
	txManager := &fakeTxManager{accountRepo: accountRepo, orderRepo: orderRepo, productRepo: productRepo}

	return NewCartService(CartServiceParams{
		TxManager: txManager,
		OrderRepo: orderRepo,
		Logger:    newDiscardLogger(),
	})
}

func testCatalog() *fakeProductRepo {
	return newFakeProductRepo(
		&entity.Product{LicenseID: "AWS-SAA", LicenseName: "AWS Solutions Architect", Price: "3600"},
		&entity.Product{LicenseID: "PMP", LicenseName: "Project Management Professional", Price: "12,000"},
		&entity.Product{LicenseID: "FREE", LicenseName: "Promo Voucher", Price: "not-a-number"},
	)
}

func addItem(t *testing.T, service usecase.CartUsecase, licenseID string, quantity int) *usecase.CartOutput {
	t.Helper()

	output, err := service.AddItem(context.Background(), &usecase.AddItemInput{
		CustomerID: "cust-1",
		LicenseID:  licenseID,
		Quantity:   quantity,
	})
	require.NoError(t, err)

	return output
}

func TestCartService_AddItem_OpensCartOnFirstUse(t *testing.T) {
	service := newTestCartService(newFakeOrderRepo(), testCatalog())

	output := addItem(t, service, "AWS-SAA", 2)

	order := output.Order
	assert.True(t, order.Status)
	assert.Equal(t, "王小明", order.CustomerName)
	assert.Equal(t, "新購物車", order.Comment)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(3600), order.Items[0].PriceAtOrderTime)
	assert.Equal(t, int64(7200), order.TotalAmount)
}

func TestCartService_AddItem_ReusesOpenCart(t *testing.T) {
	service := newTestCartService(newFakeOrderRepo(), testCatalog())

	first := addItem(t, service, "AWS-SAA", 1)
	second := addItem(t, service, "PMP", 1)

	assert.Equal(t, first.Order.OrderID, second.Order.OrderID)
	require.Len(t, second.Order.Items, 2)
	assert.Equal(t, int64(3600+12000), second.Order.TotalAmount)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	service := newTestCartService(newFakeOrderRepo(), testCatalog())

	_, err := service.AddItem(context.Background(), &usecase.AddItemInput{
		CustomerID: "cust-1",
		LicenseID:  "NOPE",
		Quantity:   1,
	})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_AddItem_UnparsablePrice(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	service := newTestCartService(orderRepo, testCatalog())

	_, err := service.AddItem(context.Background(), &usecase.AddItemInput{
		CustomerID: "cust-1",
		LicenseID:  "FREE",
		Quantity:   1,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCartService_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	service := newTestCartService(newFakeOrderRepo(), testCatalog())

	_, err := service.AddItem(context.Background(), &usecase.AddItemInput{
		CustomerID: "cust-1",
		LicenseID:  "AWS-SAA",
		Quantity:   0,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCartService_TotalMatchesItemSubtotals(t *testing.T) {
	service := newTestCartService(newFakeOrderRepo(), testCatalog())

	addItem(t, service, "AWS-SAA", 2)
	output := addItem(t, service, "PMP", 1)

	var removedID int64
	for _, item := range output.Order.Items {
		if item.LicenseID == "AWS-SAA" {
			removedID = item.ID
		}
	}
	require.NotZero(t, removedID)

	afterRemove, err := service.RemoveItem(context.Background(), "cust-1", removedID)
	require.NoError(t, err)

	var sum int64
	for _, item := range afterRemove.Order.Items {
		sum += item.Subtotal()
	}
	assert.Equal(t, sum, afterRemove.Order.TotalAmount)
	assert.Equal(t, int64(12000), afterRemove.Order.TotalAmount)
}

func TestCartService_ViewCart_NoOpenOrder(t *testing.T) {
	service := newTestCartService(newFakeOrderRepo(), testCatalog())

	_, err := service.ViewCart(context.Background(), "cust-1")
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestCartService_RemoveItem_UnknownItem(t *testing.T) {
	service := newTestCartService(newFakeOrderRepo(), testCatalog())

	addItem(t, service, "AWS-SAA", 1)

	_, err := service.RemoveItem(context.Background(), "cust-1", 999)
	assert.ErrorIs(t, err, domainerrors.ErrOrderItemNotFound)

	cart, err := service.ViewCart(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3600), cart.Order.TotalAmount)
	assert.Len(t, cart.Order.Items, 1)
}

// racingOrderRepo simulates a concurrent first add: the initial open-order
// lookup misses, and by the time the create runs another request has already
// opened the customer's cart, so the unique index rejects the insert.
type racingOrderRepo struct {
	*fakeOrderRepo
	lookupMissed bool
}

func (r *racingOrderRepo) FindOpenOrder(ctx context.Context, customerID string) (*entity.Order, error) {
	if !r.lookupMissed {
		r.lookupMissed = true

		return nil, repository.ErrOrderNotFound
	}

	return r.fakeOrderRepo.FindOpenOrder(ctx, customerID)
}

func (r *racingOrderRepo) CreateOrder(ctx context.Context, order *entity.Order) error {
	winner := &entity.Order{
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		Status:       true,
		Comment:      order.Comment,
		CreatedDate:  order.CreatedDate,
		UpdatedDate:  order.UpdatedDate,
	}
	if err := r.fakeOrderRepo.CreateOrder(ctx, winner); err != nil {
		return err
	}

	return repository.ErrOpenOrderExists
}

func TestCartService_AddItem_ConcurrentFirstAddReusesWinningOrder(t *testing.T) {
	orderRepo := &racingOrderRepo{fakeOrderRepo: newFakeOrderRepo()}
	accountRepo := newFakeAccountRepo()
	accountRepo.accounts["ming@example.com"] = &entity.Account{
		CustomerID:   "cust-1",
		CustomerName: "王小明",
		Email:        "ming@example.com",
		Activate:     true,
	}
	txManager := &fakeTxManager{accountRepo: accountRepo, orderRepo: orderRepo, productRepo: testCatalog()}
	service := NewCartService(CartServiceParams{
		TxManager: txManager,
		OrderRepo: orderRepo,
		Logger:    newDiscardLogger(),
	})

	output, err := service.AddItem(context.Background(), &usecase.AddItemInput{
		CustomerID: "cust-1",
		LicenseID:  "AWS-SAA",
		Quantity:   2,
	})
	require.NoError(t, err)
	assert.True(t, orderRepo.lookupMissed)

	// The item must land on the order the winning request opened.
	order := output.Order
	assert.Equal(t, int64(1), order.OrderID)
	assert.Equal(t, int64(7200), order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "AWS-SAA", order.Items[0].LicenseID)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestCartService_Checkout_ClosesCart(t *testing.T) {
	service := newTestCartService(newFakeOrderRepo(), testCatalog())

	addItem(t, service, "AWS-SAA", 1)

	output, err := service.Checkout(context.Background(), &usecase.CheckoutInput{CustomerID: "cust-1"})
	require.NoError(t, err)
	assert.False(t, output.Order.Status)
	assert.Equal(t, "訂單完成", output.Order.Comment)

	_, err = service.ViewCart(context.Background(), "cust-1")
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestCartService_Checkout_KeepsCustomComment(t *testing.T) {
	service := newTestCartService(newFakeOrderRepo(), testCatalog())

	addItem(t, service, "AWS-SAA", 1)

	output, err := service.Checkout(context.Background(), &usecase.CheckoutInput{
		CustomerID: "cust-1",
		Comment:    "請開立三聯式發票",
	})
	require.NoError(t, err)
	assert.Equal(t, "請開立三聯式發票", output.Order.Comment)
}

func TestCartService_Checkout_NoOpenOrder(t *testing.T) {
	service := newTestCartService(newFakeOrderRepo(), testCatalog())

	_, err := service.Checkout(context.Background(), &usecase.CheckoutInput{CustomerID: "cust-1"})
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestCartService_NewCartAfterCheckout(t *testing.T) {
	service := newTestCartService(newFakeOrderRepo(), testCatalog())

	first := addItem(t, service, "AWS-SAA", 1)

	_, err := service.Checkout(context.Background(), &usecase.CheckoutInput{CustomerID: "cust-1"})
	require.NoError(t, err)

	second := addItem(t, service, "PMP", 1)
	assert.NotEqual(t, first.Order.OrderID, second.Order.OrderID)
	assert.Equal(t, int64(12000), second.Order.TotalAmount)
	require.Len(t, second.Order.Items, 1)
}
