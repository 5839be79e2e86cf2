package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"certshop/config"
	"certshop/internal/domain/entity"
	"certshop/internal/domain/repository"
	"certshop/internal/domain/service"

	"github.com/pkg/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost: 4,
		},
		Mail: &config.MailConfig{
			FromName:        "測試憑證商城",
			FromAddress:     "noreply@example.com",
			FrontendBaseURL: "https://shop.example.com",
		},
	}
}

// --- In-memory repositories ---

type fakeAccountRepo struct {
	accounts map[string]*entity.Account // keyed by email
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*entity.Account)}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	if _, ok := r.accounts[account.Email]; ok {
		return repository.ErrDuplicateAccount
	}
	for _, existing := range r.accounts {
		if existing.CustomerName == account.CustomerName {
			return repository.ErrDuplicateAccount
		}
	}

	cloned := *account
	r.accounts[account.Email] = &cloned

	return nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	account, ok := r.accounts[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	cloned := *account

	return &cloned, nil
}

func (r *fakeAccountRepo) FindByCustomerID(_ context.Context, customerID string) (*entity.Account, error) {
	for _, account := range r.accounts {
		if account.CustomerID == customerID {
			cloned := *account

			return &cloned, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) Activate(_ context.Context, email string) error {
	account, ok := r.accounts[email]
	if !ok {
		return repository.ErrAccountNotFound
	}
	account.Activate = true

	return nil
}

func (r *fakeAccountRepo) RecordLogin(_ context.Context, email string) error {
	account, ok := r.accounts[email]
	if !ok {
		return repository.ErrAccountNotFound
	}
	account.LastLogin = time.Now()

	return nil
}

func (r *fakeAccountRepo) UpdatePassword(_ context.Context, email string, passwordHash string) error {
	account, ok := r.accounts[email]
	if !ok {
		return repository.ErrAccountNotFound
	}
	account.PasswordHash = passwordHash
	account.PasswordExpiry = time.Now().Add(entity.PasswordExpiryHorizon)
	account.PasswordResetCount++

	return nil
}

type fakeOrderRepo struct {
	orders     map[int64]*entity.Order
	items      map[int64]*entity.OrderItem
	nextOrder  int64
	nextItemID int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:     make(map[int64]*entity.Order),
		items:      make(map[int64]*entity.OrderItem),
		nextOrder:  1,
		nextItemID: 1,
	}
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, order *entity.Order) error {
	for _, existing := range r.orders {
		if existing.CustomerID == order.CustomerID && existing.Status {
			return repository.ErrOpenOrderExists
		}
	}

	order.OrderID = r.nextOrder
	r.nextOrder++

	cloned := *order
	cloned.Items = nil
	r.orders[cloned.OrderID] = &cloned

	return nil
}

func (r *fakeOrderRepo) FindOpenOrder(_ context.Context, customerID string) (*entity.Order, error) {
	for _, order := range r.orders {
		if order.CustomerID == customerID && order.Status {
			cloned := *order
			cloned.Items = nil

			return &cloned, nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) FindOpenOrderWithItems(ctx context.Context, customerID string) (*entity.Order, error) {
	order, err := r.FindOpenOrder(ctx, customerID)
	if err != nil {
		return nil, err
	}

	items := make([]*entity.OrderItem, 0)
	for _, item := range r.items {
		if item.OrderID == order.OrderID {
			cloned := *item
			items = append(items, &cloned)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	order.Items = items

	return order, nil
}

func (r *fakeOrderRepo) CreateItems(_ context.Context, items []*entity.OrderItem) error {
	for _, item := range items {
		if _, ok := r.orders[item.OrderID]; !ok {
			return repository.ErrOrderNotFound
		}

		item.ID = r.nextItemID
		r.nextItemID++

		cloned := *item
		r.items[cloned.ID] = &cloned
	}

	return nil
}

func (r *fakeOrderRepo) FindItem(_ context.Context, orderID int64, itemID int64) (*entity.OrderItem, error) {
	item, ok := r.items[itemID]
	if !ok || item.OrderID != orderID {
		return nil, repository.ErrOrderItemNotFound
	}

	cloned := *item

	return &cloned, nil
}

func (r *fakeOrderRepo) DeleteItem(_ context.Context, orderID int64, itemID int64) error {
	item, ok := r.items[itemID]
	if !ok || item.OrderID != orderID {
		return repository.ErrOrderItemNotFound
	}
	delete(r.items, itemID)

	return nil
}

func (r *fakeOrderRepo) AddToTotal(_ context.Context, orderID int64, delta int64) error {
	order, ok := r.orders[orderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.TotalAmount += delta
	order.UpdatedDate = time.Now()

	return nil
}

func (r *fakeOrderRepo) CloseOrder(_ context.Context, orderID int64, comment string) error {
	order, ok := r.orders[orderID]
	if !ok || !order.Status {
		return repository.ErrOrderNotFound
	}
	order.Status = false
	order.Comment = comment
	order.UpdatedDate = time.Now()

	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, product := range products {
		repo.products[product.LicenseID] = product
	}

	return repo
}

func (r *fakeProductRepo) ListProducts(_ context.Context) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0, len(r.products))
	for _, product := range r.products {
		cloned := *product
		products = append(products, &cloned)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].LicenseID < products[j].LicenseID })

	return products, nil
}

func (r *fakeProductRepo) FindByLicenseID(_ context.Context, licenseID string) (*entity.Product, error) {
	product, ok := r.products[licenseID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	cloned := *product

	return &cloned, nil
}

// --- Pass-through transaction manager ---

// fakeTxManager hands the callback a factory over the in-memory repositories.
// There is nothing to roll back; the fakes mutate directly.
type fakeTxManager struct {
	accountRepo repository.AccountRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

type fakeRepoFactory struct {
	tm *fakeTxManager
}

func (f *fakeRepoFactory) NewAccountRepository() repository.AccountRepository { return f.tm.accountRepo }
func (f *fakeRepoFactory) NewOrderRepository() repository.OrderRepository     { return f.tm.orderRepo }
func (f *fakeRepoFactory) NewProductRepository() repository.ProductRepository { return f.tm.productRepo }

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&fakeRepoFactory{tm: tm})
}

// --- Stand-in domain services ---

// plainHasher marks passwords instead of hashing so tests stay fast and
// password assertions stay readable.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Check(password, hash string) bool     { return hash == "hashed:"+password }

// stubTokenService encodes purpose and subject into the token text.
type stubTokenService struct{}

func (stubTokenService) GenerateAccessToken(customerID string) (string, error) {
	return service.PurposeAccess + ":" + customerID, nil
}

func (stubTokenService) GenerateVerifyToken(email string) (string, error) {
	return service.PurposeVerify + ":" + email, nil
}

func (stubTokenService) GeneratePasswordResetToken(email string) (string, error) {
	return service.PurposePasswordReset + ":" + email, nil
}

func (stubTokenService) ValidateToken(tokenString string, purpose string) (*service.Claims, error) {
	subject, ok := strings.CutPrefix(tokenString, purpose+":")
	if !ok {
		return nil, errors.New("token purpose mismatch")
	}

	claims := &service.Claims{Purpose: purpose}
	claims.Subject = subject

	return claims, nil
}

func (stubTokenService) AccessTokenDuration() time.Duration { return time.Hour }

type stubCSRFService struct{}

func (stubCSRFService) Generate() (string, error) { return "csrf-token", nil }

func (stubCSRFService) Verify(cookieValue, headerValue string) bool {
	return cookieValue != "" && cookieValue == headerValue
}

// recordingMailer captures outgoing mail for assertions.
type recordingMailer struct {
	sent []service.AccountMail
}

func (m *recordingMailer) Send(_ context.Context, mail service.AccountMail) error {
	m.sent = append(m.sent, mail)

	return nil
}
