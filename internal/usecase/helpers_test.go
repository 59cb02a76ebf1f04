package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	"github.com/modi-mansi/ecommerce/internal/domain/service"
	logs "github.com/modi-mansi/ecommerce/internal/infra/log"
	"github.com/modi-mansi/ecommerce/internal/infra/memory"
	repo "github.com/modi-mansi/ecommerce/internal/repository"
	"github.com/modi-mansi/ecommerce/internal/usecase"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

// =====================
// Publisher mock
// =====================

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, e usecase.OrderEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// =====================
// TxManager mock（在庫履歴の書き込みだけ失敗させる）
// =====================

type TxManagerMock struct {
	mock.Mock
	inner repo.TransactionManager
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return m.inner.WithinTx(ctx, func(r repo.TxRepos) error {
		return fn(failingInventoryRepos{TxRepos: r})
	})
}

type failingInventoryRepos struct {
	repo.TxRepos
}

func (r failingInventoryRepos) Inventory() repo.InventoryRepository {
	return failingInventory{InventoryRepository: r.TxRepos.Inventory()}
}

type failingInventory struct {
	repo.InventoryRepository
}

func (failingInventory) CreateTransaction(ctx context.Context, t model.InventoryTransaction) (model.InventoryTransaction, error) {
	return model.InventoryTransaction{}, errors.New("disk full")
}

// =====================
// 実メモリストアで組んだusecase一式
// =====================

type env struct {
	store     *memory.Store
	repos     repo.TxRepos
	catalog   *usecase.CatalogUsecase
	products  *usecase.ProductUsecase
	cart      *usecase.CartUsecase
	orders    *usecase.OrderUsecase
	metrics   *usecase.MetricsUsecase
	inventory *usecase.InventoryUsecase
	users     *usecase.UserUsecase
}

type envOption func(*envConfig)

type envConfig struct {
	publisher usecase.OrderEventPublisher
	tx        func(st *memory.Store) repo.TransactionManager
	opts      usecase.OrderOptions
}

func withPublisher(p usecase.OrderEventPublisher) envOption {
	return func(c *envConfig) { c.publisher = p }
}

func withRestoreStock() envOption {
	return func(c *envConfig) { c.opts.RestoreStockOnCancel = true }
}

func withOrderTx(tx func(st *memory.Store) repo.TransactionManager) envOption {
	return func(c *envConfig) { c.tx = tx }
}

func newEnv(t *testing.T, opts ...envOption) *env {
	t.Helper()

	cfg := envConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	logger := logs.Discard()
	clock := fixedClock{now: testNow}
	st := memory.NewStore(service.UUIDGenerator{}, clock)
	repos := st.Repos()

	var orderTx repo.TransactionManager = st
	if cfg.tx != nil {
		orderTx = cfg.tx(st)
	}

	catalog := usecase.NewCatalogUsecase(repos.Products(), usecase.DefaultLowStockThreshold)
	return &env{
		store:     st,
		repos:     repos,
		catalog:   catalog,
		products:  usecase.NewProductUsecase(st, logger),
		cart:      usecase.NewCartUsecase(st, repos),
		orders:    usecase.NewOrderUsecase(orderTx, repos, cfg.publisher, clock, logger, cfg.opts),
		metrics:   usecase.NewMetricsUsecase(repos.Orders(), catalog),
		inventory: usecase.NewInventoryUsecase(repos.Inventory()),
		users:     usecase.NewUserUsecase(repos.Users(), usecase.NewBcryptPasswordHasher(bcrypt.MinCost)),
	}
}

func (e *env) product(t *testing.T, sku, price string, stock int64) usecase.ProductOutput {
	t.Helper()
	p, err := e.products.Create(context.Background(), usecase.CreateProductInput{
		Name:          "Product " + sku,
		SKU:           sku,
		Category:      "Electronics",
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
	})
	require.NoError(t, err)
	return p
}

func (e *env) stock(t *testing.T, productID string) int64 {
	t.Helper()
	p, err := e.catalog.Get(context.Background(), productID)
	require.NoError(t, err)
	return p.StockQuantity
}

func (e *env) orderCount(t *testing.T) int {
	t.Helper()
	list, err := e.orders.List(context.Background(), usecase.OrderListFilter{})
	require.NoError(t, err)
	return len(list)
}

func orderInput(customerID string, lines ...usecase.OrderLineInput) usecase.PlaceOrderInput {
	return usecase.PlaceOrderInput{
		CustomerID:      customerID,
		CustomerName:    "John Doe",
		CustomerEmail:   "john@example.com",
		ShippingAddress: "1 Main St",
		Items:           lines,
	}
}

func line(productID string, qty int64) usecase.OrderLineInput {
	return usecase.OrderLineInput{ProductID: productID, Quantity: qty}
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
