package usecase_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	"github.com/modi-mansi/ecommerce/internal/infra/memory"
	repo "github.com/modi-mansi/ecommerce/internal/repository"
	"github.com/modi-mansi/ecommerce/internal/usecase"
)

func TestPlaceOrder_Scenario(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "HP-001", "100.00", 10)

	o, err := e.orders.PlaceOrder(context.Background(), orderInput("cust-1", line(p.ID, 3)))
	require.NoError(t, err)

	assert.Equal(t, "300.00", o.TotalAmount)
	assert.Equal(t, "pending", o.Status)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "300.00", o.Items[0].TotalPrice)
	assert.Equal(t, "100.00", o.Items[0].UnitPrice)
	assert.Equal(t, "HP-001", o.Items[0].ProductSKU)
	assert.Equal(t, int64(7), e.stock(t, p.ID))
}

func TestPlaceOrder_TotalIsRoundedSumOfLines(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", "19.99", 10)
	b := e.product(t, "B", "5.05", 10)
	c := e.product(t, "C", "0.10", 10)

	o, err := e.orders.PlaceOrder(context.Background(), orderInput("cust-1", line(a.ID, 3), line(b.ID, 2), line(c.ID, 3)))
	require.NoError(t, err)

	//59.97 + 10.10 + 0.30
	assert.Equal(t, "70.37", o.TotalAmount)
	assert.Equal(t, "59.97", o.Items[0].TotalPrice)
	assert.Equal(t, "10.10", o.Items[1].TotalPrice)
	assert.Equal(t, "0.30", o.Items[2].TotalPrice)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "P", "10.00", 5)

	_, err := e.orders.PlaceOrder(context.Background(), orderInput("cust-1", line(p.ID, 6)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrInsufficientStock))

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "Insufficient stock for Product P", he.Message)

	assert.Equal(t, int64(5), e.stock(t, p.ID))
	assert.Equal(t, 0, e.orderCount(t))
}

func TestPlaceOrder_AllOrNothing(t *testing.T) {
	e := newEnv(t)
	first := e.product(t, "FIRST", "10.00", 10)
	second := e.product(t, "SECOND", "10.00", 1)

	_, err := e.orders.PlaceOrder(context.Background(), orderInput("cust-1", line(first.ID, 2), line(second.ID, 2)))
	assert.True(t, errors.Is(err, usecase.ErrInsufficientStock))

	assert.Equal(t, int64(10), e.stock(t, first.ID))
	assert.Equal(t, int64(1), e.stock(t, second.ID))
	assert.Equal(t, 0, e.orderCount(t))

	txs, err := e.inventory.ListTransactions(context.Background(), first.ID, "")
	require.NoError(t, err)
	//初期在庫の1件だけ
	assert.Len(t, txs, 1)
}

func TestPlaceOrder_ProductNotFoundOrInactive(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "HIDDEN", "10.00", 10)
	inactive := false
	_, err := e.products.Update(context.Background(), p.ID, usecase.ProductPatch{IsActive: &inactive})
	require.NoError(t, err)

	_, err = e.orders.PlaceOrder(context.Background(), orderInput("cust-1", line("missing", 1)))
	assert.True(t, errors.Is(err, usecase.ErrProductNotFound))

	_, err = e.orders.PlaceOrder(context.Background(), orderInput("cust-1", line(p.ID, 1)))
	assert.True(t, errors.Is(err, usecase.ErrProductNotFound))
	assert.Equal(t, int64(10), e.stock(t, p.ID))
}

func TestPlaceOrder_Validation(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "P", "1.00", 10)

	tests := []struct {
		name string
		in   usecase.PlaceOrderInput
	}{
		{name: "no items", in: orderInput("cust-1")},
		{name: "zero quantity", in: orderInput("cust-1", line(p.ID, 0))},
		{name: "no customer", in: orderInput("", line(p.ID, 1))},
		{name: "bad email", in: func() usecase.PlaceOrderInput {
			in := orderInput("cust-1", line(p.ID, 1))
			in.CustomerEmail = "not-an-email"
			return in
		}()},
		{name: "unknown customer without name", in: func() usecase.PlaceOrderInput {
			in := orderInput("cust-1", line(p.ID, 1))
			in.CustomerName = ""
			return in
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.orders.PlaceOrder(context.Background(), tt.in)
			assert.True(t, errors.Is(err, usecase.ErrValidation), "err=%v", err)
		})
	}
	assert.Equal(t, int64(10), e.stock(t, p.ID))
}

func TestPlaceOrder_OrderNumberSequence(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "P", "1.00", 10)

	first, err := e.orders.PlaceOrder(context.Background(), orderInput("cust-1", line(p.ID, 1)))
	require.NoError(t, err)
	second, err := e.orders.PlaceOrder(context.Background(), orderInput("cust-2", line(p.ID, 1)))
	require.NoError(t, err)

	assert.Equal(t, "ORD-20250314-001", first.OrderNumber)
	assert.Equal(t, "ORD-20250314-002", second.OrderNumber)

	got, err := e.orders.GetByNumber(context.Background(), second.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestPlaceOrder_RecordsSalesAndClearsCart(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "P", "2.50", 10)
	ctx := context.Background()

	_, err := e.cart.AddItem(ctx, usecase.AddCartItemInput{UserID: "cust-1", ProductID: p.ID, Quantity: 4})
	require.NoError(t, err)

	in := orderInput("cust-1", line(p.ID, 4))
	in.ClearCart = true
	o, err := e.orders.PlaceOrder(ctx, in)
	require.NoError(t, err)

	txs, err := e.inventory.ListTransactions(ctx, "", o.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, model.InventoryTxSale, txs[0].Type)
	assert.Equal(t, int64(-4), txs[0].Delta)

	cart, err := e.cart.ListWithProduct(ctx, "cust-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestPlaceOrder_FillsCustomerFromUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.product(t, "P", "1.00", 10)
	u, err := e.users.Create(ctx, usecase.CreateUserInput{
		Username: "jane", Email: "Jane@Example.com", Password: "password123", FirstName: "Jane", LastName: "Roe",
	})
	require.NoError(t, err)

	in := orderInput(u.ID, line(p.ID, 1))
	in.CustomerName = ""
	in.CustomerEmail = ""
	o, err := e.orders.PlaceOrder(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, "Jane Roe", o.CustomerName)
	assert.Equal(t, "jane@example.com", o.CustomerEmail)
}

func TestPlaceOrder_InternalErrorRollsBack(t *testing.T) {
	txm := &TxManagerMock{}
	txm.On("WithinTx", mock.Anything).Return()

	e := newEnv(t, withOrderTx(func(st *memory.Store) repo.TransactionManager {
		txm.inner = st
		return txm
	}))
	p := e.product(t, "P", "1.00", 10)

	_, err := e.orders.PlaceOrder(context.Background(), orderInput("cust-1", line(p.ID, 2)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrInternal))

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 500, he.Status)
	assert.Equal(t, "internal error", he.Message)

	assert.Equal(t, int64(10), e.stock(t, p.ID))
	assert.Equal(t, 0, e.orderCount(t))
	txm.AssertNumberOfCalls(t, "WithinTx", 1)
}

func TestPlaceOrder_PublishesCreatedEvent(t *testing.T) {
	pub := &PublisherMock{}
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(ev usecase.OrderEvent) bool {
		return ev.Type == usecase.EventOrderCreated && ev.TotalAmount == "3.00" && ev.ItemCount == 1
	})).Return(nil).Once()

	e := newEnv(t, withPublisher(pub))
	p := e.product(t, "P", "1.00", 10)

	o, err := e.orders.PlaceOrder(context.Background(), orderInput("cust-1", line(p.ID, 3)))
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	pub.AssertExpectations(t)
}

func TestPlaceOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	pub := &PublisherMock{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	e := newEnv(t, withPublisher(pub))
	p := e.product(t, "P", "1.00", 10)

	_, err := e.orders.PlaceOrder(context.Background(), orderInput("cust-1", line(p.ID, 1)))
	require.NoError(t, err)
	assert.Equal(t, 1, e.orderCount(t))
}

func TestPlaceOrder_FailedOrderPublishesNothing(t *testing.T) {
	pub := &PublisherMock{}
	e := newEnv(t, withPublisher(pub))
	p := e.product(t, "P", "1.00", 1)

	_, err := e.orders.PlaceOrder(context.Background(), orderInput("cust-1", line(p.ID, 2)))
	require.Error(t, err)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPlaceOrder_CancelledContext(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "P", "1.00", 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.orders.PlaceOrder(ctx, orderInput("cust-1", line(p.ID, 1)))
	require.Error(t, err)
	assert.Equal(t, int64(10), e.stock(t, p.ID))
}

func TestPlaceOrder_ConcurrentOrdersNeverOversell(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "P", "1.00", 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.orders.PlaceOrder(context.Background(), orderInput("cust-1", line(p.ID, 1))); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, int64(0), e.stock(t, p.ID))
	assert.Equal(t, 10, e.orderCount(t))
}

func TestOrders_ListFilters(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.product(t, "P", "1.00", 10)

	a, err := e.orders.PlaceOrder(ctx, orderInput("cust-a", line(p.ID, 1)))
	require.NoError(t, err)
	_, err = e.orders.PlaceOrder(ctx, orderInput("cust-b", line(p.ID, 1)))
	require.NoError(t, err)
	_, err = e.orders.PlaceOrder(ctx, orderInput("cust-a", line(p.ID, 1)))
	require.NoError(t, err)
	_, err = e.orders.UpdateStatus(ctx, a.ID, "shipped")
	require.NoError(t, err)

	all, err := e.orders.List(ctx, usecase.OrderListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	//新しい順
	assert.Equal(t, "ORD-20250314-003", all[0].OrderNumber)

	byCustomer, err := e.orders.List(ctx, usecase.OrderListFilter{CustomerID: "cust-a"})
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	both, err := e.orders.List(ctx, usecase.OrderListFilter{CustomerID: "cust-a", Status: "pending"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.NotEqual(t, a.ID, both[0].ID)

	_, err = e.orders.List(ctx, usecase.OrderListFilter{Status: "lost"})
	assert.True(t, errors.Is(err, usecase.ErrValidation))

	_, err = e.orders.Get(ctx, "missing")
	assert.True(t, errors.Is(err, usecase.ErrNotFound))
}

func TestPlaceOrder_RejectsTotalOverLimit(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.product(t, "MAX-1", "99999999.99", math.MaxInt64)

	_, err := e.orders.PlaceOrder(ctx, orderInput("cust-1", line(p.ID, 20_000_000_000)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrValidation))

	assert.Equal(t, int64(math.MaxInt64), e.stock(t, p.ID))
	assert.Equal(t, 0, e.orderCount(t))
}
