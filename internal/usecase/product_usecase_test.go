package usecase_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	"github.com/modi-mansi/ecommerce/internal/usecase"
)

func TestProduct_CreateRecordsInitialStock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	p, err := e.products.Create(ctx, usecase.CreateProductInput{
		Name:          "Headphones",
		SKU:           "HP-001",
		Category:      "Electronics",
		Price:         mustDecimal("299.999"),
		OriginalPrice: decimal.NewNullDecimal(mustDecimal("399.99")),
		StockQuantity: 15,
		Rating:        decimal.NewNullDecimal(mustDecimal("4.55")),
	})
	require.NoError(t, err)

	assert.Equal(t, "300.00", p.Price)
	require.NotNil(t, p.OriginalPrice)
	assert.Equal(t, "399.99", *p.OriginalPrice)
	require.NotNil(t, p.Rating)
	assert.Equal(t, "4.6", *p.Rating)
	assert.True(t, p.IsActive)

	txs, err := e.inventory.ListTransactions(ctx, p.ID, "")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, model.InventoryTxRestock, txs[0].Type)
	assert.Equal(t, int64(15), txs[0].Delta)
}

func TestProduct_CreateValidationAndConflict(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.product(t, "HP-001", "1.00", 0)

	_, err := e.products.Create(ctx, usecase.CreateProductInput{
		Name: "Dup", SKU: "HP-001", Category: "Electronics", Price: mustDecimal("1"),
	})
	assert.True(t, errors.Is(err, usecase.ErrConflict))

	_, err = e.products.Create(ctx, usecase.CreateProductInput{
		Name: "", SKU: "X", Category: "Electronics", Price: mustDecimal("-1"), StockQuantity: -2,
		Rating: decimal.NewNullDecimal(mustDecimal("6")),
	})
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Len(t, he.Details, 4)
}

func TestProduct_UpdatePatchesOnlyGivenFields(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.product(t, "A", "10.00", 5)

	name := "Renamed"
	stock := int64(8)
	out, err := e.products.Update(ctx, p.ID, usecase.ProductPatch{Name: &name, StockQuantity: &stock})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", out.Name)
	assert.Equal(t, "10.00", out.Price)
	assert.Equal(t, "A", out.SKU)
	assert.Equal(t, int64(8), out.StockQuantity)

	txs, err := e.inventory.ListTransactions(ctx, p.ID, "")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, model.InventoryTxAdjustment, txs[1].Type)
	assert.Equal(t, int64(3), txs[1].Delta)
}

func TestProduct_UpdateErrors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.product(t, "A", "10.00", 5)
	e.product(t, "B", "10.00", 5)

	neg := mustDecimal("-1")
	_, err := e.products.Update(ctx, a.ID, usecase.ProductPatch{Price: &neg})
	assert.True(t, errors.Is(err, usecase.ErrValidation))

	sku := "B"
	_, err = e.products.Update(ctx, a.ID, usecase.ProductPatch{SKU: &sku})
	assert.True(t, errors.Is(err, usecase.ErrConflict))

	name := "x"
	_, err = e.products.Update(ctx, "missing", usecase.ProductPatch{Name: &name})
	assert.True(t, errors.Is(err, usecase.ErrNotFound))

	//失敗した更新は何も残さない
	got, err := e.catalog.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.SKU)
	assert.Equal(t, "10.00", got.Price)
}

func TestProduct_SetStock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.product(t, "A", "10.00", 5)

	out, err := e.products.SetStock(ctx, p.ID, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.StockQuantity)

	//同じ値なら履歴は増えない
	_, err = e.products.SetStock(ctx, p.ID, 2, "")
	require.NoError(t, err)

	txs, err := e.inventory.ListTransactions(ctx, p.ID, "")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, int64(-3), txs[1].Delta)
	assert.Equal(t, "manual adjustment", txs[1].Reason)

	_, err = e.products.SetStock(ctx, p.ID, -1, "")
	assert.True(t, errors.Is(err, usecase.ErrValidation))

	_, err = e.products.SetStock(ctx, "missing", 1, "")
	assert.True(t, errors.Is(err, usecase.ErrNotFound))
}

func TestProduct_PriceUpperBound(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.products.Create(ctx, usecase.CreateProductInput{
		Name: "Big", SKU: "BIG-1", Category: "Misc", Price: decimal.RequireFromString("100000000.00"),
	})
	assert.True(t, errors.Is(err, usecase.ErrValidation))

	p := e.product(t, "MAX-1", "99999999.99", 1)
	assert.Equal(t, "99999999.99", p.Price)

	tooBig := decimal.RequireFromString("123456789")
	_, err = e.products.Update(ctx, p.ID, usecase.ProductPatch{OriginalPrice: &tooBig})
	assert.True(t, errors.Is(err, usecase.ErrValidation))
}
