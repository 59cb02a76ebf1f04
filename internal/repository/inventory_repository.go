package repository

import (
	"context"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
)

// 在庫履歴の絞り込み（空なら条件なし）
type InventoryFilter struct {
	ProductID string
	OrderID   string
}

// 在庫履歴は追記のみ
type InventoryRepository interface {
	CreateTransaction(ctx context.Context, t model.InventoryTransaction) (model.InventoryTransaction, error)
	ListTransactions(ctx context.Context, f InventoryFilter) ([]model.InventoryTransaction, error)
}
