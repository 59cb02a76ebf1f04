package repository

import (
	"context"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
)

// 注文一覧の絞り込み（空なら条件なし）
type OrderFilter struct {
	Status     model.OrderStatus
	CustomerID string
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (model.Order, error)
	//新しい順
	List(ctx context.Context, f OrderFilter) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) error
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error)

	//注文番号用の連番（システム全体で単調増加）
	NextSequence(ctx context.Context) (int64, error)
}
