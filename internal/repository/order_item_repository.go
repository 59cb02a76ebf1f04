package repository

import (
	"context"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
	//作成時の並び順で返す
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
}
