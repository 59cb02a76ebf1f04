package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]model.OrderItem, len(items))
	for i, it := range items {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		it.OrderID = orderID
		it.Position = i
		rows[i] = it
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return errors.Wrap(err, "create order items")
	}
	return nil
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("position asc").Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, errors.Wrap(err, "list order items")
	}
	return items, nil
}
