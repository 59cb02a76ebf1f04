package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	repo "github.com/modi-mansi/ecommerce/internal/repository"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 履歴作成
func (r *InventoryGormRepository) CreateTransaction(ctx context.Context, t model.InventoryTransaction) (model.InventoryTransaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return model.InventoryTransaction{}, errors.Wrap(err, "create inventory transaction")
	}
	return t, nil
}

func (r *InventoryGormRepository) ListTransactions(ctx context.Context, f repo.InventoryFilter) ([]model.InventoryTransaction, error) {
	var items []model.InventoryTransaction

	if (f.ProductID != "" && !isUUID(f.ProductID)) || (f.OrderID != "" && !isUUID(f.OrderID)) {
		return []model.InventoryTransaction{}, nil
	}

	q := r.db.WithContext(ctx).Model(&model.InventoryTransaction{})
	if f.ProductID != "" {
		q = q.Where("product_id = ?", f.ProductID)
	}
	if f.OrderID != "" {
		q = q.Where("order_id = ?", f.OrderID)
	}

	if err := q.Order("created_at asc").Order("id asc").Find(&items).Error; err != nil {
		return []model.InventoryTransaction{}, errors.Wrap(err, "list inventory transactions")
	}
	return items, nil
}
