package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	repo "github.com/modi-mansi/ecommerce/internal/repository"
)

// 注文番号の連番（Migrateで作る）
const OrderNumberSequence = "order_number_seq"

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	if !isUUID(orderID) {
		return model.Order{}, repo.ErrNotFound
	}
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if isNotFound(err) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, errors.Wrap(err, "find order")
	}
	return o, nil
}

func (r *OrderGormRepository) FindByNumber(ctx context.Context, orderNumber string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&o).Error
	if isNotFound(err) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, errors.Wrap(err, "find order by number")
	}
	return o, nil
}

func (r *OrderGormRepository) List(ctx context.Context, f repo.OrderFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})

	//status 絞り込み
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	//customer 絞り込み
	if f.CustomerID != "" {
		if !isUUID(f.CustomerID) {
			return []model.Order{}, nil
		}
		q = q.Where("customer_id = ?", f.CustomerID)
	}

	var items []model.Order
	if err := q.Order("created_at desc").Order("order_number desc").Find(&items).Error; err != nil {
		return []model.Order{}, errors.Wrap(err, "list orders")
	}
	return items, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		if isDuplicate(err) {
			return repo.ErrDuplicate
		}
		return errors.Wrap(err, "create order")
	}
	return nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return model.Order{}, errors.Wrap(res.Error, "update order status")
	}
	if res.RowsAffected == 0 {
		return model.Order{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, orderID)
}

func (r *OrderGormRepository) NextSequence(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Raw("SELECT nextval('" + OrderNumberSequence + "')").Scan(&n).Error; err != nil {
		return 0, errors.Wrap(err, "next order sequence")
	}
	return n, nil
}
