package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	repo "github.com/modi-mansi/ecommerce/internal/repository"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

// カート明細を一覧取得
func (r *CartItemGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.CartItem, error) {
	if !isUUID(userID) {
		return []model.CartItem{}, nil
	}
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, errors.Wrap(err, "list cart items")
	}

	return items, nil
}

func (r *CartItemGormRepository) FindByUserAndProduct(ctx context.Context, userID string, productID string) (model.CartItem, error) {
	if !isUUID(userID) || !isUUID(productID) {
		return model.CartItem{}, repo.ErrNotFound
	}
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if isNotFound(err) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, errors.Wrap(err, "find cart item")
	}
	return item, nil
}

// 同一商品は数量加算（(user_id, product_id) の一意制約でON CONFLICT）
func (r *CartItemGormRepository) Upsert(ctx context.Context, userID string, productID string, addQty int64) (model.CartItem, error) {
	item := model.CartItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  addQty,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + EXCLUDED.quantity"),
			"updated_at": gorm.Expr("EXCLUDED.updated_at"),
		}),
	}).Create(&item).Error
	if err != nil {
		return model.CartItem{}, errors.Wrap(err, "upsert cart item")
	}

	return r.FindByUserAndProduct(ctx, userID, productID)
}

// 明細の数量を更新
func (r *CartItemGormRepository) UpdateQuantity(ctx context.Context, userID string, productID string, qty int64) (model.CartItem, error) {
	if !isUUID(userID) || !isUUID(productID) {
		return model.CartItem{}, repo.ErrNotFound
	}
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", qty)

	if res.Error != nil {
		return model.CartItem{}, errors.Wrap(res.Error, "update cart item")
	}
	if res.RowsAffected == 0 {
		return model.CartItem{}, repo.ErrNotFound
	}
	return r.FindByUserAndProduct(ctx, userID, productID)
}

// 明細を削除（無くてもエラーにしない）
func (r *CartItemGormRepository) Delete(ctx context.Context, userID string, productID string) error {
	if !isUUID(userID) || !isUUID(productID) {
		return nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{}).Error
	return errors.Wrap(err, "delete cart item")
}

func (r *CartItemGormRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if !isUUID(userID) {
		return nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
	return errors.Wrap(err, "clear cart")
}
