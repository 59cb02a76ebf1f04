package repository

import (
	"context"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
)

// カート明細は (user, product) で一意
type CartItemRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]model.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID string, productID string) (model.CartItem, error)
	// 同一商品はプラス
	Upsert(ctx context.Context, userID string, productID string, addQty int64) (model.CartItem, error)
	UpdateQuantity(ctx context.Context, userID string, productID string, qty int64) (model.CartItem, error)
	// 無くてもエラーにしない
	Delete(ctx context.Context, userID string, productID string) error
	DeleteByUserID(ctx context.Context, userID string) error
}
