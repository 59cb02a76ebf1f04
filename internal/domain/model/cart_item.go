package model

import "time"

// カートの明細
// 価格は持たない。読み出し時に商品の現在価格を使う。
type CartItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product" json:"userId"`
	ProductID string    `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product" json:"productId"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
