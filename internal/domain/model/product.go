package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	SKU         string `gorm:"type:varchar(50);not null;uniqueIndex" json:"sku"`
	Category    string `gorm:"type:varchar(100);not null;index" json:"category"`
	ImageURL    string `gorm:"type:varchar(500)" json:"imageUrl"`

	//販売価格（小数2桁）
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	//値下げ前の価格（無い商品もある）
	OriginalPrice decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"originalPrice"`

	//在庫数。マイナスにはしない
	StockQuantity int64 `gorm:"not null;default:0" json:"stockQuantity"`

	Rating    decimal.NullDecimal `gorm:"type:numeric(2,1)" json:"rating"`
	IsActive  bool                `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt time.Time           `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time           `gorm:"not null" json:"updatedAt"`
}

// 在庫がしきい値以下（0は除く）
func (p Product) IsLowStock(threshold int64) bool {
	return p.StockQuantity > 0 && p.StockQuantity <= threshold
}

func (p Product) IsOutOfStock() bool {
	return p.StockQuantity == 0
}
