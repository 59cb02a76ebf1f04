package model

import "github.com/shopspring/decimal"

// 注文明細。注文と一緒に作られ、その後は変更しない
type OrderItem struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   string `gorm:"type:uuid;not null;index" json:"orderId"`
	ProductID string `gorm:"type:uuid;not null;index" json:"productId"`

	//注文時点のスナップショット
	ProductName string          `gorm:"type:varchar(200);not null" json:"productName"`
	ProductSKU  string          `gorm:"type:varchar(50);not null" json:"productSku"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unitPrice"`

	Quantity   int64           `gorm:"not null" json:"quantity"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"totalPrice"`
	Position   int             `gorm:"not null;default:0" json:"-"`
}
