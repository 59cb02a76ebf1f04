package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// 決められた5つのステータスか
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber string `gorm:"type:varchar(50);not null;uniqueIndex" json:"orderNumber"`

	//注文時点の顧客情報（後からUserと再結合しない）
	CustomerID    string `gorm:"type:uuid;not null;index" json:"customerId"`
	CustomerName  string `gorm:"type:varchar(200);not null" json:"customerName"`
	CustomerEmail string `gorm:"type:varchar(120);not null" json:"customerEmail"`

	Status OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//作成時に確定。以後再計算しない
	TotalAmount decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"totalAmount"`

	ShippingAddress string    `gorm:"type:text;not null" json:"shippingAddress"`
	CreatedAt       time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"not null" json:"updatedAt"`
}
