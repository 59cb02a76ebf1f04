package model

import "time"

type InventoryTransactionType string

const (
	//注文による出庫
	InventoryTxSale InventoryTransactionType = "sale"
	//入荷
	InventoryTxRestock InventoryTransactionType = "restock"
	//管理画面からの在庫の上書き
	InventoryTxAdjustment InventoryTransactionType = "adjustment"
	//キャンセルによる在庫戻し
	InventoryTxCancellation InventoryTransactionType = "cancellation"
)

//在庫の増減履歴（追記のみ。更新・削除はしない）

type InventoryTransaction struct {
	ID        string                   `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID string                   `gorm:"type:uuid;not null;index" json:"productId"`
	OrderID   *string                  `gorm:"type:uuid;index" json:"orderId"`
	Type      InventoryTransactionType `gorm:"type:varchar(20);not null" json:"type"`
	Delta     int64                    `gorm:"not null" json:"quantity"`
	Reason    string                   `gorm:"type:varchar(255)" json:"reason,omitempty"`
	CreatedAt time.Time                `gorm:"not null;index" json:"createdAt"`
}
