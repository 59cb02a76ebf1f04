package usecase

import (
	"context"
	"time"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// 注文の変化を外に知らせるイベント（commit後に送る）
type OrderEvent struct {
	Type           string    `json:"type"`
	OrderID        string    `json:"orderId"`
	OrderNumber    string    `json:"orderNumber"`
	CustomerID     string    `json:"customerId"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	TotalAmount    string    `json:"totalAmount"`
	ItemCount      int       `json:"itemCount"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// 送信先（Kafka等）は差し替え可能。失敗しても注文自体は成功のまま
type OrderEventPublisher interface {
	Publish(ctx context.Context, e OrderEvent) error
}

func newOrderEvent(typ string, o model.Order, itemCount int, at time.Time) OrderEvent {
	return OrderEvent{
		Type:        typ,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		Status:      string(o.Status),
		TotalAmount: money(o.TotalAmount),
		ItemCount:   itemCount,
		OccurredAt:  at,
	}
}
