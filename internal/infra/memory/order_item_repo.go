package memory

import (
	"context"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
)

type orderItemRepo struct {
	s *session
}

func (r *orderItemRepo) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	return r.s.do(func(t *tables) error {
		rows := t.orderItems[orderID]
		base := len(rows)
		for i, it := range items {
			if it.ID == "" {
				it.ID = r.s.store.ids.NewID()
			}
			it.OrderID = orderID
			it.Position = base + i
			rows = append(rows, it)
		}
		t.orderItems[orderID] = rows
		return nil
	})
}

func (r *orderItemRepo) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	out := []model.OrderItem{}
	err := r.s.do(func(t *tables) error {
		out = append(out, t.orderItems[orderID]...)
		return nil
	})
	return out, err
}
