package memory

import (
	"context"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	"github.com/modi-mansi/ecommerce/internal/repository"
)

type orderRepo struct {
	s *session
}

func (r *orderRepo) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var out model.Order
	err := r.s.do(func(t *tables) error {
		o, ok := t.orders[orderID]
		if !ok {
			return repository.ErrNotFound
		}
		out = o
		return nil
	})
	return out, err
}

func (r *orderRepo) FindByNumber(ctx context.Context, orderNumber string) (model.Order, error) {
	var out model.Order
	err := r.s.do(func(t *tables) error {
		for _, id := range t.orderOrder {
			if t.orders[id].OrderNumber == orderNumber {
				out = t.orders[id]
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

func (r *orderRepo) List(ctx context.Context, f repository.OrderFilter) ([]model.Order, error) {
	out := []model.Order{}
	err := r.s.do(func(t *tables) error {
		//新しい順（追加の逆順）
		for i := len(t.orderOrder) - 1; i >= 0; i-- {
			o := t.orders[t.orderOrder[i]]
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			if f.CustomerID != "" && o.CustomerID != f.CustomerID {
				continue
			}
			out = append(out, o)
		}
		return nil
	})
	return out, err
}

func (r *orderRepo) Create(ctx context.Context, order model.Order) error {
	return r.s.do(func(t *tables) error {
		if order.ID == "" {
			order.ID = r.s.store.ids.NewID()
		}
		if _, exists := t.orders[order.ID]; exists {
			return repository.ErrDuplicate
		}
		for _, o := range t.orders {
			if o.OrderNumber == order.OrderNumber {
				return repository.ErrDuplicate
			}
		}
		now := r.s.store.clock.Now()
		if order.CreatedAt.IsZero() {
			order.CreatedAt = now
		}
		if order.UpdatedAt.IsZero() {
			order.UpdatedAt = order.CreatedAt
		}
		t.orders[order.ID] = order
		t.orderOrder = append(t.orderOrder, order.ID)
		return nil
	})
}

func (r *orderRepo) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error) {
	var out model.Order
	err := r.s.do(func(t *tables) error {
		o, ok := t.orders[orderID]
		if !ok {
			return repository.ErrNotFound
		}
		o.Status = status
		o.UpdatedAt = r.s.store.clock.Now()
		t.orders[orderID] = o
		out = o
		return nil
	})
	return out, err
}

func (r *orderRepo) NextSequence(ctx context.Context) (int64, error) {
	var n int64
	err := r.s.do(func(t *tables) error {
		t.orderSeq++
		n = t.orderSeq
		return nil
	})
	return n, err
}
