package memory

import (
	"context"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	"github.com/modi-mansi/ecommerce/internal/repository"
)

type inventoryRepo struct {
	s *session
}

func (r *inventoryRepo) CreateTransaction(ctx context.Context, it model.InventoryTransaction) (model.InventoryTransaction, error) {
	err := r.s.do(func(t *tables) error {
		if it.ID == "" {
			it.ID = r.s.store.ids.NewID()
		}
		if it.CreatedAt.IsZero() {
			it.CreatedAt = r.s.store.clock.Now()
		}
		t.inventory = append(t.inventory, it)
		return nil
	})
	return it, err
}

func (r *inventoryRepo) ListTransactions(ctx context.Context, f repository.InventoryFilter) ([]model.InventoryTransaction, error) {
	out := []model.InventoryTransaction{}
	err := r.s.do(func(t *tables) error {
		for _, it := range t.inventory {
			if f.ProductID != "" && it.ProductID != f.ProductID {
				continue
			}
			if f.OrderID != "" && (it.OrderID == nil || *it.OrderID != f.OrderID) {
				continue
			}
			out = append(out, it)
		}
		return nil
	})
	return out, err
}
