package memory

import (
	"context"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	"github.com/modi-mansi/ecommerce/internal/repository"
)

type productRepo struct {
	s *session
}

func (r *productRepo) List(ctx context.Context, f repository.ProductFilter) ([]model.Product, error) {
	out := []model.Product{}
	err := r.s.do(func(t *tables) error {
		for _, id := range t.productOrder {
			p := t.products[id]
			if f.Match(p) {
				out = append(out, p)
			}
		}
		return nil
	})
	return out, err
}

func (r *productRepo) FindByID(ctx context.Context, id string) (model.Product, error) {
	var out model.Product
	err := r.s.do(func(t *tables) error {
		p, ok := t.products[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = p
		return nil
	})
	return out, err
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (model.Product, error) {
	var out model.Product
	err := r.s.do(func(t *tables) error {
		for _, id := range t.productOrder {
			if t.products[id].SKU == sku {
				out = t.products[id]
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

func (r *productRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	err := r.s.do(func(t *tables) error {
		if p.SKU != "" && skuTaken(t, p.SKU, "") {
			return repository.ErrDuplicate
		}
		if p.ID == "" {
			p.ID = r.s.store.ids.NewID()
		}
		if _, exists := t.products[p.ID]; exists {
			return repository.ErrDuplicate
		}
		now := r.s.store.clock.Now()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		t.products[p.ID] = p
		t.productOrder = append(t.productOrder, p.ID)
		return nil
	})
	return p, err
}

func (r *productRepo) Update(ctx context.Context, p model.Product) error {
	return r.s.do(func(t *tables) error {
		cur, ok := t.products[p.ID]
		if !ok {
			return repository.ErrNotFound
		}
		if p.SKU != "" && skuTaken(t, p.SKU, p.ID) {
			return repository.ErrDuplicate
		}
		p.CreatedAt = cur.CreatedAt
		p.UpdatedAt = r.s.store.clock.Now()
		t.products[p.ID] = p
		return nil
	})
}

func (r *productRepo) SetStock(ctx context.Context, id string, qty int64) error {
	return r.s.do(func(t *tables) error {
		p, ok := t.products[id]
		if !ok {
			return repository.ErrNotFound
		}
		p.StockQuantity = qty
		p.UpdatedAt = r.s.store.clock.Now()
		t.products[id] = p
		return nil
	})
}

func (r *productRepo) DecreaseStockIfEnough(ctx context.Context, id string, qty int64) (bool, error) {
	ok := false
	err := r.s.do(func(t *tables) error {
		p, found := t.products[id]
		if !found {
			return repository.ErrNotFound
		}
		//在庫が足りるときだけ減算
		if p.StockQuantity < qty {
			return nil
		}
		p.StockQuantity -= qty
		p.UpdatedAt = r.s.store.clock.Now()
		t.products[id] = p
		ok = true
		return nil
	})
	return ok, err
}

func (r *productRepo) IncreaseStock(ctx context.Context, id string, qty int64) error {
	return r.s.do(func(t *tables) error {
		p, ok := t.products[id]
		if !ok {
			return repository.ErrNotFound
		}
		p.StockQuantity += qty
		p.UpdatedAt = r.s.store.clock.Now()
		t.products[id] = p
		return nil
	})
}

func skuTaken(t *tables, sku, exceptID string) bool {
	for id, p := range t.products {
		if id != exceptID && p.SKU == sku {
			return true
		}
	}
	return false
}
