package memory

import (
	"context"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	"github.com/modi-mansi/ecommerce/internal/repository"
)

type cartItemRepo struct {
	s *session
}

func (r *cartItemRepo) ListByUserID(ctx context.Context, userID string) ([]model.CartItem, error) {
	out := []model.CartItem{}
	err := r.s.do(func(t *tables) error {
		out = append(out, t.cartItems[userID]...)
		return nil
	})
	return out, err
}

func (r *cartItemRepo) FindByUserAndProduct(ctx context.Context, userID string, productID string) (model.CartItem, error) {
	var out model.CartItem
	err := r.s.do(func(t *tables) error {
		i := indexOfCartItem(t.cartItems[userID], productID)
		if i < 0 {
			return repository.ErrNotFound
		}
		out = t.cartItems[userID][i]
		return nil
	})
	return out, err
}

func (r *cartItemRepo) Upsert(ctx context.Context, userID string, productID string, addQty int64) (model.CartItem, error) {
	var out model.CartItem
	err := r.s.do(func(t *tables) error {
		now := r.s.store.clock.Now()
		rows := t.cartItems[userID]
		//同一商品はプラス
		if i := indexOfCartItem(rows, productID); i >= 0 {
			rows[i].Quantity += addQty
			rows[i].UpdatedAt = now
			out = rows[i]
			return nil
		}
		out = model.CartItem{
			ID:        r.s.store.ids.NewID(),
			UserID:    userID,
			ProductID: productID,
			Quantity:  addQty,
			CreatedAt: now,
			UpdatedAt: now,
		}
		t.cartItems[userID] = append(rows, out)
		return nil
	})
	return out, err
}

func (r *cartItemRepo) UpdateQuantity(ctx context.Context, userID string, productID string, qty int64) (model.CartItem, error) {
	var out model.CartItem
	err := r.s.do(func(t *tables) error {
		rows := t.cartItems[userID]
		i := indexOfCartItem(rows, productID)
		if i < 0 {
			return repository.ErrNotFound
		}
		rows[i].Quantity = qty
		rows[i].UpdatedAt = r.s.store.clock.Now()
		out = rows[i]
		return nil
	})
	return out, err
}

func (r *cartItemRepo) Delete(ctx context.Context, userID string, productID string) error {
	return r.s.do(func(t *tables) error {
		rows := t.cartItems[userID]
		i := indexOfCartItem(rows, productID)
		if i < 0 {
			return nil
		}
		kept := make([]model.CartItem, 0, len(rows)-1)
		kept = append(kept, rows[:i]...)
		kept = append(kept, rows[i+1:]...)
		t.cartItems[userID] = kept
		return nil
	})
}

func (r *cartItemRepo) DeleteByUserID(ctx context.Context, userID string) error {
	return r.s.do(func(t *tables) error {
		delete(t.cartItems, userID)
		return nil
	})
}

func indexOfCartItem(rows []model.CartItem, productID string) int {
	for i := range rows {
		if rows[i].ProductID == productID {
			return i
		}
	}
	return -1
}
