package usecase

import (
	"context"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	repo "github.com/modi-mansi/ecommerce/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// 明細は (user, product) で1行。価格は持たず、読み出し時に商品の現在価格で計算します。
type CartUsecase struct {
	tx    repo.TransactionManager
	repos repo.TxRepos
}

func NewCartUsecase(tx repo.TransactionManager, repos repo.TxRepos) *CartUsecase {
	return &CartUsecase{tx: tx, repos: repos}
}

type AddCartItemInput struct {
	UserID    string
	ProductID string
	Quantity  int64
}

// 同じ商品なら数量を足す。追加時点では在庫の上限チェックはしない
func (u *CartUsecase) AddItem(ctx context.Context, in AddCartItemInput) (CartItemOutput, error) {
	var fe fieldErrors
	if strings.TrimSpace(in.UserID) == "" {
		fe.add("userId", "userId required")
	}
	if strings.TrimSpace(in.ProductID) == "" {
		fe.add("productId", "productId required")
	}
	if in.Quantity < 1 {
		fe.add("quantity", "quantity must be >= 1")
	}
	if err := fe.err("Invalid cart item data"); err != nil {
		return CartItemOutput{}, err
	}

	var out CartItemOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, in.ProductID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound("Product not found")
			}
			return internal("find product", err)
		}

		//合算でint64を超える場合は入力エラー
		cur, err := r.CartItems().FindByUserAndProduct(ctx, in.UserID, in.ProductID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return internal("find cart item", err)
		}
		if err == nil && cur.Quantity > math.MaxInt64-in.Quantity {
			return invalid("Invalid cart item data", FieldError{Field: "quantity", Message: "quantity too large"})
		}

		item, err := r.CartItems().Upsert(ctx, in.UserID, in.ProductID, in.Quantity)
		if err != nil {
			return internal("add cart item", err)
		}
		out = toCartItemOutput(item)
		return nil
	})
	if err != nil {
		return CartItemOutput{}, err
	}
	return out, nil
}

func (u *CartUsecase) SetQuantity(ctx context.Context, userID, productID string, qty int64) (CartItemOutput, error) {
	if qty < 1 {
		return CartItemOutput{}, invalid("Invalid quantity", FieldError{Field: "quantity", Message: "quantity must be >= 1"})
	}

	item, err := u.repos.CartItems().UpdateQuantity(ctx, userID, productID, qty)
	if errors.Is(err, repo.ErrNotFound) {
		return CartItemOutput{}, notFound("Cart item not found")
	}
	if err != nil {
		return CartItemOutput{}, internal("update cart item", err)
	}
	return toCartItemOutput(item), nil
}

// 無い明細の削除はエラーにしない
func (u *CartUsecase) RemoveItem(ctx context.Context, userID, productID string) error {
	if err := u.repos.CartItems().Delete(ctx, userID, productID); err != nil {
		return internal("remove cart item", err)
	}
	return nil
}

func (u *CartUsecase) Clear(ctx context.Context, userID string) error {
	if err := u.repos.CartItems().DeleteByUserID(ctx, userID); err != nil {
		return internal("clear cart", err)
	}
	return nil
}

// 明細に現在の商品を付けて返す。商品が消えている明細は整合性エラー（500）
func (u *CartUsecase) ListWithProduct(ctx context.Context, userID string) (CartOutput, error) {
	items, err := u.repos.CartItems().ListByUserID(ctx, userID)
	if err != nil {
		return CartOutput{}, internal("list cart items", err)
	}

	out := CartOutput{Items: make([]CartLineOutput, 0, len(items))}
	total := decimal.Zero
	for _, ci := range items {
		p, err := u.repos.Products().FindByID(ctx, ci.ProductID)
		if err != nil {
			return CartOutput{}, internal("cart item "+ci.ID+" references missing product "+ci.ProductID, err)
		}

		subtotal := p.Price.Mul(decimal.NewFromInt(ci.Quantity)).Round(2)
		total = total.Add(subtotal)
		out.Items = append(out.Items, CartLineOutput{
			CartItemOutput: toCartItemOutput(ci),
			Product:        toProductOutput(p),
			Subtotal:       money(subtotal),
		})
	}
	out.Total = money(total)
	return out, nil
}
