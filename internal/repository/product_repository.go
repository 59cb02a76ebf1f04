package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
)

var (
	ErrNotFound = errors.New("not found")
	//一意制約（SKU・メールなど）に違反
	ErrDuplicate = errors.New("duplicate")
)

// 商品一覧の絞り込み条件。指定された条件はすべてANDで効く。
type ProductFilter struct {
	ActiveOnly bool
	//完全一致（大文字小文字を区別）
	Category string
	//name / description / category の部分一致（大文字小文字を区別しない）
	Search string
	//在庫1以上のみ
	InStock bool
	//在庫がこの値以下のみ
	MaxStock *int64
}

// Matchはメモリ実装用の判定。gorm実装は同じ条件をSQLで組み立てる。
func (f ProductFilter) Match(p model.Product) bool {
	if f.ActiveOnly && !p.IsActive {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			return false
		}
	}
	if f.InStock && p.StockQuantity <= 0 {
		return false
	}
	if f.MaxStock != nil && p.StockQuantity > *f.MaxStock {
		return false
	}
	return true
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, f ProductFilter) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	FindBySKU(ctx context.Context, sku string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error

	// 在庫の現在値を設定
	SetStock(ctx context.Context, id string, qty int64) error
	// 在庫が足りるときだけ減算
	DecreaseStockIfEnough(ctx context.Context, id string, qty int64) (bool, error)
	// 在庫戻し（キャンセルなど）
	IncreaseStock(ctx context.Context, id string, qty int64) error
}
